// Command sheetctl is a thin, line-oriented adapter over the sheet
// engine: it owns cell-address parsing and a tiny command grammar,
// and nothing else. The engine (package sheet) never imports this
// package.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kalexmills/sheetengine/position"
	"github.com/kalexmills/sheetengine/sheet"
	"golang.org/x/term"
)

func main() {
	sessionID := uuid.New()
	s := sheet.New()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Fprintf(os.Stderr, "sheetctl session %s — SET/GET/CLEAR/PRINT/PRINTTEXT/QUIT\n", sessionID)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "> ")
		}
		if !scanner.Scan() {
			return
		}
		if err := runLine(s, scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "sheetctl [%s]: %v\n", sessionID, err)
		}
	}
}

func runLine(s *sheet.Sheet, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd := strings.ToUpper(fields[0])
	switch cmd {
	case "QUIT", "EXIT":
		os.Exit(0)
		return nil
	case "PRINT":
		return s.PrintValues(os.Stdout)
	case "PRINTTEXT":
		return s.PrintTexts(os.Stdout)
	case "SET":
		if len(fields) < 2 {
			return fmt.Errorf("usage: SET <addr> <text...>")
		}
		p, err := parseAddr(fields[1])
		if err != nil {
			return err
		}
		text := ""
		if len(fields) > 2 {
			text = strings.Join(fields[2:], " ")
		}
		return s.SetCell(p, text)
	case "GET":
		if len(fields) != 2 {
			return fmt.Errorf("usage: GET <addr>")
		}
		p, err := parseAddr(fields[1])
		if err != nil {
			return err
		}
		c, err := s.GetCell(p)
		if err != nil {
			return err
		}
		if c == nil {
			fmt.Fprintln(os.Stdout, "")
			return nil
		}
		fmt.Fprintln(os.Stdout, c.GetValue(s.Resolve).Display())
		return nil
	case "CLEAR":
		if len(fields) != 2 {
			return fmt.Errorf("usage: CLEAR <addr>")
		}
		p, err := parseAddr(fields[1])
		if err != nil {
			return err
		}
		return s.ClearCell(p)
	default:
		return fmt.Errorf("unrecognized command %q", fields[0])
	}
}

// parseAddr decodes an A1-style address into a position.Position.
// Package position has no address parsing, and package formula keeps
// its own decoder for references inside formulas unexported, so the
// command arguments are decoded here.
func parseAddr(addr string) (position.Position, error) {
	i := 0
	for i < len(addr) && addr[i] >= 'A' && addr[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(addr) {
		return position.Position{}, fmt.Errorf("%q is not a valid address", addr)
	}
	col := 0
	for _, ch := range addr[:i] {
		col = col*26 + int(ch-'A') + 1
	}
	row, err := strconv.Atoi(addr[i:])
	if err != nil || row < 1 {
		return position.Position{}, fmt.Errorf("%q is not a valid address", addr)
	}
	return position.New(row-1, col-1), nil
}
