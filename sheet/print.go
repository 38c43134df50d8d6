package sheet

import (
	"io"

	"github.com/kalexmills/sheetengine/position"
)

// PrintValues writes the sheet's bounding box to w as tab-separated,
// newline-terminated rows of evaluated values. Absent cells render as
// empty fields.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue(s.Resolve).Display()
	})
}

// PrintTexts writes the sheet's bounding box to w as tab-separated,
// newline-terminated rows of each cell's canonical text (GetText).
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, render(s.table[position.New(row, col)])); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
