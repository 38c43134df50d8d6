package formula

import (
	"fmt"
	"strconv"

	"github.com/kalexmills/sheetengine/position"
)

// parseCellRef decodes an A1-style address ("A1", "AA12", ...) into a
// Position. Column letters come first, then a 1-indexed row number;
// both are converted to zero-indexed form.
//
// The column-letter convention itself is outside package position's
// core concern, but a concrete formula syntax has to spell cell
// references somehow, so the decoding lives here instead.
func parseCellRef(s string) (position.Position, error) {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return position.Position{}, fmt.Errorf("%w: %q is not a cell reference", ErrParse, s)
	}
	col, err := decodeColumn(s[:i])
	if err != nil {
		return position.Position{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return position.Position{}, fmt.Errorf("%w: %q: invalid row", ErrParse, s)
	}
	return position.New(row-1, col), nil
}

// decodeColumn decodes a base-26 column letter sequence ("A".."Z",
// "AA", ...) into a zero-indexed column number.
func decodeColumn(letters string) (int, error) {
	col := 0
	for _, ch := range letters {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("unexpected column letter %q", ch)
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col - 1, nil
}

// formatCellRef renders a Position back into A1-style notation, the
// inverse of parseCellRef. Used by the pretty printer so that a
// canonical Expression() string re-parses to an identical AST.
func formatCellRef(p position.Position) string {
	col := p.Col + 1
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return fmt.Sprintf("%s%d", letters, p.Row+1)
}
