package sheet

import (
	"math"

	"github.com/kalexmills/sheetengine/formula"
	"github.com/kalexmills/sheetengine/position"
)

// variant tags which of Cell's three payloads is live: a
// tagged-union-by-dispatch shape where one field selects behavior
// and the others sit unused.
type variant int

const (
	variantEmpty variant = iota
	variantText
	variantFormula
)

// escapeQuote is the leading character that makes a Text cell's
// evaluated value differ from its display text: it marks content that
// would otherwise look like a formula, and is stripped from the
// evaluated value but kept in GetText's display form.
const escapeQuote = '\''

// Cell is the content of a single sheet position: Empty, Text, or
// Formula. Its variant is fixed at construction; Sheet.SetCell
// replaces a Cell wholesale rather than mutating its variant in
// place.
//
// Cell holds no reference back to its Sheet. Per the evaluation
// contract, GetValue takes the cell-resolving function it needs as a
// parameter — the Sheet (or any adapter that already has the Sheet in
// hand, like the printing routines) supplies it.
type Cell struct {
	variant variant
	raw     string // Text payload, verbatim including any escape quote
	formula *formula.Formula
	cached  *cachedResult // Formula payload's memoized result; nil means uncached
}

type cachedResult struct {
	num float64
	err error
}

// newCell constructs the Cell that text reclassifies to:
//   - "" -> Empty
//   - a string starting with '=' and longer than one character ->
//     Formula, parsing the remainder
//   - anything else -> Text, stored verbatim
//
// A formula parse failure returns an error and no Cell; the caller
// (Sheet.SetCell) must leave prior state untouched in that case.
func newCell(text string) (*Cell, error) {
	c := &Cell{}
	if err := c.set(text); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cell) set(text string) error {
	if text == "" {
		c.clear()
		return nil
	}
	if len(text) > 1 && text[0] == '=' {
		f, err := formula.Parse(text[1:])
		if err != nil {
			return err
		}
		c.variant = variantFormula
		c.formula = f
		c.raw = ""
		c.cached = nil
		return nil
	}
	c.variant = variantText
	c.raw = text
	c.formula = nil
	c.cached = nil
	return nil
}

// clear reclassifies c as Empty.
func (c *Cell) clear() {
	c.variant = variantEmpty
	c.raw = ""
	c.formula = nil
	c.cached = nil
}

// InvalidateCache drops c's memoized Formula result. It is a no-op
// for Empty and Text cells.
func (c *Cell) InvalidateCache() {
	if c.variant == variantFormula {
		c.cached = nil
	}
}

// GetValue returns c's current value. For a Formula cell with no
// cached result, it evaluates the expression via resolve — the
// function implementing the standard cell-resolution contract (absent
// or Empty cells yield 0, numbers pass through, strings parse as
// numbers, errors propagate) — and memoizes the outcome, including
// turning a non-finite numeric result into a #DIV/0! error.
func (c *Cell) GetValue(resolve func(position.Position) (float64, error)) Value {
	switch c.variant {
	case variantText:
		return textValue(c.evaluatedText())
	case variantFormula:
		if c.cached == nil {
			num, err := c.formula.Evaluate(resolve)
			if err == nil && (math.IsInf(num, 0) || math.IsNaN(num)) {
				err = formula.ErrDiv0
			}
			c.cached = &cachedResult{num: num, err: err}
		}
		if c.cached.err != nil {
			return errorValue(c.cached.err)
		}
		return numberValue(c.cached.num)
	default: // variantEmpty
		return numberValue(0)
	}
}

// evaluatedText applies the leading-quote escape rule: a Text cell
// whose raw value begins with the escape quote evaluates to the raw
// value with that quote stripped.
func (c *Cell) evaluatedText() string {
	if len(c.raw) > 0 && c.raw[0] == escapeQuote {
		return c.raw[1:]
	}
	return c.raw
}

// GetText returns c's canonical serialization: the stored string
// (escape quote included) for Text, "=" plus the canonical expression
// for Formula, and the empty string for Empty.
func (c *Cell) GetText() string {
	switch c.variant {
	case variantText:
		return c.raw
	case variantFormula:
		return "=" + c.formula.Expression()
	default:
		return ""
	}
}

// ReferencedCells returns the positions c's Formula expression reads,
// in order of first appearance, deduplicated. Empty and Text cells
// never reference anything.
func (c *Cell) ReferencedCells() []position.Position {
	if c.variant != variantFormula {
		return nil
	}
	return c.formula.ReferencedCells()
}
