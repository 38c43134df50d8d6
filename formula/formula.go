// Package formula owns the cell-formula grammar: the tokenizer (built
// on xuri/efp), the AST, and evaluation. Package sheet never imports
// efp directly, or knows a formula was tokenized at all — it only
// sees the Evaluate/Expression/ReferencedCells contract.
package formula

import (
	"fmt"

	"github.com/kalexmills/sheetengine/position"
)

// Formula is a parsed arithmetic expression over cell references and
// numeric literals, supporting +, -, *, /, unary negation, and
// parentheses.
type Formula struct {
	expr       Expr
	expression string
	refs       []position.Position
}

// Parse parses body (the formula text with the leading '=' already
// stripped) into a Formula. A malformed body yields an error wrapping
// ErrParse.
func Parse(body string) (*Formula, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: empty formula", ErrParse)
	}
	expr, err := newParser(body).parseFormula()
	if err != nil {
		return nil, err
	}
	return &Formula{
		expr:       expr,
		expression: print(expr),
		refs:       referencedCells(expr),
	}, nil
}

// Expression returns the canonical pretty-printed form of the parsed
// expression; re-parsing it produces an identical AST.
func (f *Formula) Expression() string {
	return f.expression
}

// ReferencedCells returns every cell position f's expression reads,
// in order of first appearance, deduplicated.
func (f *Formula) ReferencedCells() []position.Position {
	return f.refs
}

// Evaluate computes f's value, resolving cell references through
// lookup. lookup is expected to implement the standard cell-
// resolution contract (absent/empty -> 0, numbers pass through,
// strings are parsed, errors propagate); Evaluate itself only adds
// arithmetic and division-by-zero detection on top of whatever lookup
// returns.
func (f *Formula) Evaluate(lookup func(position.Position) (float64, error)) (float64, error) {
	return evalExpr(f.expr, lookup)
}

func evalExpr(e Expr, lookup func(position.Position) (float64, error)) (float64, error) {
	switch e := e.(type) {
	case ConstExpr:
		return e.Value, nil
	case CellRefExpr:
		return lookup(e.Ref)
	case UnaryExpr:
		x, err := evalExpr(e.X, lookup)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case BinaryExpr:
		x, err := evalExpr(e.X, lookup)
		if err != nil {
			return 0, err
		}
		y, err := evalExpr(e.Y, lookup)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case '+':
			return x + y, nil
		case '-':
			return x - y, nil
		case '*':
			return x * y, nil
		case '/':
			if y == 0 {
				return 0, ErrDiv0
			}
			return x / y, nil
		}
	}
	return 0, fmt.Errorf("formula: unreachable expression node %T", e)
}
