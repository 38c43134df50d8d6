package formula

import "github.com/kalexmills/sheetengine/position"

// Expr is a node in a parsed arithmetic expression: a tagged
// interface with a marker method for type-safety, dispatch by type
// switch.
type Expr interface {
	isExpr()
}

// BinaryExpr is a two-operand expression: X Op Y.
type BinaryExpr struct {
	X  Expr
	Op byte // '+', '-', '*', '/'
	Y  Expr
}

// UnaryExpr is a single-operand prefix expression, currently only
// negation.
type UnaryExpr struct {
	Op byte // '-'
	X  Expr
}

// ConstExpr is a literal numeric constant.
type ConstExpr struct {
	Value float64
}

// CellRefExpr is a reference to another cell's value.
type CellRefExpr struct {
	Ref position.Position
}

func (BinaryExpr) isExpr()  {}
func (UnaryExpr) isExpr()   {}
func (ConstExpr) isExpr()   {}
func (CellRefExpr) isExpr() {}

// referencedCells walks expr and returns every CellRefExpr position
// it contains, in order of first appearance, deduplicated.
func referencedCells(expr Expr) []position.Position {
	var out []position.Position
	seen := make(map[position.Position]struct{})
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case BinaryExpr:
			walk(e.X)
			walk(e.Y)
		case UnaryExpr:
			walk(e.X)
		case ConstExpr:
		case CellRefExpr:
			if _, ok := seen[e.Ref]; !ok {
				seen[e.Ref] = struct{}{}
				out = append(out, e.Ref)
			}
		}
	}
	walk(expr)
	return out
}
