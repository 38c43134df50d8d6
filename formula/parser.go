package formula

import (
	"fmt"
	"strconv"

	"github.com/xuri/efp"
)

// parser turns the token stream xuri/efp produces for a formula body
// into our own Expr AST using a standard precedence-climbing
// recursive descent: parseTerm/parseFactor/parseUnary/parsePrimary,
// loosest binding first.
type parser struct {
	toks []efp.Token
	pos  int
}

func newParser(body string) *parser {
	toks := efp.ExcelParser().Parse(body)
	filtered := toks[:0:0]
	for _, t := range toks {
		if t.TType == efp.TokenTypeWhiteSpace {
			continue
		}
		filtered = append(filtered, t)
	}
	return &parser{toks: filtered}
}

func (p *parser) peek() (efp.Token, bool) {
	if p.pos >= len(p.toks) {
		return efp.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (efp.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// parseFormula parses the full token stream as a single expression,
// erroring if tokens remain afterward.
func (p *parser) parseFormula() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(); ok {
		tok, _ := p.peek()
		return nil, fmt.Errorf("%w: unexpected token %q", ErrParse, tok.TValue)
	}
	return expr, nil
}

// parseTerm parses addition and subtraction, the lowest-precedence
// binary operators.
func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, '+', '-')
}

// parseFactor parses multiplication and division.
func (p *parser) parseFactor() (Expr, error) {
	return p.parseBinary(p.parseUnary, '*', '/')
}

func (p *parser) parseBinary(next func() (Expr, error), ops ...byte) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.TType != efp.TokenTypeOperatorInfix || !isOneOf(tok.TValue, ops) {
			return expr, nil
		}
		p.next()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		expr = BinaryExpr{X: expr, Op: tok.TValue[0], Y: rhs}
	}
}

func isOneOf(val string, ops []byte) bool {
	if len(val) != 1 {
		return false
	}
	for _, op := range ops {
		if val[0] == op {
			return true
		}
	}
	return false
}

// parseUnary parses a leading unary minus.
func (p *parser) parseUnary() (Expr, error) {
	tok, ok := p.peek()
	if ok && tok.TType == efp.TokenTypeOperatorPrefix && tok.TValue == "-" {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if c, ok := x.(ConstExpr); ok { // fold constant negation
			return ConstExpr{Value: -c.Value}, nil
		}
		return UnaryExpr{Op: '-', X: x}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses numbers, cell references, and parenthesized
// subexpressions.
func (p *parser) parsePrimary() (Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("%w: expected an operand, found end of formula", ErrParse)
	}
	switch {
	case tok.TType == efp.TokenTypeSubexpression && tok.TSubType == efp.TokenSubTypeStart:
		expr, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		stop, ok := p.next()
		if !ok || stop.TType != efp.TokenTypeSubexpression || stop.TSubType != efp.TokenSubTypeStop {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		return expr, nil
	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeNumber:
		v, err := strconv.ParseFloat(tok.TValue, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrParse, tok.TValue)
		}
		return ConstExpr{Value: v}, nil
	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeRange:
		ref, err := parseCellRef(tok.TValue)
		if err != nil {
			return nil, err
		}
		return CellRefExpr{Ref: ref}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %q", ErrParse, tok.TValue)
	}
}
