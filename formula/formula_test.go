package formula

import (
	"testing"

	"github.com/kalexmills/sheetengine/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Expression(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "literal sum", input: "1+2", want: "1+2"},
		{name: "ignores whitespace", input: "  12 + 14 ", want: "12+14"},
		{name: "cell ref", input: "A1*13", want: "A1*13"},
		{name: "precedence", input: "A1*B2+C3*D4", want: "A1*B2+C3*D4"},
		{name: "left assoc subtraction drops lhs parens", input: "(A1-B1)-C1", want: "A1-B1-C1"},
		{name: "rhs paren required", input: "A1-(B1-C1)", want: "A1-(B1-C1)"},
		{name: "unary minus", input: "-A1+1", want: "-A1+1"},
		{name: "constant fold", input: "--5", want: "5"},
		{name: "malformed", input: "1+", wantErr: true},
		{name: "unknown token", input: "1+@", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Expression())
		})
	}
}

func TestParse_ReferencedCells(t *testing.T) {
	f, err := Parse("A1+B2*A1+C3")
	require.NoError(t, err)
	assert.Equal(t, []position.Position{
		position.New(0, 0), // A1
		position.New(1, 1), // B2
		position.New(2, 2), // C3
	}, f.ReferencedCells())
}

func TestParse_ReRoundTrip(t *testing.T) {
	f, err := Parse("A1*(B2+C3)-4")
	require.NoError(t, err)

	again, err := Parse(f.Expression())
	require.NoError(t, err)
	assert.Equal(t, f.Expression(), again.Expression())
}

func constLookup(vals map[position.Position]float64) func(position.Position) (float64, error) {
	return func(p position.Position) (float64, error) {
		return vals[p], nil
	}
}

func TestEvaluate(t *testing.T) {
	f, err := Parse("A1+A2*2")
	require.NoError(t, err)

	v, err := f.Evaluate(constLookup(map[position.Position]float64{
		position.New(0, 0): 3,
		position.New(1, 0): 4,
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(11), v)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	f, err := Parse("1/0")
	require.NoError(t, err)

	_, err = f.Evaluate(constLookup(nil))
	assert.ErrorIs(t, err, ErrDiv0)
}

func TestEvaluate_PropagatesLookupError(t *testing.T) {
	f, err := Parse("A1+1")
	require.NoError(t, err)

	_, err = f.Evaluate(func(position.Position) (float64, error) {
		return 0, ErrValue
	})
	assert.ErrorIs(t, err, ErrValue)
}

func TestParseCellRef_RoundTrip(t *testing.T) {
	for _, addr := range []string{"A1", "Z1", "AA1", "AB12", "BA100"} {
		p, err := parseCellRef(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, formatCellRef(p))
	}
}
