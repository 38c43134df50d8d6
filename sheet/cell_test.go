package sheet

import (
	"testing"

	"github.com/kalexmills/sheetengine/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopResolve(position.Position) (float64, error) { return 0, nil }

func TestNewCell_Classification(t *testing.T) {
	empty, err := newCell("")
	require.NoError(t, err)
	assert.Equal(t, variantEmpty, empty.variant)
	assert.Equal(t, "", empty.GetText())
	assert.Equal(t, numberValue(0), empty.GetValue(noopResolve))

	text, err := newCell("hello")
	require.NoError(t, err)
	assert.Equal(t, variantText, text.variant)
	assert.Equal(t, "hello", text.GetText())

	f, err := newCell("=1+1")
	require.NoError(t, err)
	assert.Equal(t, variantFormula, f.variant)
	assert.Equal(t, "=1+1", f.GetText())
}

func TestNewCell_MalformedFormula(t *testing.T) {
	_, err := newCell("=1+")
	assert.Error(t, err)
}

func TestNewCell_EscapedTextVsRealFormula(t *testing.T) {
	escaped, err := newCell("'=1+1")
	require.NoError(t, err)
	assert.Equal(t, variantText, escaped.variant)
	assert.Equal(t, "'=1+1", escaped.GetText())
	v := escaped.GetValue(noopResolve)
	assert.Equal(t, textValue("=1+1"), v)
}

func TestNewCell_LoneEqualsIsText(t *testing.T) {
	c, err := newCell("=")
	require.NoError(t, err)
	assert.Equal(t, variantText, c.variant)
	assert.Equal(t, "=", c.GetText())
}

func TestCell_ReferencedCellsEmptyForNonFormula(t *testing.T) {
	text, _ := newCell("plain")
	assert.Nil(t, text.ReferencedCells())

	empty, _ := newCell("")
	assert.Nil(t, empty.ReferencedCells())
}

func TestCell_InvalidateCacheIsNoOpForNonFormula(t *testing.T) {
	text, _ := newCell("plain")
	text.InvalidateCache() // must not panic
	empty, _ := newCell("")
	empty.InvalidateCache()
}

func TestCell_GetValueMemoizes(t *testing.T) {
	c, err := newCell("=1+1")
	require.NoError(t, err)

	calls := 0
	resolve := func(p position.Position) (float64, error) {
		calls++
		return 0, nil
	}
	v1 := c.GetValue(resolve)
	v2 := c.GetValue(resolve)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 0, calls) // "=1+1" has no cell references, but the cache itself means a second eval never runs the expression again

	withRef, err := newCell("=A1")
	require.NoError(t, err)
	withRef.GetValue(resolve)
	withRef.GetValue(resolve)
	assert.Equal(t, 1, calls)
}
