package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, New(0, 0).IsValid())
	assert.True(t, New(MaxIndex-1, MaxIndex-1).IsValid())
	assert.False(t, New(-1, 0).IsValid())
	assert.False(t, New(0, -1).IsValid())
	assert.False(t, New(MaxIndex, 0).IsValid())
	assert.False(t, New(0, MaxIndex).IsValid())
}

func TestLess(t *testing.T) {
	assert.True(t, New(0, 0).Less(New(0, 1)))
	assert.True(t, New(0, 5).Less(New(1, 0)))
	assert.False(t, New(1, 0).Less(New(0, 5)))
	assert.False(t, New(2, 2).Less(New(2, 2)))
}
