package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	s := Seq(24)
	assert.Len(t, s, 24)
	for _, c := range s {
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		assert.True(t, ok, "unexpected rune %q", c)
	}

	// Two draws colliding would mean something is badly wrong.
	assert.NotEqual(t, Seq(24), Seq(24))
	assert.Empty(t, Seq(0))
}

func TestNum(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Num(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
	assert.Equal(t, 0, Num(1))
}
