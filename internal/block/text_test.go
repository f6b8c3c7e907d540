package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLen(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "Hello", 5},
		{"combining", "éte", 3},
		{"emoji zwj", "a👩‍👩‍👧b", 3},
		{"hangul", "한국어", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Len(tt.in))
		})
	}
}

func TestSlice(t *testing.T) {
	s := "Hello world"

	assert.Equal(t, "Hello", Slice(s, 0, 5))
	assert.Equal(t, "world", Slice(s, 6, 11))
	assert.Equal(t, "world", Slice(s, 6, 99))
	assert.Equal(t, "Hello", Slice(s, -3, 5))
	assert.Equal(t, "", Slice(s, 7, 3))
	assert.Equal(t, "", Slice("", 0, 0))
}

func TestSliceKeepsClustersWhole(t *testing.T) {
	s := "éte"

	assert.Equal(t, "é", Slice(s, 0, 1))
	assert.Equal(t, "te", Slice(s, 1, 3))
}

func TestSplitConservesContent(t *testing.T) {
	inputs := []string{"", "x", "Hello world", "a👩‍👩‍👧b", "<b>bold</b> text"}

	for _, in := range inputs {
		n := Len(in)
		for p := -1; p <= n+1; p++ {
			head, tail := Split(in, p)
			assert.Equal(t, in, head+tail, "split %q at %d", in, p)
			assert.Equal(t, n, Len(head)+Len(tail), "split %q at %d", in, p)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 4))
	assert.Equal(t, 4, Clamp(9, 4))
	assert.Equal(t, 2, Clamp(2, 4))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 5, Width("Hello"))
	assert.Equal(t, 6, Width("한국어"))
}
