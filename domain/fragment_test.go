package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragmentKind_String(t *testing.T) {
	tests := []struct {
		kind     FragmentKind
		expected string
	}{
		{FunctionFragment, "Function"},
		{TypeFragment, "Type"},
		{RuleBlockFragment, "RuleBlock"},
		{FragmentKind(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestLocation_Overlaps(t *testing.T) {
	a := &Location{FilePath: "a.go", StartLine: 10, EndLine: 20}
	b := &Location{FilePath: "a.go", StartLine: 15, EndLine: 25}
	c := &Location{FilePath: "a.go", StartLine: 30, EndLine: 40}
	d := &Location{FilePath: "b.go", StartLine: 10, EndLine: 20}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.False(t, a.Overlaps(d), "different files never overlap")
}

func TestLocation_Less(t *testing.T) {
	a := &Location{FilePath: "a.go", StartLine: 10, EndLine: 20}
	b := &Location{FilePath: "b.go", StartLine: 1, EndLine: 2}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestLocation_LineCount(t *testing.T) {
	l := &Location{StartLine: 10, EndLine: 20}
	assert.Equal(t, 11, l.LineCount())
}
