package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff_NoChange(t *testing.T) {
	diff, added, removed := renderDiff("f.json", "same\n", "same\n")
	assert.Empty(t, diff)
	assert.Zero(t, added)
	assert.Zero(t, removed)
}

func TestRenderDiff_CountsLines(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nx\ny\nc\n"

	diff, added, removed := renderDiff("f.json", before, after)

	assert.True(t, strings.HasPrefix(diff, "--- f.json\n+++ f.json\n"))
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}
