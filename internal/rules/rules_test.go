package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trims and drops blanks",
			input: []string{" a ", "", "  ", "b"},
			want:  []string{"a", "b"},
		},
		{
			name:  "keeps order",
			input: []string{"c", "a", "b"},
			want:  []string{"c", "a", "b"},
		},
		{
			name:  "keeps duplicates",
			input: []string{"a", "a"},
			want:  []string{"a", "a"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestBashPatterns(t *testing.T) {
	got := BashPatterns([]string{" git ", "", "npm run"})
	assert.Equal(t, []string{"Bash(git:*)", "Bash(npm run:*)"}, got)
}

func TestBashPatterns_Empty(t *testing.T) {
	assert.Nil(t, BashPatterns(nil))
}

func TestMerge_SentinelSplicesInPlace(t *testing.T) {
	got := Merge([]string{"x", Sentinel, "y"}, []string{"p1", "p2"})
	assert.Equal(t, []string{"x", "p1", "p2", "y"}, got)
}

func TestMerge_NoSentinelAppends(t *testing.T) {
	got := Merge([]string{"x", "y"}, []string{"p1"})
	assert.Equal(t, []string{"x", "y", "p1"}, got)
}

func TestMerge_RepeatedSentinelDeduplicates(t *testing.T) {
	got := Merge([]string{"alpha", Sentinel, "beta", Sentinel, "alpha"}, BashPatterns([]string{"git", "ls"}))
	assert.Equal(t, []string{"alpha", "Bash(git:*)", "Bash(ls:*)", "beta"}, got)
}

func TestMerge_EmptyExpandedDropsSentinel(t *testing.T) {
	got := Merge([]string{"x", Sentinel, "y"}, nil)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestMerge_Idempotent(t *testing.T) {
	expanded := BashPatterns([]string{"git"})

	once := Merge([]string{"x", Sentinel}, expanded)
	twice := Merge(once, expanded)

	assert.Equal(t, once, twice)
}

func TestMerge_NeverNil(t *testing.T) {
	got := Merge(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecisionValid(t *testing.T) {
	assert.True(t, Allow.Valid())
	assert.True(t, Ask.Valid())
	assert.True(t, Deny.Valid())
	assert.False(t, Decision("prompt").Valid())
	assert.False(t, Decision("").Valid())
}

func TestDecisionsOrder(t *testing.T) {
	assert.Equal(t, []Decision{Allow, Ask, Deny}, Decisions())
}
