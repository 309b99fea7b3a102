// Package rules holds the shared permission-rule vocabulary: the decision
// set, the bash sentinel, and the list transforms every emitter builds on.
package rules

import (
	"fmt"
	"strings"

	"permgen/internal/ordered"
)

// Decision is a permission policy outcome attached to a command or pattern.
type Decision string

const (
	Allow Decision = "allow"
	Ask   Decision = "ask"
	Deny  Decision = "deny"
)

// Decisions lists the valid decisions in their fixed emission order.
func Decisions() []Decision {
	return []Decision{Allow, Ask, Deny}
}

// Valid reports whether d is a member of the decision vocabulary.
func (d Decision) Valid() bool {
	switch d {
	case Allow, Ask, Deny:
		return true
	}
	return false
}

// Sentinel is the reserved list entry marking where expanded shared bash
// patterns are spliced into a Claude permission list.
const Sentinel = "__BASH__"

// Marker comments delimiting the generator-owned block in a target file.
// They are template comments so that rendered chezmoi output stays valid.
const (
	MarkerStart = "{{/* PERMISSIONS:START */}}"
	MarkerEnd   = "{{/* PERMISSIONS:END */}}"
)

// Normalize trims every entry and drops the ones that end up empty,
// preserving the original order.
func Normalize(values []string) []string {
	var out []string
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// BashPatterns converts bare command prefixes into Claude Bash permission
// tokens: "git" becomes Bash(git:*). Blank entries are dropped; order is
// preserved.
func BashPatterns(values []string) []string {
	var out []string
	for _, value := range Normalize(values) {
		out = append(out, fmt.Sprintf("Bash(%s:*)", value))
	}
	return out
}

// Merge combines a consumer-specific list with an expanded shared-pattern
// sequence. Every Sentinel occurrence is replaced in place by the full
// expanded sequence; a list without the Sentinel gets the expanded patterns
// appended instead. One running first-seen set deduplicates the whole
// result, so merging already-merged output is a no-op and an empty expanded
// sequence makes Sentinel occurrences vanish. The returned slice is never
// nil.
func Merge(values, expanded []string) []string {
	merged := ordered.NewSet()
	sawSentinel := false
	for _, item := range Normalize(values) {
		if item == Sentinel {
			sawSentinel = true
			merged.AddAll(expanded...)
			continue
		}
		merged.Add(item)
	}
	if !sawSentinel {
		merged.AddAll(expanded...)
	}
	return merged.Values()
}
