// Package opencode emits the bash permission map of an opencode config.
package opencode

import (
	"encoding/json"
	"fmt"
	"strings"

	"permgen/internal/config"
	"permgen/internal/ordered"
	"permgen/internal/rules"
	"permgen/internal/splice"
)

// Rule pairs a glob pattern with its decision. Order is significant: the
// consumer evaluates later entries as overrides of earlier ones for the
// same command, so duplicates across decisions are kept on purpose.
type Rule struct {
	Pattern  string
	Decision string
}

// Markers delimit the generator-owned block inside a config template.
var Markers = splice.Markers{Start: rules.MarkerStart, End: rules.MarkerEnd}

// Build compiles the ordered rule list: the catch-all default first, then
// allow, ask and deny rules. Each decision's set is the shared bash list
// concatenated with the opencode-specific patterns, expanded and
// deduplicated within that decision only.
func Build(cfg config.Config) []Rule {
	def := strings.TrimSpace(cfg.Opencode.Bash.Default)
	if def == "" {
		def = string(rules.Allow)
	}

	out := []Rule{{Pattern: "*", Decision: def}}
	out = append(out, decisionRules(rules.Allow, cfg.Bash.Allow, cfg.Opencode.Bash.Allow)...)
	out = append(out, decisionRules(rules.Ask, cfg.Bash.Ask, cfg.Opencode.Bash.Ask)...)
	out = append(out, decisionRules(rules.Deny, cfg.Bash.Deny, cfg.Opencode.Bash.Deny)...)
	return out
}

func decisionRules(decision rules.Decision, shared, specific []string) []Rule {
	merged := make([]string, 0, len(shared)+len(specific))
	merged = append(merged, shared...)
	merged = append(merged, specific...)

	patterns := Expand(merged)
	out := make([]Rule, 0, len(patterns))
	for _, pattern := range patterns {
		out = append(out, Rule{Pattern: pattern, Decision: string(decision)})
	}
	return out
}

// Expand turns each bare literal into the literal plus a trailing-wildcard
// variant, so "git" matches both the bare command and its subcommands.
// Patterns already carrying glob metacharacters pass through unchanged.
// The result is deduplicated on first occurrence.
func Expand(values []string) []string {
	set := ordered.NewSet()
	for _, value := range rules.Normalize(values) {
		if strings.ContainsAny(value, "*?") {
			set.Add(value)
			continue
		}
		set.Add(value)
		set.Add(value + " *")
	}
	return set.Values()
}

// Render returns the rule list as the bash object's JSON text. The object
// is rendered flat; callers re-indent it for the destination line.
func Render(list []Rule) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, rule := range list {
		b.WriteString("  ")
		b.WriteString(jsonString(rule.Pattern))
		b.WriteString(": ")
		b.WriteString(jsonString(rule.Decision))
		if i < len(list)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// Update splices the rendered rules into doc. A document carrying the
// marker pair gets the block between the markers replaced; otherwise the
// value of the "bash" key inside the top-level "permission" object is
// replaced in place.
func Update(doc string, list []Rule) (string, error) {
	if splice.ResolveStrategy(doc, Markers) == splice.MarkerBlock {
		return updateMarkerBlock(doc, list)
	}
	return updateStructural(doc, list)
}

func updateMarkerBlock(doc string, list []Rule) (string, error) {
	lines, err := splice.InnerLines(Render(list))
	if err != nil {
		return "", err
	}
	return splice.ReplaceBlock(doc, Markers, lines)
}

func updateStructural(doc string, list []Rule) (string, error) {
	_, perm, err := splice.FindObject(doc, 1, "permission")
	if err != nil {
		return "", fmt.Errorf("locate permission: %w", err)
	}
	keyPos, value, err := splice.FindKeyWithin(doc, perm, 1, "bash")
	if err != nil {
		return "", fmt.Errorf("locate permission.bash: %w", err)
	}
	indent := splice.LineIndent(doc, keyPos)
	if strings.TrimSpace(indent) != "" {
		indent = ""
	}
	return splice.ReplaceSpan(doc, value, splice.Indent(Render(list), indent)), nil
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
