// Package codex compiles the shared bash lists into prefix rules and
// renders them as a default.rules file.
//
// Commands are tokenized on whitespace. Commands sharing a token count and
// all tokens but the last collapse into one rule whose final token is an
// alternation; everything else renders as a plain token-sequence rule.
package codex

import (
	"fmt"
	"strings"

	"permgen/internal/config"
	"permgen/internal/ordered"
	"permgen/internal/rules"
)

// Rule is one prefix_rule block of the rendered file.
type Rule struct {
	PatternPrefix []string
	PatternAlts   []string
	Decision      string
	Match         string
}

// Build compiles the shared bash lists in fixed decision order. Decisions
// are mapped to the rule-file vocabulary here: allow stays allow, ask
// becomes prompt, deny becomes forbidden.
func Build(cfg config.Config) []Rule {
	var out []Rule
	out = append(out, buildDecisionRules(decisionWord(rules.Allow), cfg.Bash.Allow)...)
	out = append(out, buildDecisionRules(decisionWord(rules.Ask), cfg.Bash.Ask)...)
	out = append(out, buildDecisionRules(decisionWord(rules.Deny), cfg.Bash.Deny)...)
	return out
}

func decisionWord(d rules.Decision) string {
	switch d {
	case rules.Ask:
		return "prompt"
	case rules.Deny:
		return "forbidden"
	default:
		return "allow"
	}
}

func buildDecisionRules(decision string, commands []string) []Rule {
	type group struct {
		prefix []string
		alts   *ordered.Set
	}
	var order []string
	singles := make(map[string][]string)
	groups := make(map[string]*group)

	for _, cmd := range commands {
		tokens := strings.Fields(cmd)
		switch len(tokens) {
		case 0:
			continue
		case 1:
			key := "single|" + tokens[0]
			if _, ok := singles[key]; !ok {
				singles[key] = tokens
				order = append(order, key)
			}
		default:
			prefix := tokens[:len(tokens)-1]
			key := fmt.Sprintf("group|%d|%s", len(tokens), strings.Join(prefix, "\x1f"))
			g, ok := groups[key]
			if !ok {
				g = &group{prefix: prefix, alts: ordered.NewSet()}
				groups[key] = g
				order = append(order, key)
			}
			g.alts.Add(tokens[len(tokens)-1])
		}
	}

	var out []Rule
	for _, key := range order {
		if tokens, ok := singles[key]; ok {
			out = append(out, Rule{
				PatternPrefix: tokens,
				Decision:      decision,
				Match:         strings.Join(tokens, " "),
			})
			continue
		}

		g := groups[key]
		alts := g.alts.Values()
		if len(alts) == 1 {
			// One alternative is no alternation at all.
			full := fullSequence(g.prefix, alts[0])
			out = append(out, Rule{
				PatternPrefix: full,
				Decision:      decision,
				Match:         strings.Join(full, " "),
			})
			continue
		}
		out = append(out, Rule{
			PatternPrefix: g.prefix,
			PatternAlts:   alts,
			Decision:      decision,
			Match:         strings.Join(fullSequence(g.prefix, alts[0]), " "),
		})
	}
	return out
}

func fullSequence(prefix []string, last string) []string {
	full := make([]string, 0, len(prefix)+1)
	full = append(full, prefix...)
	return append(full, last)
}

// Render serializes the rules as the default.rules file contents.
func Render(list []Rule) string {
	var b strings.Builder
	b.WriteString("# ~/.codex/rules/default.rules\n")
	b.WriteString("# Generated by permgen. Do not edit by hand.\n\n")
	for i, rule := range list {
		b.WriteString("prefix_rule(\n")
		b.WriteString(renderPattern(rule))
		b.WriteString(renderDecision(rule.Decision))
		b.WriteString(renderMatch(rule.Match))
		b.WriteString(")\n")
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPattern(rule Rule) string {
	if len(rule.PatternAlts) == 0 {
		return fmt.Sprintf("  pattern = [%s],\n", joinQuoted(rule.PatternPrefix))
	}
	var b strings.Builder
	b.WriteString("  pattern = [")
	b.WriteString(joinQuoted(rule.PatternPrefix))
	b.WriteString(", [\n")
	for _, alt := range rule.PatternAlts {
		fmt.Fprintf(&b, "    %q,\n", alt)
	}
	b.WriteString("  ]],\n")
	return b.String()
}

func renderDecision(decision string) string {
	if decision == "" || decision == "allow" {
		return "  decision = \"allow\",\n"
	}
	return fmt.Sprintf("  decision = %q,\n", decision)
}

func renderMatch(match string) string {
	if strings.TrimSpace(match) == "" {
		return ""
	}
	return fmt.Sprintf("  match = [%q],\n", match)
}

func joinQuoted(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, fmt.Sprintf("%q", token))
	}
	return strings.Join(parts, ", ")
}
