// Package lint statically checks a permission source document for entries
// that will not behave the way they read.
//
// Shared bash entries are parsed as shell syntax: prefix rules cover
// exactly one plain command, so pipes, redirections and run-time
// expansions are flagged before they silently match nothing. Opencode
// patterns are validated as globs, and decision words are checked against
// the vocabulary with a closest-match suggestion.
package lint

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/bmatcuk/doublestar/v4"
	"mvdan.cc/sh/v3/syntax"

	"permgen/internal/config"
	"permgen/internal/rules"
)

// Severity ranks a finding.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Finding is one lint result tied to a source list entry.
type Finding struct {
	Severity Severity
	Group    string
	Entry    string
	Message  string
}

func (f Finding) String() string {
	if f.Entry == "" {
		return fmt.Sprintf("%s: %s: %s", f.Severity, f.Group, f.Message)
	}
	return fmt.Sprintf("%s: %s: %q: %s", f.Severity, f.Group, f.Entry, f.Message)
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

// Check runs every lint rule over cfg. Findings come back in document
// order: shared bash lists, then claude, then opencode.
func Check(cfg config.Config) []Finding {
	var findings []Finding

	findings = append(findings, checkBashList("bash.allow", cfg.Bash.Allow)...)
	findings = append(findings, checkBashList("bash.ask", cfg.Bash.Ask)...)
	findings = append(findings, checkBashList("bash.deny", cfg.Bash.Deny)...)
	findings = append(findings, checkConflicts("bash", cfg.Bash.Allow, cfg.Bash.Deny)...)

	findings = append(findings, checkClaudeList("claude.allow", cfg.Claude.Allow, cfg.Bash.Allow)...)
	findings = append(findings, checkClaudeList("claude.ask", cfg.Claude.Ask, cfg.Bash.Ask)...)
	findings = append(findings, checkClaudeList("claude.deny", cfg.Claude.Deny, cfg.Bash.Deny)...)
	findings = append(findings, checkDirectories("claude.additionalDirectories", cfg.Claude.AdditionalDirectories)...)

	findings = append(findings, checkDefault("opencode.bash.default", cfg.Opencode.Bash.Default)...)
	findings = append(findings, checkPatterns("opencode.bash.allow", cfg.Opencode.Bash.Allow)...)
	findings = append(findings, checkPatterns("opencode.bash.ask", cfg.Opencode.Bash.Ask)...)
	findings = append(findings, checkPatterns("opencode.bash.deny", cfg.Opencode.Bash.Deny)...)
	findings = append(findings, checkConflicts("opencode.bash", cfg.Opencode.Bash.Allow, cfg.Opencode.Bash.Deny)...)

	return findings
}

func checkBashList(group string, commands []string) []Finding {
	var findings []Finding
	for _, cmd := range rules.Normalize(commands) {
		findings = append(findings, checkCommand(group, cmd)...)
	}
	return findings
}

func checkCommand(group, cmd string) []Finding {
	parser := syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)

	file, err := parser.Parse(strings.NewReader(cmd), "")
	if err != nil {
		return []Finding{{Severity: Error, Group: group, Entry: cmd, Message: "not valid shell syntax"}}
	}
	if len(file.Stmts) != 1 {
		return []Finding{{Severity: Error, Group: group, Entry: cmd, Message: "holds more than one command; prefix rules cover exactly one"}}
	}

	stmt := file.Stmts[0]
	if stmt.Background || stmt.Coprocess || stmt.Negated {
		return []Finding{{Severity: Error, Group: group, Entry: cmd, Message: "holds more than a plain command invocation"}}
	}
	if len(stmt.Redirs) > 0 {
		return []Finding{{Severity: Error, Group: group, Entry: cmd, Message: "redirections are not part of the matched prefix"}}
	}
	if _, ok := stmt.Cmd.(*syntax.CallExpr); !ok {
		return []Finding{{Severity: Error, Group: group, Entry: cmd, Message: "pipes and control operators break prefix matching"}}
	}

	var dynamic, quoted bool
	syntax.Walk(file, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.CmdSubst, *syntax.ParamExp, *syntax.ArithmExp:
			dynamic = true
		case *syntax.SglQuoted, *syntax.DblQuoted:
			quoted = true
		}
		return true
	})

	var findings []Finding
	if dynamic {
		findings = append(findings, Finding{
			Severity: Error, Group: group, Entry: cmd,
			Message: "expands at run time; matched prefixes must be literal",
		})
	}
	if quoted {
		findings = append(findings, Finding{
			Severity: Warning, Group: group, Entry: cmd,
			Message: "quotes are matched literally by consumers",
		})
	}
	if strings.ContainsAny(cmd, "*?") {
		findings = append(findings, Finding{
			Severity: Warning, Group: group, Entry: cmd,
			Message: "wildcard is a literal token in rule files",
		})
	}
	// Glob-bearing entries flow into the opencode pattern list unchanged,
	// so they must also hold up as globs.
	if strings.ContainsAny(cmd, "*?[") && !doublestar.ValidatePattern(cmd) {
		findings = append(findings, Finding{
			Severity: Error, Group: group, Entry: cmd,
			Message: "malformed glob pattern",
		})
	}
	return findings
}

// checkConflicts flags entries listed under both allow and deny.
func checkConflicts(group string, allow, deny []string) []Finding {
	denied := make(map[string]struct{})
	for _, entry := range rules.Normalize(deny) {
		denied[entry] = struct{}{}
	}

	var findings []Finding
	for _, entry := range rules.Normalize(allow) {
		if _, ok := denied[entry]; ok {
			findings = append(findings, Finding{
				Severity: Warning, Group: group, Entry: entry,
				Message: "listed under both allow and deny",
			})
		}
	}
	return findings
}

func checkClaudeList(group string, entries, shared []string) []Finding {
	sentinels := 0
	for _, entry := range rules.Normalize(entries) {
		if entry == rules.Sentinel {
			sentinels++
		}
	}

	var findings []Finding
	if sentinels > 1 {
		findings = append(findings, Finding{
			Severity: Warning, Group: group, Entry: rules.Sentinel,
			Message: "repeated sentinel collapses into one expansion",
		})
	}
	if sentinels > 0 && len(rules.Normalize(shared)) == 0 {
		findings = append(findings, Finding{
			Severity: Warning, Group: group, Entry: rules.Sentinel,
			Message: "sentinel expands to nothing; the shared list is empty",
		})
	}
	return findings
}

func checkDirectories(group string, dirs []string) []Finding {
	var findings []Finding
	for _, dir := range rules.Normalize(dirs) {
		if dir == rules.Sentinel {
			findings = append(findings, Finding{
				Severity: Error, Group: group, Entry: dir,
				Message: "sentinel is not expanded in directory lists",
			})
		}
	}
	return findings
}

func checkDefault(group, value string) []Finding {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || rules.Decision(trimmed).Valid() {
		return nil
	}

	msg := "unknown decision"
	if suggestion := closestDecision(trimmed); suggestion != "" {
		msg = fmt.Sprintf("unknown decision, did you mean %q", suggestion)
	}
	return []Finding{{Severity: Error, Group: group, Entry: trimmed, Message: msg}}
}

// closestDecision suggests a decision within edit distance two.
func closestDecision(value string) string {
	best := ""
	bestDist := 3
	for _, d := range rules.Decisions() {
		dist := levenshtein.ComputeDistance(strings.ToLower(value), string(d))
		if dist < bestDist {
			bestDist = dist
			best = string(d)
		}
	}
	return best
}

func checkPatterns(group string, patterns []string) []Finding {
	var findings []Finding
	for _, pattern := range rules.Normalize(patterns) {
		if !doublestar.ValidatePattern(pattern) {
			findings = append(findings, Finding{
				Severity: Error, Group: group, Entry: pattern,
				Message: "malformed glob pattern",
			})
		}
	}
	return findings
}
