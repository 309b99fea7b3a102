// Package claude emits the permission block of a Claude Code settings file.
package claude

import (
	"encoding/json"
	"fmt"
	"strings"

	"permgen/internal/config"
	"permgen/internal/rules"
	"permgen/internal/splice"
)

// Permissions is the generated settings block. Field order here is the
// rendered JSON order.
type Permissions struct {
	Allow                 []string `json:"allow"`
	Ask                   []string `json:"ask"`
	Deny                  []string `json:"deny"`
	AdditionalDirectories []string `json:"additionalDirectories"`
}

// Markers delimit the generator-owned block inside a settings template.
var Markers = splice.Markers{Start: rules.MarkerStart, End: rules.MarkerEnd}

// Build merges each per-decision list with the expanded shared bash list
// for that decision. No field is ever nil.
func Build(cfg config.Config) Permissions {
	return Permissions{
		Allow:                 rules.Merge(cfg.Claude.Allow, rules.BashPatterns(cfg.Bash.Allow)),
		Ask:                   rules.Merge(cfg.Claude.Ask, rules.BashPatterns(cfg.Bash.Ask)),
		Deny:                  rules.Merge(cfg.Claude.Deny, rules.BashPatterns(cfg.Bash.Deny)),
		AdditionalDirectories: ensureSlice(rules.Normalize(cfg.Claude.AdditionalDirectories)),
	}
}

// Update splices perm into doc. A document carrying the marker pair gets
// the block between the markers replaced; anything else gets the value of
// its top-level "permissions" key replaced in place, so plain settings
// files without markers keep working.
func Update(doc string, perm Permissions) (string, error) {
	if splice.ResolveStrategy(doc, Markers) == splice.MarkerBlock {
		return updateMarkerBlock(doc, perm)
	}
	return updateStructural(doc, perm)
}

func updateMarkerBlock(doc string, perm Permissions) (string, error) {
	data, err := json.MarshalIndent(perm, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal permissions: %w", err)
	}
	lines, err := splice.InnerLines(string(data))
	if err != nil {
		return "", err
	}
	return splice.ReplaceBlock(doc, Markers, lines)
}

func updateStructural(doc string, perm Permissions) (string, error) {
	keyPos, value, err := splice.FindKey(doc, 1, "permissions")
	if err != nil {
		return "", fmt.Errorf("locate permissions: %w", err)
	}
	indent := splice.LineIndent(doc, keyPos)
	if strings.TrimSpace(indent) != "" {
		indent = ""
	}
	data, err := json.MarshalIndent(perm, indent, "  ")
	if err != nil {
		return "", fmt.Errorf("marshal permissions: %w", err)
	}
	return splice.ReplaceSpan(doc, value, string(data)), nil
}

func ensureSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
