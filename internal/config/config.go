// Package config loads the permission source document.
//
// The document is a YAML file with three top-level groups: bash holds the
// shared command lists, claude and opencode hold the per-consumer lists.
// Every list is ordered and order is preserved all the way into the
// emitted targets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the decoded permission source document. It is rebuilt from the
// YAML file on every run and never mutated afterwards.
type Config struct {
	Bash     BashConfig     `yaml:"bash"`
	Claude   ClaudeConfig   `yaml:"claude"`
	Opencode OpencodeConfig `yaml:"opencode"`
}

// BashConfig holds the shared bash command lists keyed by decision.
type BashConfig struct {
	Allow []string `yaml:"allow"`
	Ask   []string `yaml:"ask"`
	Deny  []string `yaml:"deny"`
}

// ClaudeConfig holds the Claude Code permission lists. Entries may contain
// the bash sentinel to splice the expanded shared lists in place.
type ClaudeConfig struct {
	Allow                 []string `yaml:"allow"`
	Ask                   []string `yaml:"ask"`
	Deny                  []string `yaml:"deny"`
	AdditionalDirectories []string `yaml:"additionalDirectories"`
}

// OpencodeConfig holds the opencode permission lists.
type OpencodeConfig struct {
	Bash OpencodeBashConfig `yaml:"bash"`
}

// OpencodeBashConfig holds the opencode bash glob patterns keyed by
// decision, plus the default decision for the catch-all rule.
type OpencodeBashConfig struct {
	Default string   `yaml:"default"`
	Allow   []string `yaml:"allow"`
	Ask     []string `yaml:"ask"`
	Deny    []string `yaml:"deny"`
}

// Load reads and decodes the source document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read data: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
