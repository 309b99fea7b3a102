// Package testutil provides fixtures for permgen end-to-end suites.
package testutil

import (
	"os"
	"path/filepath"
)

// Workspace is a disposable source-root layout: a temp directory holding
// the data file and whichever targets a spec chooses to create.
type Workspace struct {
	Root string
}

// NewWorkspace creates an empty workspace
func NewWorkspace() (*Workspace, error) {
	path, err := os.MkdirTemp("", "permgen-test-*")
	if err != nil {
		return nil, err
	}
	return &Workspace{Root: path}, nil
}

// WriteData writes the permissions source document at its default location
func (w *Workspace) WriteData(content string) (string, error) {
	return w.WriteFile(filepath.Join(".chezmoidata", "permissions.yaml"), content)
}

// WriteClaudeSettings writes the Claude settings template target
func (w *Workspace) WriteClaudeSettings(content string) (string, error) {
	return w.WriteFile(filepath.Join("dot_claude", "settings.json.tmpl"), content)
}

// WriteOpencodeConfig writes the opencode config target
func (w *Workspace) WriteOpencodeConfig(content string) (string, error) {
	return w.WriteFile(filepath.Join("dot_config", "opencode", "opencode.json"), content)
}

// EnsureCodexDir creates the codex rules directory without the rules file
func (w *Workspace) EnsureCodexDir() (string, error) {
	path := filepath.Join(w.Root, "dot_codex", "rules")
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// CodexRulesPath returns where the codex rules file would be generated
func (w *Workspace) CodexRulesPath() string {
	return filepath.Join(w.Root, "dot_codex", "rules", "default.rules")
}

// WriteFile writes a file at a path relative to the workspace root
func (w *Workspace) WriteFile(rel, content string) (string, error) {
	path := filepath.Join(w.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadFile reads a file at a path relative to the workspace root
func (w *Workspace) ReadFile(rel string) (string, error) {
	content, err := os.ReadFile(filepath.Join(w.Root, rel))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Exists checks if a path relative to the workspace root exists
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(w.Root, rel))
	return err == nil
}

// Cleanup removes the workspace and all contents
func (w *Workspace) Cleanup() {
	os.RemoveAll(w.Root)
}
