package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default locations, relative to the discovered chezmoi source root.
const (
	DefaultDataPath     = ".chezmoidata/permissions.yaml"
	DefaultClaudePath   = "dot_claude/settings.json.tmpl"
	DefaultCodexPath    = "dot_codex/rules/default.rules"
	DefaultOpencodePath = "dot_config/opencode/opencode.json"
)

// Paths holds the resolved source and target locations for one pass.
type Paths struct {
	Root     string
	Data     string
	Claude   string
	Codex    string
	Opencode string
}

// ResolvePaths turns option overrides into absolute paths. Empty overrides
// default to the well-known locations under the source root, found by
// walking upward from the working directory until the data file appears.
func ResolvePaths(opts Options) (Paths, error) {
	start := opts.WorkDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Paths{}, fmt.Errorf("get working directory: %w", err)
		}
		start = cwd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve working directory: %w", err)
	}

	root, err := findRoot(start)
	if err != nil {
		return Paths{}, err
	}

	paths := Paths{Root: root}
	if paths.Data, err = resolveOrDefault(opts.DataPath, root, DefaultDataPath); err != nil {
		return Paths{}, err
	}
	if paths.Claude, err = resolveOrDefault(opts.ClaudePath, root, DefaultClaudePath); err != nil {
		return Paths{}, err
	}
	if paths.Codex, err = resolveOrDefault(opts.CodexPath, root, DefaultCodexPath); err != nil {
		return Paths{}, err
	}
	if paths.Opencode, err = resolveOrDefault(opts.OpencodePath, root, DefaultOpencodePath); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func findRoot(start string) (string, error) {
	dir := start
	for {
		if fileExists(filepath.Join(dir, DefaultDataPath)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not locate source root from %s", start)
}

func resolveOrDefault(path, root, defaultPath string) (string, error) {
	if path == "" {
		return filepath.Join(root, defaultPath), nil
	}
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		expanded, err := expandHome(path)
		if err != nil {
			return "", err
		}
		path = expanded
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return abs, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	return "", fmt.Errorf("unsupported home path: %s", path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
