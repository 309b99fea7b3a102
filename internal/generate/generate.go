// Package generate runs a full generation pass over the three targets.
//
// Pass order is fixed: claude settings, codex rules, opencode config. A
// missing target is skipped with a notice. A malformed target aborts the
// run and leaves earlier targets' writes in place. Files are only touched
// when their rendered content differs from what is on disk.
package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"permgen/internal/claude"
	"permgen/internal/codex"
	"permgen/internal/config"
	"permgen/internal/logging"
	"permgen/internal/opencode"
)

// Options control one generation pass. Empty paths fall back to the
// defaults under the discovered source root.
type Options struct {
	WorkDir      string
	DataPath     string
	ClaudePath   string
	CodexPath    string
	OpencodePath string
	DryRun       bool
}

// Outcome describes what a pass did to one target file.
type Outcome int

const (
	// Skipped means the target was absent, so there was nothing to splice.
	Skipped Outcome = iota
	// Unchanged means the target already held the rendered content.
	Unchanged
	// Updated means new content was written, or would have been written
	// for a dry run.
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Change records the outcome for a single target.
type Change struct {
	Name    string
	Path    string
	Outcome Outcome
	Diff    string
}

// Result collects the outcomes of one pass.
type Result struct {
	Root    string
	Changes []Change
}

// Updated reports how many targets were, or would be, rewritten.
func (r *Result) Updated() int {
	n := 0
	for _, c := range r.Changes {
		if c.Outcome == Updated {
			n++
		}
	}
	return n
}

// Run executes one generation pass. On error the returned result still
// covers every target processed before the failure; their writes are kept.
func Run(opts Options) (*Result, error) {
	paths, err := ResolvePaths(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(paths.Data)
	if err != nil {
		return nil, err
	}

	res := &Result{Root: paths.Root}

	change, err := updateClaude(cfg, paths.Claude, opts.DryRun)
	if err != nil {
		return res, fmt.Errorf("claude: %w", err)
	}
	res.Changes = append(res.Changes, change)

	change, err = updateCodex(cfg, paths.Codex, opts.DryRun)
	if err != nil {
		return res, fmt.Errorf("codex: %w", err)
	}
	res.Changes = append(res.Changes, change)

	change, err = updateOpencode(cfg, paths.Opencode, opts.DryRun)
	if err != nil {
		return res, fmt.Errorf("opencode: %w", err)
	}
	res.Changes = append(res.Changes, change)

	return res, nil
}

func updateClaude(cfg config.Config, path string, dryRun bool) (Change, error) {
	change := Change{Name: "claude", Path: path}
	if !fileExists(path) {
		logging.Warn().Str("path", path).Msg("skipping claude: settings file not found")
		return change, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return change, fmt.Errorf("read target: %w", err)
	}

	updated, err := claude.Update(string(contents), claude.Build(cfg))
	if err != nil {
		return change, err
	}
	return finish(change, string(contents), updated, dryRun)
}

func updateCodex(cfg config.Config, path string, dryRun bool) (Change, error) {
	change := Change{Name: "codex", Path: path}
	dir := filepath.Dir(path)
	if !dirExists(dir) {
		logging.Warn().Str("dir", dir).Msg("skipping codex: rules directory not found")
		return change, nil
	}

	before := ""
	data, err := os.ReadFile(path)
	if err == nil {
		before = string(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return change, fmt.Errorf("read target: %w", err)
	}

	return finish(change, before, codex.Render(codex.Build(cfg)), dryRun)
}

func updateOpencode(cfg config.Config, path string, dryRun bool) (Change, error) {
	change := Change{Name: "opencode", Path: path}
	if !fileExists(path) {
		logging.Warn().Str("path", path).Msg("skipping opencode: config file not found")
		return change, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return change, fmt.Errorf("read target: %w", err)
	}

	updated, err := opencode.Update(string(contents), opencode.Build(cfg))
	if err != nil {
		return change, err
	}
	return finish(change, string(contents), updated, dryRun)
}

func finish(change Change, before, after string, dryRun bool) (Change, error) {
	if after == before {
		change.Outcome = Unchanged
		logging.Debug().Str("path", change.Path).Msg("target already up to date")
		return change, nil
	}

	change.Outcome = Updated
	if dryRun {
		diff, added, removed := renderDiff(change.Path, before, after)
		change.Diff = diff
		logging.Info().Str("path", change.Path).Int("added", added).Int("removed", removed).Msg("would update")
		return change, nil
	}

	if err := writeFileAtomic(change.Path, []byte(after), 0o644); err != nil {
		return change, err
	}
	logging.Info().Str("path", change.Path).Msg("updated")
	return change, nil
}
