package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"permgen/internal/config"
	"permgen/internal/generate"
	"permgen/internal/lint"
	"permgen/internal/logging"
)

var checkNoColor bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the permissions source document",
	Long: `Check parses the source document and flags entries that will not
behave the way they read: command entries that are not a single plain
command, run-time expansions, malformed globs, unknown decision words,
and entries listed under both allow and deny.

Warnings are informational. Errors make the command exit non-zero.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable colored findings")
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupLogging()
	if checkNoColor {
		color.NoColor = true
	}

	paths, err := generate.ResolvePaths(buildOptions())
	if err != nil {
		return err
	}
	cfg, err := config.Load(paths.Data)
	if err != nil {
		return err
	}

	findings := lint.Check(cfg)
	for _, f := range findings {
		fmt.Println(findingColor(f.Severity).Sprint(f.String()))
	}

	if lint.HasErrors(findings) {
		errs := 0
		for _, f := range findings {
			if f.Severity == lint.Error {
				errs++
			}
		}
		return fmt.Errorf("%d error(s) in %s", errs, paths.Data)
	}

	logging.Info().Str("data", paths.Data).Int("warnings", len(findings)).Msg("source document checked")
	return nil
}

func findingColor(s lint.Severity) *color.Color {
	if s == lint.Error {
		return color.New(color.FgRed)
	}
	return color.New(color.FgYellow)
}
