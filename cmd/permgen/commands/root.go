// Package commands provides the CLI commands for permgen.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"permgen/internal/generate"
	"permgen/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	dataPath     string
	claudePath   string
	codexPath    string
	opencodePath string
	quiet        bool
	logLevel     string
)

var dryRun bool

var rootCmd = &cobra.Command{
	Use:   "permgen",
	Short: "Generate tool permission configs from one YAML source",
	Long: `permgen keeps tool permission policy in a single YAML document and
splices the generated rule sets into each tool's own config file,
leaving all surrounding content untouched.

Targets are the Claude settings template, the codex prefix-rule file,
and the opencode config. Paths default to their conventional locations
under the source root (the directory holding .chezmoidata/); targets
that do not exist are skipped.`,
	Version: Version,
	// SilenceUsage prevents printing usage on every error.
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the permissions YAML source")
	rootCmd.PersistentFlags().StringVar(&claudePath, "claude", "", "Path to the Claude settings template")
	rootCmd.PersistentFlags().StringVar(&codexPath, "codex", "", "Path to the codex rules file")
	rootCmd.PersistentFlags().StringVar(&opencodePath, "opencode", "", "Path to the opencode config")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only report errors")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print pending changes without writing anything")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("permgen %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging applies the global logging flags. Diagnostics go to
// stderr; stdout stays reserved for diffs and findings.
func setupLogging() {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(logLevel)
	if quiet {
		cfg.Level = logging.ErrorLevel
	}
	logging.Init(cfg)
}

// buildOptions merges path flags with their environment fallbacks.
func buildOptions() generate.Options {
	return generate.Options{
		DataPath:     envOrFlag(dataPath, "PERMGEN_DATA"),
		ClaudePath:   envOrFlag(claudePath, "PERMGEN_CLAUDE"),
		CodexPath:    envOrFlag(codexPath, "PERMGEN_CODEX"),
		OpencodePath: envOrFlag(opencodePath, "PERMGEN_OPENCODE"),
		DryRun:       dryRun,
	}
}

func envOrFlag(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	setupLogging()

	res, err := generate.Run(buildOptions())
	if err != nil {
		return err
	}

	if dryRun {
		for _, change := range res.Changes {
			if change.Diff != "" {
				fmt.Print(change.Diff)
			}
		}
	}
	return nil
}
