package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"permgen/internal/logging"
	"permgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the source document changes",
	Long: `Watch runs one generation pass, then keeps watching the source
document and regenerates the targets after every change. Stop it with
Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	setupLogging()

	w, err := watch.NewWatcher(buildOptions())
	if err != nil {
		return err
	}
	w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("stopping watch")
	return w.Stop()
}
