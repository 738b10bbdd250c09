// Command tidydo manages categories, items and backups directly against the record store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/internal/bootstrap"
	"github.com/fastygo/tidydo/internal/config"
	"github.com/fastygo/tidydo/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", domain.UserMessage(err))
		return 1
	}
	return 0
}

var (
	svc    *bootstrap.Services
	zapLog *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "tidydo",
	Short:         "TidyDo - categories, todos and backups from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := cfg.Logger.Level
		if os.Getenv("LOG_LEVEL") == "" {
			level = "warn"
		}
		zapLog, err = logger.New(logger.Config{Level: level, Encoding: "console", Output: os.Stderr})
		if err != nil {
			return err
		}
		svc, err = bootstrap.Open(cmd.Context(), cfg, zapLog, bootstrap.Options{})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if zapLog != nil {
			_ = zapLog.Sync()
		}
		return svc.Close()
	},
}

func out(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
