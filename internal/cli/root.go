// Package cli implements the l14flow command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"l14flow/internal/config"
	"l14flow/internal/observability"
)

// app holds the state shared by every command once the persistent
// pre-run has loaded the configuration.
type app struct {
	configPath string
	logLevel   string
	stderr     io.Writer

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the l14flow command tree. Logs go to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           "l14flow",
		Short:         "Lay out styled trees with the l14flow flow-tree engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./l14flow.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newReflowCmd(a))
	root.AddCommand(newClassListCmd(a))
	return root
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context, stderr io.Writer) error {
	return NewRootCommand(stderr).ExecuteContext(ctx)
}

func (a *app) initialize(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("logger.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLoggerTo(cfg.Logger, zapcore.AddSync(a.stderr))
	return nil
}
