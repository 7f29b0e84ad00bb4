// Package cmd holds the ledger's cobra commands.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/config"
	"github.com/dhcgn/msg-ledger/console"
	"github.com/dhcgn/msg-ledger/runner"
)

// LoggerFunc builds the logger for a run and a cleanup to call when it ends.
type LoggerFunc func(cfg config.Config) (*slog.Logger, func() error, error)

type app struct {
	setupLogger LoggerFunc
}

// NewRootCommand builds the command tree.
func NewRootCommand(setupLogger LoggerFunc) (*cobra.Command, error) {
	a := &app{setupLogger: setupLogger}

	rootCmd := &cobra.Command{
		Use:           "msg-ledger",
		Short:         "Record, search and soft-delete short text messages between phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if err := config.RegisterFlags(rootCmd); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(
		a.sendCommand(),
		a.listCommand(),
		a.deletedCommand(),
		a.deleteCommand(),
		a.clearCommand(),
		a.reportCommand(),
		a.searchCommand(),
		a.exportCommand(),
		registerCommand(),
	)
	return rootCmd, nil
}

type runFunc func(r *runner.Runner, out *console.Console) error

// run loads config, sets up logging, opens the store and hands it to fn.
func (a *app) run(cmd *cobra.Command, needIdentity bool, fn runFunc) error {
	cfg, err := config.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if needIdentity {
		if err := cfg.RequireIdentity(); err != nil {
			return err
		}
	}

	logger, cleanup, err := a.setupLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = cleanup()
	}()
	slog.SetDefault(logger)

	out := console.New(cmd.OutOrStdout())

	r, err := runner.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Error("close backend", "err", err)
		}
	}()

	if err := r.LoadErr(); err != nil {
		out.Warning("Error loading messages: %v", err)
	}

	return fn(r, out)
}
