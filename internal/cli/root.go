// Package cli holds the schedule-builder cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-builder/internal/config"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
	"github.com/preston-bernstein/schedule-builder/internal/server"
)

const serviceName = "schedule-builder"

// newRemote is swapped in tests for an in-memory remote.
var newRemote = func(cfg config.Config) orchestrator.Remote {
	return server.BuildRemote(cfg)
}

type options struct {
	configPath string
	sport      string
	conference string
	verbose    bool
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Conference schedule builder",
		Version:      version,
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (yaml or json)")
	flags.StringVar(&opts.sport, "sport", "", "sport to select (overrides config)")
	flags.StringVar(&opts.conference, "conference", "", "conference to select (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log orchestrator activity to stderr")

	root.AddCommand(
		newServeCommand(opts, version),
		newMatrixCommand(opts),
		newViolationsCommand(opts),
		newExportCommand(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if o.sport != "" {
		cfg.Defaults.Sport = o.sport
	}
	if o.conference != "" {
		cfg.Defaults.Conference = o.conference
	}
	return cfg, nil
}

// commandLogger keeps one-shot commands quiet unless --verbose is set.
func (o *options) commandLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.Config{
		Level:   level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Output:  w,
	})
}

// openSchedule selects the configured sport and makes scheduleID current on a fresh orchestrator.
func (o *options) openSchedule(cmd *cobra.Command, cfg config.Config, scheduleID string) (*orchestrator.Orchestrator, error) {
	if strings.TrimSpace(cfg.Defaults.Sport) == "" {
		return nil, orchestrator.ErrNoSport
	}
	ctx := cmd.Context()
	logger := o.commandLogger(cfg, cmd.ErrOrStderr())
	orch := server.BuildOrchestrator(cfg, newRemote(cfg), nil, logger)

	if err := orch.SelectSport(ctx, cfg.Defaults.Sport, cfg.Defaults.Conference); err != nil {
		return nil, err
	}
	if _, err := orch.LoadSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}
	return orch, nil
}
