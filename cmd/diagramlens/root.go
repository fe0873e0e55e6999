package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/assistant"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
)

var errSnapshotRequired = errors.New("--snapshot is required")

// app holds state shared by all subcommands.
type app struct {
	configPath   string
	snapshotPath string
	logLevel     string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "diagramlens",
		Short: "Explain the elements of a whiteboard diagram",
		Long: `diagramlens reads a canvas snapshot (a JSON array of elements, or an
object with an "elements" array) and answers questions about it: what
each element is, what sits near it, the order the diagram reads in, and
what a selected element means for a topic.

Commands print JSON to stdout. Logs go to stderr.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("%w: log level %q", config.ErrInvalidSetting, a.logLevel)
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML or JSON config file")
	flags.StringVarP(&a.snapshotPath, "snapshot", "s", "", `Canvas snapshot file ("-" for stdin)`)
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newDescribeCmd(a),
		newContextCmd(a),
		newOrderCmd(a),
		newPromptCmd(a),
		newExplainCmd(a),
		newGenerateCmd(a),
	)
	return root
}

// settings loads the config file and environment overrides.
func (a *app) settings() (config.Settings, error) {
	return config.Load(a.configPath)
}

// snapshot decodes the snapshot named by --snapshot.
func (a *app) snapshot(cmd *cobra.Command) (*diagramlens.Snapshot, error) {
	var r io.Reader
	switch a.snapshotPath {
	case "":
		return nil, errSnapshotRequired
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(a.snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}
	return diagramlens.DecodeSnapshot(r)
}

// assistant builds an Assistant from s. The returned func closes the
// cache store.
func (a *app) assistant(ctx context.Context, s config.Settings) (*assistant.Assistant, func(), error) {
	client, err := assistant.NewClient(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	store, err := assistant.NewStore(s.Cache)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {}
	if store != nil {
		closeStore = func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("closing cache", slog.String("error", err.Error()))
			}
		}
	}

	return assistant.New(client,
		assistant.WithSettings(s),
		assistant.WithLogger(a.logger),
		assistant.WithCache(store),
	), closeStore, nil
}
