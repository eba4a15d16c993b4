package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/srodi/spamtop/pkg/config"
	"github.com/srodi/spamtop/pkg/logging"
	"github.com/srodi/spamtop/pkg/monitor"
	"github.com/srodi/spamtop/pkg/ui"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "spamtop: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "spamtop",
		Short:         "Periodic CPU, memory and process monitor backed by procfs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.NewViper(), cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (default $HOME/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")")
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	log, closeLog, err := openLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := monitor.NewHost(cfg.ProcRoot, log)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Filter:   cfg.FilterConfig(),
		Sort:     cfg.SortKey(),
		TopK:     cfg.TopK,
		Interval: cfg.Interval,
		Banner:   cfg.Banner,
	}

	var renderer ui.Renderer
	switch cfg.Output {
	case config.OutputYAML:
		renderer = ui.NewYAMLRenderer(stdout, opts)
	default:
		if f, ok := stdout.(*os.File); ok && ui.IsTerminal(f) {
			opts.Clear = true
			restore := ui.EnableSingleView(f, os.Stdin, log)
			defer restore()
		}
		renderer = ui.NewTextRenderer(stdout, opts)
	}

	log.Info("monitor started",
		logging.String("proc_root", cfg.ProcRoot),
		logging.String("interval", cfg.Interval.String()),
		logging.Int("count", cfg.Count))

	err = m.Run(ctx, cfg.Interval, cfg.Count, renderer.Render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openLogger(cfg *config.Config, stderr io.Writer) (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogFile == "" {
		return logging.NewLogger(stderr, "spamtop").WithLevel(level), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logging.NewLogger(f, "spamtop").WithLevel(level), func() { _ = f.Close() }, nil
}
