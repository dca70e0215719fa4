package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	argform "github.com/goliatone/go-argform"
	"github.com/goliatone/go-argform/internal/demo"
	"github.com/goliatone/go-argform/pkg/orchestrator"
)

const envPrefix = "ARGFORM_"

type config struct {
	Frontend string
	Overlay  string
	Prefill  string
	Inspect  bool
	LogLevel string
	LogFile  string
}

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Getenv).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(getenv func(string) string) *cobra.Command {
	env := func(key string) string {
		return strings.TrimSpace(getenv(envPrefix + key))
	}

	var cfg config
	cmd := &cobra.Command{
		Use:          "argform-demo",
		Short:        "Show the demo argument schema as an interactive form",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog := newLogger(cmd.ErrOrStderr(), cfg)
			defer closeLog()
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Frontend, "frontend", env("FRONTEND"), "frontend to show: tui|window (default tui)")
	flags.StringVar(&cfg.Overlay, "overlay", env("OVERLAY"), "JSON, YAML or TOML file with labels and help text")
	flags.StringVar(&cfg.Prefill, "prefill", env("PREFILL"), "argument string used to fill the form before it opens")
	flags.BoolVar(&cfg.Inspect, "inspect", false, "print the synthesized form as JSON and exit")
	flags.StringVar(&cfg.LogLevel, "log.level", env("LOG_LEVEL"), "diagnostics level: trace|debug|info|warn|error (default warn)")
	flags.StringVar(&cfg.LogFile, "log.file", env("LOG_FILE"), "also write JSON diagnostics to this file")
	_ = cmd.MarkFlagFilename("overlay", "json", "yaml", "yml", "toml")
	_ = cmd.MarkFlagFilename("log.file")
	return cmd
}

func run(ctx context.Context, out io.Writer, cfg config, logger zerolog.Logger) error {
	streamer := demo.NewStreamer()
	opts := []argform.Option{orchestrator.WithLogger(logger)}

	if path := strings.TrimSpace(cfg.Overlay); path != "" {
		overlay, err := argform.WithOverlayFile(path)
		if err != nil {
			return err
		}
		opts = append(opts, overlay)
	}
	if prefill := strings.TrimSpace(cfg.Prefill); prefill != "" {
		argv, err := shellwords.Parse(prefill)
		if err != nil {
			return err
		}
		opts = append(opts, orchestrator.WithPrefill(argv))
	}

	app, err := argform.New(demo.Schema(), streamer.OnRun, opts...)
	if err != nil {
		return err
	}
	if cfg.Inspect {
		return writeInspection(out, app.Form())
	}
	return app.Run(ctx, cfg.Frontend)
}

func newLogger(stderr io.Writer, cfg config) (zerolog.Logger, func()) {
	level := zerolog.WarnLevel
	if raw := strings.ToLower(strings.TrimSpace(cfg.LogLevel)); raw != "" {
		if lv, err := zerolog.ParseLevel(raw); err == nil {
			level = lv
		}
	}

	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), func() {}
	}

	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
		logger.Warn().Err(err).Str("log_file", path).Msg("cannot open log file; continuing without file logs")
		return logger, func() {}
	}
	logger := zerolog.New(io.MultiWriter(console, file)).Level(level).With().Timestamp().Logger()
	return logger, func() { _ = file.Close() }
}
