// Package main provides the CLI entry point for seqstitch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sequencestitch/pkg/adapters/logger"
	"github.com/user/sequencestitch/pkg/config"
	"github.com/user/sequencestitch/pkg/ports"
)

var version = "dev"

// Flag categories
const (
	categoryOutput  = "Output"
	categoryVideo   = "Video and Quality"
	categoryCompare = "Comparison"
	categoryImport  = "Import"
	categoryProject = "Project"
	categoryRuntime = "Runtime"
	categoryDebug   = "Debug"
	categoryLogging = "Logging"
)

func main() {
	app := &cli.App{
		Name:        "seqstitch",
		Usage:       l10n.T("Turn image sequences into videos and videos into image sequences"),
		Description: l10n.T("seqstitch drives ffmpeg to stitch still images into a video, optionally side by side with a second sequence, and to extract the distinct frames of a video."),
		Version:     version,
		Commands: []*cli.Command{
			exportCommand(),
			importCommand(),
			probeCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

// commonFlags are shared by every command that runs ffmpeg.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file"),
			Category: l10n.T(categoryRuntime),
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to the ffmpeg executable (falls back to FFMPEG_PATH, then well-known locations)"),
			Category: l10n.T(categoryRuntime),
		},
		&cli.StringFlag{
			Name:     "temp-dir",
			Usage:    l10n.T("Directory for intermediate files"),
			Category: l10n.T(categoryRuntime),
		},
		&cli.BoolFlag{
			Name:     "keep-artifacts",
			Usage:    l10n.T("Keep intermediate files after the operation"),
			Category: l10n.T(categoryDebug),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save ffmpeg commands, logs and lists to the debug directory"),
			Category: l10n.T(categoryDebug),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T(categoryDebug),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T(categoryLogging),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output and the progress bar"),
			Category: l10n.T(categoryLogging),
		},
	}
}

// loadConfig reads the optional config file and applies common flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("temp-dir") {
		cfg.TempDir = c.String("temp-dir")
	}
	if c.IsSet("keep-artifacts") {
		cfg.KeepArtifacts = c.Bool("keep-artifacts")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level, err := ports.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = ports.LevelInfo
	}
	return logger.NewConsole(level)
}

// withSignals returns a context cancelled on SIGINT or SIGTERM.
func withSignals(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("seqstitch version %s", version))
			return nil
		},
	}
}
