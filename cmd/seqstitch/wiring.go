package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/user/sequencestitch/pkg/adapters/filesink"
	"github.com/user/sequencestitch/pkg/adapters/locator"
	"github.com/user/sequencestitch/pkg/adapters/mediaprobe"
	"github.com/user/sequencestitch/pkg/adapters/nullsink"
	"github.com/user/sequencestitch/pkg/adapters/osfilesystem"
	"github.com/user/sequencestitch/pkg/adapters/projectfile"
	"github.com/user/sequencestitch/pkg/adapters/thumbnail"
	"github.com/user/sequencestitch/pkg/config"
	"github.com/user/sequencestitch/pkg/ffargs"
	"github.com/user/sequencestitch/pkg/orchestrator"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/stages/encode"
	"github.com/user/sequencestitch/pkg/stages/extract"
	"github.com/user/sequencestitch/pkg/stages/normalize"
	"github.com/user/sequencestitch/pkg/supervisor"
)

// app holds the adapters shared by the commands.
type app struct {
	cfg    config.Config
	log    ports.Logger
	fs     *osfilesystem.FileSystem
	thumbs *thumbnail.Thumbnailer
	store  *projectfile.Store
	prober *mediaprobe.Prober
	orch   *orchestrator.Orchestrator
}

func newApp(cfg config.Config, log ports.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create adapters
	fs := osfilesystem.New()
	thumbs := thumbnail.New()
	runner := supervisor.NewRunner(log)
	loc := locator.New(cfg.FFmpegPath)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	// ffprobe is optional; MP4-family files are probed without it.
	ffprobe := cfg.FFprobePath
	if ffprobe == "" {
		if path, err := loc.FFprobe(); err == nil {
			ffprobe = path
		} else {
			log.Debug(l10n.F("ffprobe not found: %s", err))
		}
	}
	prober := mediaprobe.New(runner, ffprobe, log)

	// Create stages
	heuristic := cfg.Heuristic()
	normalizeStage := normalize.New(runner, fs, sink, log)
	normalizeStage.Heuristic = heuristic
	encodeStage := encode.NewStage(runner, fs, sink, ffargs.NewBuilder(), log)
	encodeStage.Heuristic = heuristic
	extractStage := extract.New(runner, fs, sink, log, cfg.ExtractOptions())

	// Create orchestrator
	orch := orchestrator.New(
		normalizeStage,
		encodeStage,
		extractStage,
		loc,
		fs,
		thumbs,
		prober,
		sink,
		log,
		cfg.ToOrchestratorConfig(),
	)

	return &app{
		cfg:    cfg,
		log:    log,
		fs:     fs,
		thumbs: thumbs,
		store:  projectfile.New(fs, thumbs, log),
		prober: prober,
		orch:   orch,
	}, nil
}
