package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sequencestitch/pkg/orchestrator"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/summarizer"
)

func importCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "project",
			Aliases:  []string{"p"},
			Usage:    l10n.T("Save the extracted frames as a project file"),
			Category: l10n.T(categoryProject),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown summary to this path"),
			Category: l10n.T(categoryOutput),
		},
		&cli.IntFlag{
			Name:     "sample-rate",
			Usage:    l10n.T("Frames per second sampled before duplicate removal"),
			Category: l10n.T(categoryImport),
		},
		&cli.StringFlag{
			Name:     "decimate",
			Usage:    l10n.T("mpdecimate parameters, e.g. hi=768:lo=320:frac=0.33"),
			Category: l10n.T(categoryImport),
		},
		&cli.Int64Flag{
			Name:     "max-source-mb",
			Usage:    l10n.T("Largest accepted video in MiB (0 = unlimited)"),
			Category: l10n.T(categoryImport),
		},
	}

	return &cli.Command{
		Name:        "import",
		Usage:       l10n.T("Extract the distinct frames of a video"),
		ArgsUsage:   l10n.T("VIDEO"),
		Description: l10n.T("Decode a video into numbered PNG images, dropping frames that barely differ from the previous one."),
		Flags:       append(flags, commonFlags()...),
		Action:      runImport,
	}
}

func runImport(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New(l10n.T("exactly one video is required"))
	}
	video := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("sample-rate") {
		cfg.Import.SampleRate = c.Int("sample-rate")
	}
	if c.IsSet("decimate") {
		cfg.Import.DecimateParams = c.String("decimate")
	}
	if c.IsSet("max-source-mb") {
		cfg.Import.MaxSourceMB = c.Int64("max-source-mb")
	}
	log := newLogger(c, cfg)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := withSignals(context.Background(), log)
	defer cancel()

	report, finish := newProgressBar(l10n.T("Importing"), c.Bool("quiet"))
	result, err := a.orch.Import(ctx, orchestrator.ImportRequest{
		VideoPath: video,
		Progress:  report,
	})
	finish()
	if err != nil {
		if errors.Is(err, pipeline.ErrCancelled) {
			log.Warn(l10n.T("Import cancelled"))
		}
		return err
	}
	log.Info(l10n.F("Frames saved to %s", result.Dir))

	if path := c.String("project"); path != "" {
		project := ports.Project{
			FrameDuration: cfg.FrameDuration,
			Items:         frameItems(result.Frames),
		}
		if project.Settings, err = cfg.ExportSettings(); err != nil {
			return err
		}
		if err := a.store.Save(path, project); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		log.Info(l10n.F("Project saved to %s", path))
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.NewBuilder(summarizer.KindImport).
			WithSourceVideo(result.VideoPath, result.Duration).
			WithOutput(summarizer.OutputInfo{
				Path:       result.Dir,
				FrameCount: len(result.Frames),
				Elapsed:    result.Elapsed,
			}).
			Build()
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(translate),
			summarizer.WithVersion(version),
		), a.fs)
		if err := writer.Write(path, summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info(l10n.F("Summary saved to %s", path))
	}
	return nil
}

// frameItems turns extracted frames into sequence items. Frames are created
// in order, so their timestamps preserve it for a date sort.
func frameItems(frames []string) []pipeline.SequenceItem {
	base := time.Now()
	items := make([]pipeline.SequenceItem, len(frames))
	for i, frame := range frames {
		items[i] = pipeline.NewSequenceItem(frame, base.Add(time.Duration(i)*time.Millisecond))
	}
	return items
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show the duration, codec and size of a video"),
		ArgsUsage: l10n.T("VIDEO"),
		Flags:     commonFlags(),
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New(l10n.T("exactly one video is required"))
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, newLogger(c, cfg))
			if err != nil {
				return err
			}
			info, err := a.prober.Probe(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			fmt.Println(l10n.F("Duration: %.3f s", info.Duration.Seconds()))
			fmt.Println(l10n.F("Codec: %s", info.Codec))
			fmt.Println(l10n.F("Size: %dx%d", info.Width, info.Height))
			return nil
		},
	}
}
