package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sequencestitch/pkg/orchestrator"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
	"github.com/user/sequencestitch/pkg/sequence"
	"github.com/user/sequencestitch/pkg/summarizer"
)

func exportCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output video file path (required)"),
			Category: l10n.T(categoryOutput),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown summary to this path"),
			Category: l10n.T(categoryOutput),
		},
		&cli.Float64Flag{
			Name:     "duration",
			Aliases:  []string{"t"},
			Usage:    l10n.T("Seconds each image is shown"),
			Category: l10n.T(categoryVideo),
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    l10n.T("Container format (mp4, mov, webm)"),
			Category: l10n.T(categoryVideo),
		},
		&cli.StringFlag{
			Name:     "resolution",
			Aliases:  []string{"r"},
			Usage:    l10n.T("Output resolution (original, 2x, 4x, 720p, 1080p, 4k)"),
			Category: l10n.T(categoryVideo),
		},
		&cli.StringFlag{
			Name:     "quality",
			Usage:    l10n.T("Quality preset (low, medium, high, lossless)"),
			Category: l10n.T(categoryVideo),
		},
		&cli.IntFlag{
			Name:     "fps",
			Usage:    l10n.T("Output frame rate (24, 30, 60)"),
			Category: l10n.T(categoryVideo),
		},
		&cli.BoolFlag{
			Name:     "hardware",
			Usage:    l10n.T("Use the platform hardware encoder when available"),
			Category: l10n.T(categoryVideo),
		},
		&cli.StringFlag{
			Name:     "sort",
			Usage:    l10n.T("Reorder images (none, name, date)"),
			Category: l10n.T(categoryVideo),
			Value:    "none",
		},
		&cli.StringSliceFlag{
			Name:     "compare",
			Usage:    l10n.T("Images or directories of the second sequence, shown next to the first"),
			Category: l10n.T(categoryCompare),
		},
		&cli.StringFlag{
			Name:     "stacking",
			Usage:    l10n.T("Comparison layout (horizontal, vertical)"),
			Category: l10n.T(categoryCompare),
		},
		&cli.IntFlag{
			Name:     "spacing",
			Usage:    l10n.T("Pixels between the two sequences; negative values overlap"),
			Category: l10n.T(categoryCompare),
		},
		&cli.StringFlag{
			Name:     "normalization",
			Usage:    l10n.T("Common frame size of both sequences (original, 720p, 1080p, 4k)"),
			Category: l10n.T(categoryCompare),
		},
		&cli.StringFlag{
			Name:     "project",
			Aliases:  []string{"p"},
			Usage:    l10n.T("Load images and settings from a project file"),
			Category: l10n.T(categoryProject),
		},
		&cli.StringFlag{
			Name:     "save-project",
			Usage:    l10n.T("Save images and settings to a project file"),
			Category: l10n.T(categoryProject),
		},
	}

	return &cli.Command{
		Name:        "export",
		Usage:       l10n.T("Create a video from images"),
		ArgsUsage:   l10n.T("IMAGE|DIRECTORY..."),
		Description: l10n.T("Stitch the given images, in order, into a video. Directories are expanded in natural name order. With --compare a second sequence is rendered next to the first."),
		Flags:       append(flags, commonFlags()...),
		Action:      runExport,
	}
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	project, err := a.buildProject(c)
	if err != nil {
		return err
	}

	if path := c.String("save-project"); path != "" {
		if err := a.store.Save(path, project); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		log.Info(l10n.F("Project saved to %s", path))
	}

	primary := sequence.New(a.fs, log)
	primary.Add(project.Items...)
	secondary := sequence.New(a.fs, log)
	secondary.Add(project.SecondaryItems...)

	ctx, cancel := withSignals(context.Background(), log)
	defer cancel()

	output := c.String("output")
	report, finish := newProgressBar(l10n.T("Exporting"), c.Bool("quiet"))
	log.Info(l10n.F("Exporting %d images to %s", primary.Len(), output))

	result, err := a.orch.Export(ctx, orchestrator.ExportRequest{
		Primary:       primary.Paths(),
		Secondary:     secondary.Paths(),
		FrameDuration: project.FrameDuration,
		Settings:      project.Settings,
		OutputPath:    output,
		Progress:      report,
	})
	finish()
	if err != nil {
		if errors.Is(err, pipeline.ErrCancelled) {
			log.Warn(l10n.T("Export cancelled"))
		}
		return err
	}
	log.Info(l10n.F("Output saved to %s", result.OutputPath))

	if path := c.String("summary"); path != "" {
		if err := a.writeExportSummary(path, project.Settings, result); err != nil {
			return err
		}
		log.Info(l10n.F("Summary saved to %s", path))
	}
	return nil
}

// buildProject merges the project file, the configuration and the flags.
func (a *app) buildProject(c *cli.Context) (ports.Project, error) {
	project := ports.Project{FrameDuration: a.cfg.FrameDuration}
	settings, err := a.cfg.ExportSettings()
	if err != nil {
		return project, err
	}
	project.Settings = settings

	if path := c.String("project"); path != "" {
		loaded, err := a.store.Load(path)
		if err != nil {
			return project, fmt.Errorf("load project: %w", err)
		}
		project = loaded
		a.log.Info(l10n.F("Loaded %d images from %s", len(project.Items), path))
	}

	if c.Args().Len() > 0 {
		items, err := collectItems(c.Args().Slice())
		if err != nil {
			return project, err
		}
		project.Items = items
	}
	if compare := c.StringSlice("compare"); len(compare) > 0 {
		items, err := collectItems(compare)
		if err != nil {
			return project, err
		}
		project.SecondaryItems = items
		if !project.Settings.Stacked() {
			project.Settings.Stacking = pipeline.StackHorizontal
		}
	}
	if len(project.Items) == 0 {
		return project, pipeline.ErrEmptyInput
	}

	if order, ok, err := parseSortOrder(c.String("sort")); err != nil {
		return project, err
	} else if ok {
		project.Items = sortItems(project.Items, order)
		project.SecondaryItems = sortItems(project.SecondaryItems, order)
	}

	if c.IsSet("duration") {
		project.FrameDuration = c.Float64("duration")
	}
	if err := applySettingFlags(c, &project.Settings); err != nil {
		return project, err
	}

	output := c.String("output")
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), "."); ext != "" && !c.IsSet("format") {
		if format, err := pipeline.ParseOutputFormat(ext); err == nil {
			project.Settings.Format = format
		}
	}
	return project, project.Settings.Validate()
}

func sortItems(items []pipeline.SequenceItem, order sequence.SortOrder) []pipeline.SequenceItem {
	seq := sequence.New(nil, nil)
	seq.Add(items...)
	seq.Sort(order)
	return seq.Items()
}

// applySettingFlags overrides settings with the flags that were given.
func applySettingFlags(c *cli.Context, s *pipeline.ExportSettings) error {
	var err error
	if c.IsSet("format") {
		if s.Format, err = pipeline.ParseOutputFormat(c.String("format")); err != nil {
			return err
		}
	}
	if c.IsSet("resolution") {
		if s.Resolution, err = pipeline.ParseResolutionScale(c.String("resolution")); err != nil {
			return err
		}
	}
	if c.IsSet("quality") {
		if s.Quality, err = pipeline.ParseQualityPreset(c.String("quality")); err != nil {
			return err
		}
	}
	if c.IsSet("fps") {
		s.FrameRate = pipeline.FrameRate(c.Int("fps"))
	}
	if c.IsSet("hardware") {
		s.Hardware = c.Bool("hardware")
	}
	if c.IsSet("stacking") {
		if s.Stacking, err = pipeline.ParseStackingMode(c.String("stacking")); err != nil {
			return err
		}
	}
	if c.IsSet("spacing") {
		s.Spacing = c.Int("spacing")
	}
	if c.IsSet("normalization") {
		if s.Normalization, err = pipeline.ParseNormalizationResolution(c.String("normalization")); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeExportSummary(path string, settings pipeline.ExportSettings, result orchestrator.ExportResult) error {
	output := summarizer.OutputInfo{
		Path:     result.OutputPath,
		Duration: result.ExpectedDuration,
		FileSize: result.FileSize,
		Elapsed:  result.Elapsed,
	}
	if result.Info != nil {
		output.Duration = result.Info.Duration
		output.Width = result.Info.Width
		output.Height = result.Info.Height
		output.Codec = result.Info.Codec
	}
	stacking := pipeline.StackNone
	if result.Stacked {
		stacking = settings.Stacking
	}

	summary := summarizer.NewBuilder(summarizer.KindExport).
		WithSequences(result.PrimaryCount, result.SecondaryCount, result.FrameDuration).
		WithSettings(summarizer.Settings{
			Format:           string(settings.Format),
			Resolution:       string(settings.Resolution),
			Quality:          string(settings.Quality),
			FrameRate:        int(settings.FrameRate),
			Codec:            result.Codec,
			Hardware:         result.Hardware,
			Stacking:         string(stacking),
			Spacing:          settings.Spacing,
			Normalization:    string(settings.Normalization),
			NormalizedWidth:  result.NormalizedWidth,
			NormalizedHeight: result.NormalizedHeight,
		}).
		WithOutput(output).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(translate),
		summarizer.WithVersion(version),
	), a.fs)
	if err := writer.Write(path, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
