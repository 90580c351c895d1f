package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/sequence"
)

// errDocumentInput is returned for PDF inputs, which need a page renderer.
var errDocumentInput = errors.New("PDF input is not supported; export the pages as images first")

// imageExtensions lists the still image types ffmpeg reads through the concat demuxer.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
}

func isImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// collectItems expands files and directories into sequence items.
// Directory contents are taken in natural name order; explicit files keep
// the order they were given in.
func collectItems(args []string) ([]pipeline.SequenceItem, error) {
	var items []pipeline.SequenceItem
	for _, arg := range args {
		if strings.EqualFold(filepath.Ext(arg), ".pdf") {
			return nil, fmt.Errorf("%s: %w", arg, errDocumentInput)
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !isImage(abs) {
				return nil, fmt.Errorf("%s: unsupported image type", arg)
			}
			items = append(items, pipeline.NewSequenceItem(abs, info.ModTime()))
			continue
		}

		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, err
		}
		var dirItems []pipeline.SequenceItem
		for _, entry := range entries {
			if entry.IsDir() || !isImage(entry.Name()) {
				continue
			}
			entryInfo, err := entry.Info()
			if err != nil {
				return nil, err
			}
			dirItems = append(dirItems, pipeline.NewSequenceItem(filepath.Join(abs, entry.Name()), entryInfo.ModTime()))
		}
		seq := sequence.New(nil, nil)
		seq.Add(dirItems...)
		seq.Sort(sequence.ByName)
		items = append(items, seq.Items()...)
	}
	return items, nil
}

// parseSortOrder maps the --sort flag. ok is false for "none".
func parseSortOrder(s string) (order sequence.SortOrder, ok bool, err error) {
	switch strings.ToLower(s) {
	case "", "none":
		return 0, false, nil
	case "name":
		return sequence.ByName, true, nil
	case "date":
		return sequence.ByDate, true, nil
	}
	return 0, false, fmt.Errorf("unknown sort order %q (use none, name or date)", s)
}
