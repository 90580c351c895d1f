// Package sequence manages the ordered list of images in a sequence.
package sequence

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/user/sequencestitch/pkg/pipeline"
	"github.com/user/sequencestitch/pkg/ports"
)

// DefaultFrameDuration is how long each image is shown, in seconds.
const DefaultFrameDuration = 2.0

// SortOrder selects how Sort orders items.
type SortOrder int

const (
	// ByDate sorts by creation time, oldest first.
	ByDate SortOrder = iota
	// ByName sorts by filename in natural order ("img2" before "img10").
	ByName
)

// Sequence is an ordered list of items. It is not safe for concurrent use.
type Sequence struct {
	items  []pipeline.SequenceItem
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates an empty sequence. fs is used to delete images rendered from
// documents when they are removed; it may be nil.
func New(fs ports.FileSystem, logger ports.Logger) *Sequence {
	return &Sequence{fs: fs, logger: logger}
}

// Items returns a copy of the items in order.
func (s *Sequence) Items() []pipeline.SequenceItem {
	return append([]pipeline.SequenceItem(nil), s.items...)
}

// Len returns the number of items.
func (s *Sequence) Len() int {
	return len(s.items)
}

// Paths returns the processed image paths in order.
func (s *Sequence) Paths() []string {
	paths := make([]string, len(s.items))
	for i, it := range s.items {
		paths[i] = it.ProcessedPath
	}
	return paths
}

// Add appends items.
func (s *Sequence) Add(items ...pipeline.SequenceItem) {
	s.items = append(s.items, items...)
}

// Remove deletes the item at index. Out of range indexes are ignored.
func (s *Sequence) Remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	item := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.release(item)
	return true
}

// RemoveID deletes the item with id.
func (s *Sequence) RemoveID(id uuid.UUID) bool {
	for i, it := range s.items {
		if it.ID == id {
			return s.Remove(i)
		}
	}
	return false
}

// Move relocates the items at from so they start at offset to, where to is
// an index into the list before the move. Relative order is preserved.
func (s *Sequence) Move(from []int, to int) {
	if len(from) == 0 {
		return
	}
	selected := make(map[int]bool, len(from))
	for _, i := range from {
		if i >= 0 && i < len(s.items) {
			selected[i] = true
		}
	}
	if to < 0 {
		to = 0
	}
	if to > len(s.items) {
		to = len(s.items)
	}

	var moved, rest []pipeline.SequenceItem
	insert := 0
	for i, it := range s.items {
		if selected[i] {
			moved = append(moved, it)
			continue
		}
		if i < to {
			insert++
		}
		rest = append(rest, it)
	}

	out := make([]pipeline.SequenceItem, 0, len(s.items))
	out = append(out, rest[:insert]...)
	out = append(out, moved...)
	out = append(out, rest[insert:]...)
	s.items = out
}

// Sort reorders items. The sort is stable.
func (s *Sequence) Sort(order SortOrder) {
	switch order {
	case ByDate:
		sort.SliceStable(s.items, func(i, j int) bool {
			return s.items[i].Created.Before(s.items[j].Created)
		})
	case ByName:
		sort.SliceStable(s.items, func(i, j int) bool {
			return NaturalLess(s.items[i].OriginalFilename, s.items[j].OriginalFilename)
		})
	}
}

// Clear removes every item.
func (s *Sequence) Clear() {
	items := s.items
	s.items = nil
	for _, it := range items {
		s.release(it)
	}
}

// release deletes the rendered image of a document page.
func (s *Sequence) release(item pipeline.SequenceItem) {
	if !item.FromDocument || s.fs == nil || item.ProcessedPath == item.SourcePath {
		return
	}
	if err := s.fs.Remove(item.ProcessedPath); err != nil && s.logger != nil {
		s.logger.Debug(l10n.F("Failed to remove %s: %s", item.ProcessedPath, err))
	}
}

// NaturalLess compares strings case-insensitively, treating digit runs as
// numbers.
func NaturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			// Equal values: fewer leading zeros first.
			if i-si != j-sj {
				return i-si < j-sj
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
