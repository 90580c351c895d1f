package mocks

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/user/sequencestitch/pkg/ports"
)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Info ports.MediaInfo
	Err  error

	ProbeFunc func(ctx context.Context, path string) (ports.MediaInfo, error)
}

func (m *MediaProber) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return m.Info, m.Err
}

var _ ports.MediaProber = (*MediaProber)(nil)

// Thumbnailer is a mock implementation of ports.Thumbnailer.
// Sizes maps paths to dimensions; unknown paths fail, and so does every
// path on a nil Thumbnailer.
type Thumbnailer struct {
	Sizes   map[string][2]int
	Created time.Time

	ThumbnailFunc func(path string, maxSize int) (ports.Preview, error)
}

func (m *Thumbnailer) Thumbnail(path string, maxSize int) (ports.Preview, error) {
	if m == nil {
		return ports.Preview{}, fmt.Errorf("no thumbnailer for %s", path)
	}
	if m.ThumbnailFunc != nil {
		return m.ThumbnailFunc(path, maxSize)
	}
	w, h, err := m.Dimensions(path)
	if err != nil {
		return ports.Preview{}, err
	}
	if w > maxSize {
		w = maxSize
	}
	if h > maxSize {
		h = maxSize
	}
	return ports.Preview{Image: image.NewRGBA(image.Rect(0, 0, w, h)), Created: m.Created}, nil
}

func (m *Thumbnailer) Dimensions(path string) (int, int, error) {
	if m == nil {
		return 0, 0, fmt.Errorf("no thumbnailer for %s", path)
	}
	if size, ok := m.Sizes[path]; ok {
		return size[0], size[1], nil
	}
	return 0, 0, fmt.Errorf("not an image: %s", path)
}

var _ ports.Thumbnailer = (*Thumbnailer)(nil)

// ProjectStore is an in-memory implementation of ports.ProjectStore.
type ProjectStore struct {
	mu       sync.Mutex
	projects map[string]ports.Project
}

// NewProjectStore creates an empty store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]ports.Project)}
}

func (m *ProjectStore) Load(path string) (ports.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[path]
	if !ok {
		return ports.Project{}, fmt.Errorf("project not found: %s", path)
	}
	return p, nil
}

func (m *ProjectStore) Save(path string, project ports.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[path] = project
	return nil
}

var _ ports.ProjectStore = (*ProjectStore)(nil)

// BinaryLocator is a mock implementation of ports.BinaryLocator.
type BinaryLocator struct {
	Path      string
	ProbePath string
	Err       error
}

func (m *BinaryLocator) FFmpeg() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Path, nil
}

func (m *BinaryLocator) FFprobe() (string, error) {
	if m.Err != nil || m.ProbePath == "" {
		return "", fmt.Errorf("ffprobe not configured")
	}
	return m.ProbePath, nil
}

var _ ports.BinaryLocator = (*BinaryLocator)(nil)
