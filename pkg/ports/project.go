package ports

import "github.com/user/sequencestitch/pkg/pipeline"

// Project is the persisted state of a sequence session.
type Project struct {
	FrameDuration  float64
	Settings       pipeline.ExportSettings
	Items          []pipeline.SequenceItem
	SecondaryItems []pipeline.SequenceItem
}

// ProjectStore saves and loads projects.
type ProjectStore interface {
	Load(path string) (Project, error)
	Save(path string, project Project) error
}
