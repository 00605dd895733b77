package domain

import (
	"context"
	"time"
)

// ArtifactDescriptor is one entry of a store listing. It reflects store
// state at query time and is not owned by this process.
type ArtifactDescriptor struct {
	Name      string
	CreatedAt time.Time
}

// PostRecord is the clean data structure served to the presentation layer.
// Producers write the literal value "N/A" into a field to mean "intentionally
// absent"; consumers treat it as a no-render signal. The parser does not
// special-case it.
type PostRecord struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Caption     string    `json:"caption"`
	Hashtags    string    `json:"hashtags"`
	Source      string    `json:"source"`
	ImageURL    string    `json:"image_url"`
	NewsTitle   string    `json:"news_title"`
	FullContent string    `json:"full_content"`
}

// Store defines the interface for the remote object store
type Store interface {
	// List returns the newest artifacts first, bounded by the store-side
	// limit. An empty listing and a failed listing are distinct outcomes.
	List(ctx context.Context) ([]ArtifactDescriptor, error)
	// Download returns the raw text of one named artifact.
	Download(ctx context.Context, name string) (string, error)
}

// JobRunner triggers the remote generation job. The job's only observable
// side effect is a new artifact eventually appearing in the store.
type JobRunner interface {
	Invoke(ctx context.Context) error
}
