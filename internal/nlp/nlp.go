// Package nlp wraps the external sentence segmenter + entity tagger.
// The tagger runs as a sidecar service; classification cannot proceed
// without it, so the client is pinged at process startup and failure
// there is fatal.
package nlp

import "context"

// Entity is a tagged span from the entity tagger.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"` // at least ORG and DATE
}

// Common entity labels.
const (
	LabelOrg  = "ORG"
	LabelDate = "DATE"
)

// SegmenterTagger splits text into ordered sentences and tags entities.
type SegmenterTagger interface {
	// Segment returns the ordered sentence list and all tagged entities.
	Segment(ctx context.Context, text string) ([]string, []Entity, error)

	// Ping verifies the tagger is reachable and its model is loaded.
	Ping(ctx context.Context) error
}
