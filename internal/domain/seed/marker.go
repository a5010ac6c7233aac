// Package seed records which fixture sources have already been loaded.
package seed

import (
	"context"
	"time"
)

// Source names one fixture family.
type Source string

const (
	SourceCompanies Source = "companies"
	SourcePatents   Source = "patents"
	SourceAnalyses  Source = "infringement_analyses"
)

// Sources lists every source in load order.
var Sources = []Source{SourceCompanies, SourcePatents, SourceAnalyses}

// Marker is written in the same transaction as a source's rows.
type Marker struct {
	Source      Source    `json:"source"`
	RecordCount int       `json:"record_count"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// MarkerRepository reads and writes markers.  Get returns a NotFound error
// when the source has never been loaded.
type MarkerRepository interface {
	Get(ctx context.Context, source Source) (*Marker, error)
	Put(ctx context.Context, m *Marker) error
}

//Personal.AI order the ending
