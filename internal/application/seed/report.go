package seed

import (
	domainseed "github.com/turtacn/InfringeScope/internal/domain/seed"
)

// Status is the outcome of one source.
type Status string

const (
	StatusLoaded         Status = "loaded"
	StatusSkippedMissing Status = "skipped_missing"
	StatusSkippedGuard   Status = "skipped_guard"
	StatusFailed         Status = "failed"
)

// SourceReport summarizes one source.  Counts are zero unless Status is
// StatusLoaded.
type SourceReport struct {
	Source     domainseed.Source `json:"source"`
	Status     Status            `json:"status"`
	Inserted   int               `json:"inserted"`
	Duplicates int               `json:"duplicates"`
	Invalid    int               `json:"invalid"`
	Error      string            `json:"error,omitempty"`
}

// Report is the result of a seed run.
type Report struct {
	// LockNotAcquired is set when another replica held the seed lock and
	// nothing ran.
	LockNotAcquired  bool           `json:"lock_not_acquired,omitempty"`
	SuperuserCreated bool           `json:"superuser_created"`
	Sources          []SourceReport `json:"sources"`
}

// Source returns the report for src.
func (r *Report) Source(src domainseed.Source) (SourceReport, bool) {
	for _, s := range r.Sources {
		if s.Source == src {
			return s, true
		}
	}
	return SourceReport{}, false
}

// Failed reports whether any source failed.
func (r *Report) Failed() bool {
	for _, s := range r.Sources {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
