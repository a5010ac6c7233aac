// Package common holds small value types shared by the API, the SDK and the
// persistence layer.
package common

import (
	"strconv"
	"time"
)

// Pagination defaults.  A request without skip/limit gets the first
// DefaultLimit rows; larger limits are clamped to MaxLimit.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageRequest is an offset/limit window over an ordered listing.
type PageRequest struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// NewPageRequest builds a normalized PageRequest.
func NewPageRequest(skip, limit int) PageRequest {
	return PageRequest{Skip: skip, Limit: limit}.Normalize()
}

// ParsePageRequest builds a PageRequest from raw query values.  Values that
// are empty or not integers fall back to the defaults.
func ParsePageRequest(skip, limit string) PageRequest {
	p := PageRequest{Skip: DefaultSkip, Limit: DefaultLimit}
	if v, err := strconv.Atoi(skip); err == nil {
		p.Skip = v
	}
	if v, err := strconv.Atoi(limit); err == nil {
		p.Limit = v
	}
	return p.Normalize()
}

// Normalize returns a copy with skip >= 0 and 1 <= limit <= MaxLimit.
func (p PageRequest) Normalize() PageRequest {
	if p.Skip < 0 {
		p.Skip = DefaultSkip
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// ListResult is the envelope returned by every list endpoint.  Count is the
// total number of rows, independent of the requested window.
type ListResult[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

// NewListResult wraps items and total, never emitting a null data array.
func NewListResult[T any](items []T, total int64) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Data: items, Count: total}
}

// ProducerMessage is a transport-neutral message handed to a message producer.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

//Personal.AI order the ending
