package model

import (
	"encoding/json"
	"time"
)

// CacheEntry is the persisted form of one cached (year, page) response
type CacheEntry struct {
	Payload    json.RawMessage `json:"payload"`
	Status     int             `json:"status"`
	StatusText string          `json:"statusText"`
	Timestamp  int64           `json:"timestamp"` // creation time in Unix milliseconds
	Year       int             `json:"year"`
	Page       int             `json:"page"`
}

// NewCacheEntry wraps a raw response for persistence
func NewCacheEntry(year, page int, raw *RawResponse, now time.Time) *CacheEntry {
	return &CacheEntry{
		Payload:    raw.Data,
		Status:     raw.Status,
		StatusText: raw.StatusText,
		Timestamp:  now.UnixMilli(),
		Year:       year,
		Page:       page,
	}
}

// CreatedAt returns the creation time of the entry
func (e *CacheEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age returns how long ago the entry was created
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt())
}

// Response converts the entry back into a raw response
func (e *CacheEntry) Response() *RawResponse {
	return &RawResponse{
		Data:       e.Payload,
		Status:     e.Status,
		StatusText: e.StatusText,
	}
}
