// Package snapshot encodes and decodes session snapshot files.
//
// A snapshot is a single JSON document holding the placed patterns, the
// library and the grid configuration. Decoding is tolerant: each top-level
// field is optional and reported with a presence flag so the caller can
// apply present fields and leave the rest of its state untouched. Malformed
// JSON fails as a whole — no partial result is returned.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrParse is returned (wrapped) when the snapshot document is not valid JSON.
var ErrParse = errors.New("snapshot parse error")

// Pattern is the wire form of a single patch.
type Pattern struct {
	Type     string   `json:"type"`
	Colors   []string `json:"colors"`
	Rotation int      `json:"rotation"`
}

// Grid is the wire form of the grid configuration.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// File is a decoded snapshot. Has* flags record which fields were present
// in the document; absent fields leave the corresponding state unchanged.
type File struct {
	Patterns    []Pattern
	HasPatterns bool

	Library    []Pattern
	HasLibrary bool

	Grid *Grid

	SavedAt    time.Time
	HasSavedAt bool
}

// fileJSON mirrors the on-disk shape. Pointer fields distinguish "absent"
// from "present but empty".
type fileJSON struct {
	Patterns *[]Pattern `json:"patterns,omitempty"`
	Library  *[]Pattern `json:"library,omitempty"`
	Grid     *Grid      `json:"gridConfig,omitempty"`
	SavedAt  string     `json:"savedAt,omitempty"`
}

// Decode parses a snapshot document. A JSON syntax or type error fails the
// whole decode; nothing is applied from a document that does not parse.
func Decode(data []byte) (*File, error) {
	var raw fileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	f := &File{}
	if raw.Patterns != nil {
		f.Patterns = *raw.Patterns
		f.HasPatterns = true
	}
	if raw.Library != nil {
		f.Library = *raw.Library
		f.HasLibrary = true
	}
	f.Grid = raw.Grid
	if raw.SavedAt != "" {
		// A bad timestamp is not worth failing a load over; the field is
		// informational only.
		if t, err := time.Parse(time.RFC3339, raw.SavedAt); err == nil {
			f.SavedAt = t
			f.HasSavedAt = true
		}
	}
	return f, nil
}

// Encode serialises a full snapshot. All fields are always written; savedAt
// uses RFC 3339 (ISO-8601) in UTC.
func Encode(patterns, library []Pattern, grid Grid, savedAt time.Time) ([]byte, error) {
	if patterns == nil {
		patterns = []Pattern{}
	}
	if library == nil {
		library = []Pattern{}
	}
	doc := struct {
		Patterns []Pattern `json:"patterns"`
		Library  []Pattern `json:"library"`
		Grid     Grid      `json:"gridConfig"`
		SavedAt  string    `json:"savedAt"`
	}{
		Patterns: patterns,
		Library:  library,
		Grid:     grid,
		SavedAt:  savedAt.UTC().Format(time.RFC3339),
	}
	return json.MarshalIndent(doc, "", "  ")
}
