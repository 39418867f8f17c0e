// file: internal/metadata/metadata.go
// version: 1.0.0
// guid: 2c3d4e5f-6a7b-8c9d-0e1f-2a3b4c5d6e7f

// Package metadata maps Goodreads book records onto the generic
// metadata shape consumed by a host cataloguing application.
package metadata

import (
	"time"
)

// Metadata is the host-facing output of one successful lookup. The host
// owns the record once it has been delivered.
type Metadata struct {
	Title       string            `json:"title" yaml:"title"`
	Authors     []string          `json:"authors,omitempty" yaml:"authors,omitempty"`
	Identifiers map[string]string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	Publisher   string            `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Comments    string            `json:"comments,omitempty" yaml:"comments,omitempty"`
	Rating      float64           `json:"rating,omitempty" yaml:"rating,omitempty"`
	Tags        []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Series      string            `json:"series,omitempty" yaml:"series,omitempty"`
	SeriesIndex float64           `json:"series_index,omitempty" yaml:"series_index,omitempty"`
	PubDate     *time.Time        `json:"pubdate,omitempty" yaml:"pubdate,omitempty"`
	Language    string            `json:"language,omitempty" yaml:"language,omitempty"`
	CoverURL    string            `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	// Relevance ranks this record against the requested title; lower is
	// a closer match, 0 is exact or unranked.
	Relevance int `json:"relevance" yaml:"relevance"`
}

// Identifier returns the value for an identifier scheme, "" when unset.
func (m *Metadata) Identifier(scheme string) string {
	if m.Identifiers == nil {
		return ""
	}
	return m.Identifiers[scheme]
}

// SetIdentifier records a value for an identifier scheme. An empty value
// clears the scheme.
func (m *Metadata) SetIdentifier(scheme, value string) {
	if m.Identifiers == nil {
		m.Identifiers = make(map[string]string)
	}
	if value == "" {
		delete(m.Identifiers, scheme)
		return
	}
	m.Identifiers[scheme] = value
}
