// Package schema defines the entry document types stored in the vault
// and provides parsing, validation and JSON Schema export for them.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what an entry is and how (or whether) it executes.
type Kind string

const (
	KindCommand  Kind = "command"
	KindAPI      Kind = "api"
	KindSnippet  Kind = "snippet"
	KindFile     Kind = "file"
	KindPlaybook Kind = "playbook"
	KindNote     Kind = "note"
)

// Kinds returns all valid entry kinds in display order.
func Kinds() []Kind {
	return []Kind{KindCommand, KindAPI, KindSnippet, KindFile, KindPlaybook, KindNote}
}

// Valid reports whether k is a known entry kind.
func (k Kind) Valid() bool {
	switch k {
	case KindCommand, KindAPI, KindSnippet, KindFile, KindPlaybook, KindNote:
		return true
	}
	return false
}

// Executable reports whether entries of this kind can be run.
// Snippets, files and notes are reference material only.
func (k Kind) Executable() bool {
	switch k {
	case KindCommand, KindAPI, KindPlaybook:
		return true
	}
	return false
}

// APIRequest holds the request descriptor for api entries.
// The entry content carries the request body, if any.
type APIRequest struct {
	Method  string            `json:"method" yaml:"method" jsonschema:"required"`
	URL     string            `json:"url" yaml:"url" jsonschema:"required"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Entry is a single named knowledge artifact in the vault.
//
// Name is unique within a vault and is how playbooks reference their steps;
// Kind is fixed at creation. Content is interpreted per kind: shell text for
// commands, request body for api entries, an ordered step list for playbooks,
// and opaque text for snippets, files and notes.
type Entry struct {
	ID          string      `json:"id" yaml:"id" jsonschema:"required"`
	Kind        Kind        `json:"kind" yaml:"kind" jsonschema:"required,enum=command,enum=api,enum=snippet,enum=file,enum=playbook,enum=note"`
	Name        string      `json:"name" yaml:"name" jsonschema:"required"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Content     string      `json:"content,omitempty" yaml:"content,omitempty"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" yaml:"updated_at"`
	API         *APIRequest `json:"api,omitempty" yaml:"api,omitempty"`
	Language    string      `json:"language,omitempty" yaml:"language,omitempty"`
	Filename    string      `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// NewID generates a short entry ID: the first 8 hex digits of a v4 UUID.
func NewID() string {
	return uuid.NewString()[:8]
}

// New creates an entry of the given kind with a fresh ID and timestamps.
func New(kind Kind, name, description, content string, tags []string) (*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid entry kind %q", kind)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("entry name must not be empty")
	}
	now := time.Now().UTC()
	return &Entry{
		ID:          NewID(),
		Kind:        kind,
		Name:        name,
		Description: description,
		Content:     content,
		Tags:        NormalizeTags(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Touch updates the entry's modification timestamp.
func (e *Entry) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// NormalizeTags trims, deduplicates and sorts a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
