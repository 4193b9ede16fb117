// Package vault implements the on-disk entry store: a single JSON document
// holding every entry, loaded and rewritten whole on each operation.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devstash/devstash/pkg/schema"
)

// DefaultDir and DefaultFile locate the vault relative to the working
// directory unless overridden by configuration.
const (
	DefaultDir  = ".devstash"
	DefaultFile = "vault.json"
)

// ErrNotFound is returned when no entry matches the requested identifier.
var ErrNotFound = errors.New("entry not found")

// ErrExists is returned when adding an entry whose name is already taken.
var ErrExists = errors.New("entry already exists")

// ErrNoVault is returned when the vault file has not been initialized.
var ErrNoVault = errors.New("no vault found (run 'devstash init' to create one)")

// document is the on-disk shape of the vault file.
type document struct {
	Entries []*schema.Entry `json:"entries"`
}

// Store is a file-backed entry store.
type Store struct {
	Path string
}

// DefaultPath returns the vault path under the given base directory.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, DefaultDir, DefaultFile)
}

// Open returns a store for the vault file at path. The file itself is read
// lazily per operation, so repeated reads within one playbook run observe a
// consistent store only as long as nothing rewrites the file mid-run.
func Open(path string) *Store {
	return &Store{Path: path}
}

// Init creates an empty vault file, including parent directories.
// Fails if a vault already exists at the path.
func Init(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("vault already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create vault directory: %w", err)
	}
	s := &Store{Path: path}
	if err := s.save(&document{}); err != nil {
		return nil, err
	}
	return s, nil
}

// Exists reports whether the vault file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

func (s *Store) load() (*document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoVault
		}
		return nil, fmt.Errorf("read vault: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vault %s: %w", s.Path, err)
	}
	return &doc, nil
}

func (s *Store) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vault: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	return nil
}

// Add inserts a new entry. Entry names are unique within a vault.
func (s *Store) Add(entry *schema.Entry) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, e := range doc.Entries {
		if e.Name == entry.Name {
			return fmt.Errorf("%w: %s", ErrExists, entry.Name)
		}
	}
	doc.Entries = append(doc.Entries, entry)
	return s.save(doc)
}

// Lookup returns the entry with the given name. This is the read-only
// interface the execution engine depends on.
func (s *Store) Lookup(name string) (*schema.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Get returns the entry matching the identifier, trying ID first, then name.
func (s *Store) Get(identifier string) (*schema.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Entries {
		if e.ID == identifier {
			return e, nil
		}
	}
	for _, e := range doc.Entries {
		if e.Name == identifier {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
}

// Filter selects entries when listing.
type Filter struct {
	Kind schema.Kind // zero value matches all kinds
	Tag  string      // empty matches all tags
}

// List returns entries matching the filter, in name order.
func (s *Store) List(f Filter) ([]*schema.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []*schema.Entry
	for _, e := range doc.Entries {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if f.Tag != "" && !e.HasTag(f.Tag) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Search does a case-insensitive substring match across name, description,
// content and tags.
func (s *Store) Search(query string) ([]*schema.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*schema.Entry
	for _, e := range doc.Entries {
		haystack := strings.ToLower(strings.Join([]string{
			e.Name, e.Description, e.Content, strings.Join(e.Tags, " "),
		}, " "))
		if strings.Contains(haystack, q) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update replaces the stored entry matching updated.ID and refreshes its
// modification timestamp. The kind of an entry is fixed at creation.
func (s *Store) Update(updated *schema.Entry) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, e := range doc.Entries {
		if e.ID != updated.ID {
			continue
		}
		if e.Kind != updated.Kind {
			return fmt.Errorf("entry kind is immutable (have %s, got %s)", e.Kind, updated.Kind)
		}
		for j, other := range doc.Entries {
			if j != i && other.Name == updated.Name {
				return fmt.Errorf("%w: %s", ErrExists, updated.Name)
			}
		}
		updated.Touch()
		doc.Entries[i] = updated
		return s.save(doc)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, updated.ID)
}

// Delete removes the entry matching the identifier (ID or name).
func (s *Store) Delete(identifier string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, e := range doc.Entries {
		if e.ID == identifier || e.Name == identifier {
			doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
			return s.save(doc)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, identifier)
}

// Tags returns every distinct tag in the vault, sorted.
func (s *Store) Tags() ([]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, e := range doc.Entries {
		for _, t := range e.Tags {
			seen[t] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}
