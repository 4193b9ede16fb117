package vault

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/devstash/devstash/pkg/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.json")
	s, err := Init(path)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, kind schema.Kind, name, content string, tags ...string) *schema.Entry {
	t.Helper()
	e, err := schema.New(kind, name, "test entry", content, tags)
	if err != nil {
		t.Fatalf("schema.New(%s): %v", name, err)
	}
	if err := s.Add(e); err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	return e
}

func TestInitRefusesExistingVault(t *testing.T) {
	s := newTestStore(t)
	if _, err := Init(s.Path); err == nil {
		t.Fatal("expected error initializing over an existing vault")
	}
}

func TestLookupAndGet(t *testing.T) {
	s := newTestStore(t)
	e := mustAdd(t, s, schema.KindCommand, "disk-usage", "df -h")

	got, err := s.Lookup("disk-usage")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("Lookup returned wrong entry: %s", got.ID)
	}

	byID, err := s.Get(e.ID)
	if err != nil {
		t.Fatalf("Get by ID: %v", err)
	}
	if byID.Name != "disk-usage" {
		t.Errorf("Get by ID returned %q", byID.Name)
	}

	if _, err := s.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(missing) = %v, want ErrNotFound", err)
	}
}

func TestAddDuplicateName(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, schema.KindNote, "readme", "hello")
	dup, _ := schema.New(schema.KindNote, "readme", "", "other", nil)
	if err := s.Add(dup); !errors.Is(err, ErrExists) {
		t.Fatalf("Add duplicate = %v, want ErrExists", err)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, schema.KindCommand, "b-cmd", "ls", "ops")
	mustAdd(t, s, schema.KindNote, "a-note", "text", "docs")
	mustAdd(t, s, schema.KindCommand, "c-cmd", "pwd", "docs")

	all, err := s.List(Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "a-note" {
		t.Errorf("List returned %d entries, first %q; want 3 sorted by name", len(all), all[0].Name)
	}

	cmds, _ := s.List(Filter{Kind: schema.KindCommand})
	if len(cmds) != 2 {
		t.Errorf("kind filter returned %d entries, want 2", len(cmds))
	}

	docs, _ := s.List(Filter{Tag: "docs"})
	if len(docs) != 2 {
		t.Errorf("tag filter returned %d entries, want 2", len(docs))
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, schema.KindCommand, "pg-dump", "pg_dump {{DB}}", "postgres")
	mustAdd(t, s, schema.KindNote, "meeting", "discussed Postgres upgrade")

	hits, err := s.Search("postgres")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Search(postgres) returned %d entries, want 2", len(hits))
	}

	hits, _ = s.Search("nomatch-xyz")
	if len(hits) != 0 {
		t.Errorf("Search(nomatch) returned %d entries, want 0", len(hits))
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	e := mustAdd(t, s, schema.KindCommand, "disk-usage", "df -h")

	e.Content = "df -h /"
	before := e.UpdatedAt
	if err := s.Update(e); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.Lookup("disk-usage")
	if got.Content != "df -h /" {
		t.Errorf("content = %q after update", got.Content)
	}
	if !got.UpdatedAt.After(before) && !got.UpdatedAt.Equal(before) {
		t.Errorf("UpdatedAt not refreshed")
	}
}

func TestUpdateKindImmutable(t *testing.T) {
	s := newTestStore(t)
	e := mustAdd(t, s, schema.KindCommand, "disk-usage", "df -h")
	changed := *e
	changed.Kind = schema.KindNote
	if err := s.Update(&changed); err == nil {
		t.Fatal("expected error when changing an entry's kind")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	e := mustAdd(t, s, schema.KindNote, "scratch", "x")
	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Lookup("scratch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("entry still present after delete")
	}
	if err := s.Delete("scratch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
}

func TestTags(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, schema.KindCommand, "a", "x", "ops", "db")
	mustAdd(t, s, schema.KindNote, "b", "y", "db")

	tags, err := s.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "db" || tags[1] != "ops" {
		t.Errorf("Tags = %v, want [db ops]", tags)
	}
}

func TestOpenMissingVault(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "vault.json"))
	if _, err := s.Lookup("anything"); !errors.Is(err, ErrNoVault) {
		t.Errorf("Lookup on missing vault = %v, want ErrNoVault", err)
	}
}
