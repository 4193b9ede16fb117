package schema

import (
	"regexp"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{8}$`)
	for i := 0; i < 50; i++ {
		id := NewID()
		if !re.MatchString(id) {
			t.Fatalf("ID %q does not match expected 8-hex format", id)
		}
	}
}

func TestNewEntry(t *testing.T) {
	e, err := New(KindCommand, "deploy", "deploy the app", "make deploy", []string{"ops", "ops", " ci "})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.ID == "" {
		t.Error("entry has no ID")
	}
	if e.Kind != KindCommand {
		t.Errorf("kind = %q, want command", e.Kind)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "ci" || e.Tags[1] != "ops" {
		t.Errorf("tags = %v, want deduplicated sorted [ci ops]", e.Tags)
	}
	if e.CreatedAt.IsZero() || !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Errorf("timestamps not initialized: created=%v updated=%v", e.CreatedAt, e.UpdatedAt)
	}
}

func TestNewEntryRejectsInvalidKind(t *testing.T) {
	if _, err := New(Kind("widget"), "x", "", "", nil); err == nil {
		t.Fatal("expected error for invalid kind")
	}
	if _, err := New(KindNote, "   ", "", "", nil); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestKindExecutable(t *testing.T) {
	executable := map[Kind]bool{
		KindCommand:  true,
		KindAPI:      true,
		KindPlaybook: true,
		KindSnippet:  false,
		KindFile:     false,
		KindNote:     false,
	}
	for kind, want := range executable {
		if got := kind.Executable(); got != want {
			t.Errorf("%s.Executable() = %v, want %v", kind, got, want)
		}
	}
}

func TestHasTag(t *testing.T) {
	e := &Entry{Tags: []string{"db", "prod"}}
	if !e.HasTag("db") {
		t.Error("expected HasTag(db) = true")
	}
	if e.HasTag("staging") {
		t.Error("expected HasTag(staging) = false")
	}
}
