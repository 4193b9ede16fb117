package schema

import "testing"

func TestParsePlaybookLines(t *testing.T) {
	content := "stop-app\n\n# drain traffic first\nmigrate-db\nstart-app\n"
	steps, err := ParsePlaybook(content)
	if err != nil {
		t.Fatalf("ParsePlaybook: %v", err)
	}
	want := []string{"stop-app", "migrate-db", "start-app"}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, name := range want {
		if steps[i].Entry != name {
			t.Errorf("step %d = %q, want %q", i, steps[i].Entry, name)
		}
		if steps[i].When != "" {
			t.Errorf("step %d has unexpected guard %q", i, steps[i].When)
		}
	}
}

func TestParsePlaybookYAML(t *testing.T) {
	content := `steps:
  - entry: stop-app
  - entry: migrate-db
    when: env == "prod"
`
	steps, err := ParsePlaybook(content)
	if err != nil {
		t.Fatalf("ParsePlaybook: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if steps[1].Entry != "migrate-db" || steps[1].When != `env == "prod"` {
		t.Errorf("step 1 = %+v, want migrate-db with guard", steps[1])
	}
}

func TestParsePlaybookYAMLMissingEntry(t *testing.T) {
	content := "steps:\n  - when: always\n"
	if _, err := ParsePlaybook(content); err == nil {
		t.Fatal("expected error for step without entry name")
	}
}

func TestParsePlaybookEmpty(t *testing.T) {
	steps, err := ParsePlaybook("  \n\n# nothing here\n")
	if err != nil {
		t.Fatalf("ParsePlaybook: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("got %d steps, want 0", len(steps))
	}
}
