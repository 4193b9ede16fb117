package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaybookStep is one step of a playbook: the name of the entry to execute
// and an optional expr-lang guard evaluated against the supplied bindings.
type PlaybookStep struct {
	Entry string `json:"entry" yaml:"entry" jsonschema:"required"`
	When  string `json:"when,omitempty" yaml:"when,omitempty"`
}

// playbookDoc is the YAML form of playbook content.
type playbookDoc struct {
	Steps []PlaybookStep `yaml:"steps"`
}

// ParsePlaybook parses playbook content into its ordered step list.
//
// Two content forms are accepted:
//
//	steps:               # YAML form, supports when: guards
//	  - entry: stop-app
//	  - entry: migrate
//	    when: env == "prod"
//
// or one entry name per line, with blank lines and # comments skipped.
func ParsePlaybook(content string) ([]PlaybookStep, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, nil
	}

	if looksLikeYAMLPlaybook(trimmed) {
		var doc playbookDoc
		dec := yaml.NewDecoder(strings.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse playbook steps: %w", err)
		}
		for i, s := range doc.Steps {
			if strings.TrimSpace(s.Entry) == "" {
				return nil, fmt.Errorf("playbook step %d has no entry name", i+1)
			}
		}
		return doc.Steps, nil
	}

	var steps []PlaybookStep
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		steps = append(steps, PlaybookStep{Entry: line})
	}
	return steps, nil
}

// looksLikeYAMLPlaybook reports whether content uses the structured form.
// Plain step lists never start with a "steps:" mapping key.
func looksLikeYAMLPlaybook(trimmed string) bool {
	return strings.HasPrefix(trimmed, "steps:")
}
