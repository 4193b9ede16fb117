// Package governance implements the optional command allowlist/denylist and
// output redaction applied around command execution.
package governance

import (
	"fmt"
	"regexp"
	"strings"
)

// Policy is the user-configured governance policy. The zero value permits
// everything and redacts nothing.
type Policy struct {
	// Allow lists permitted command programs. Empty = allow all.
	Allow []string `mapstructure:"allow" yaml:"allow"`
	// Deny lists forbidden command programs. Deny wins over allow.
	Deny []string `mapstructure:"deny" yaml:"deny"`
	// Redact holds regex patterns scrubbed from captured output.
	Redact []RedactionRule `mapstructure:"redact" yaml:"redact"`
}

// RedactionRule replaces every match of Pattern with Replace.
type RedactionRule struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Replace string `mapstructure:"replace" yaml:"replace"`
}

// PolicyError reports a command blocked by governance.
type PolicyError struct {
	Program string
	Reason  string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("governance: command %q %s", e.Program, e.Reason)
}

// Engine is a compiled policy ready for evaluation.
type Engine struct {
	allow  []string
	deny   []string
	redact []*compiledRedaction
}

type compiledRedaction struct {
	pattern *regexp.Regexp
	replace string
}

// Compile validates the policy's redaction patterns and returns an engine.
// A nil policy compiles to a permissive engine.
func Compile(p *Policy) (*Engine, error) {
	if p == nil {
		return &Engine{}, nil
	}
	eng := &Engine{allow: p.Allow, deny: p.Deny}
	for _, r := range p.Redact {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile redaction pattern %q: %w", r.Pattern, err)
		}
		eng.redact = append(eng.redact, &compiledRedaction{pattern: re, replace: r.Replace})
	}
	return eng, nil
}

// CheckCommand validates rendered shell text against the allowlist/denylist.
// Every command in the text is checked, so a denied program cannot hide
// behind a pipe or a `;`. The check is advisory: it matches program names
// without interpreting quoting or substitution, so a determined author can
// still evade it. It is a guard rail, not a sandbox.
func (e *Engine) CheckCommand(command string) error {
	for _, program := range Programs(command) {
		for _, denied := range e.deny {
			if program == denied {
				return &PolicyError{Program: program, Reason: "is denied by policy"}
			}
		}

		if len(e.allow) > 0 {
			allowed := false
			for _, a := range e.allow {
				if program == a {
					allowed = true
					break
				}
			}
			if !allowed {
				return &PolicyError{Program: program, Reason: "is not in the allowlist"}
			}
		}
	}
	return nil
}

// Redact applies all redaction rules to the given output.
func (e *Engine) Redact(output string) string {
	for _, r := range e.redact {
		output = r.pattern.ReplaceAllString(output, r.replace)
	}
	return output
}

// Program extracts the program name from shell text: the first
// whitespace-delimited word.
func Program(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var segmentSep = regexp.MustCompile(`[;&|\n]+`)

// Programs extracts the program name of every command in shell text,
// splitting on `;`, `&&`, `||`, `|`, `&` and newlines.
func Programs(command string) []string {
	var progs []string
	for _, seg := range segmentSep.Split(command, -1) {
		if p := Program(seg); p != "" {
			progs = append(progs, p)
		}
	}
	return progs
}
