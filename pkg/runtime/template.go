package runtime

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/devstash/devstash/pkg/providers"
)

// placeholderRe matches {{NAME}} markers: an identifier token with no
// surrounding whitespace inside the braces. Anything else is literal text.
var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Scan extracts the distinct placeholder names referenced across the given
// content pieces, in first-occurrence order.
func Scan(contents ...string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, content := range contents {
		for _, match := range placeholderRe.FindAllStringSubmatch(content, -1) {
			name := match[1]
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Render substitutes resolved values for placeholder markers in a single
// pass. A value that itself contains marker syntax is emitted literally,
// never re-expanded, and names missing from the table stay as literal
// marker text so partial renders remain inspectable.
func Render(content string, table map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(marker string) string {
		name := marker[2 : len(marker)-2]
		if value, ok := table[name]; ok {
			return value
		}
		return marker
	})
}

// Resolve produces a complete substitution table for the given names.
// Bindings supply values directly; the rest are prompted through the
// interaction capability. A cancelled prompt aborts the whole resolution.
func Resolve(names []string, bindings map[string]string, in providers.Interaction) (map[string]string, error) {
	table := make(map[string]string, len(names))
	for _, name := range names {
		if value, ok := bindings[name]; ok {
			table[name] = value
			continue
		}
		value, err := in.PromptVar(name)
		if err != nil {
			if errors.Is(err, providers.ErrCancelled) {
				return nil, ErrResolutionAborted
			}
			return nil, fmt.Errorf("prompt for {{%s}}: %w", name, err)
		}
		table[name] = value
	}
	return table, nil
}
