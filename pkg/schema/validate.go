package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError is a single validation finding with location context.
type ValidationError struct {
	Phase   string `json:"phase"` // structural, semantic, domain
	Path    string `json:"path"`  // JSON-path-like location (e.g. "api/url")
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Phase, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateEntryDocument runs the full validation pipeline on a JSON entry
// document, as produced by `devstash export` and consumed by `devstash import`.
// Phase 1: structural (strict JSON decode)
// Phase 2: semantic (JSON Schema validation)
// Phase 3: domain (custom Go rules)
func ValidateEntryDocument(data []byte) (*Entry, []*ValidationError) {
	var entry Entry
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entry); err != nil {
		return nil, []*ValidationError{{
			Phase:   "structural",
			Message: err.Error(),
		}}
	}

	if errs := validateSemantic(data); len(errs) > 0 {
		return &entry, errs
	}

	if errs := validateDomain(&entry); len(errs) > 0 {
		return &entry, errs
	}
	return &entry, nil
}

// validateSemantic validates the document against the entry JSON Schema.
func validateSemantic(data []byte) []*ValidationError {
	schemaJSON, err := GenerateEntryJSONSchema()
	if err != nil {
		return []*ValidationError{{Phase: "semantic", Message: fmt.Sprintf("generate schema: %v", err)}}
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return []*ValidationError{{Phase: "semantic", Message: fmt.Sprintf("unmarshal schema: %v", err)}}
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("entry-v0.json", schemaDoc); err != nil {
		return []*ValidationError{{Phase: "semantic", Message: fmt.Sprintf("add schema resource: %v", err)}}
	}

	sch, err := c.Compile("entry-v0.json")
	if err != nil {
		return []*ValidationError{{Phase: "semantic", Message: fmt.Sprintf("compile schema: %v", err)}}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{Phase: "semantic", Message: fmt.Sprintf("unmarshal document: %v", err)}}
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:   "semantic",
					Path:    strings.Join(cause.InstanceLocation, "/"),
					Message: fmt.Sprintf("%v", cause.ErrorKind),
				})
			}
		} else {
			errs = append(errs, &ValidationError{Phase: "semantic", Message: err.Error()})
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// validateDomain applies entry rules the JSON Schema cannot express.
func validateDomain(e *Entry) []*ValidationError {
	var errs []*ValidationError

	if !e.Kind.Valid() {
		errs = append(errs, &ValidationError{
			Phase:   "domain",
			Path:    "kind",
			Message: fmt.Sprintf("unknown entry kind %q", e.Kind),
		})
	}

	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, &ValidationError{
			Phase:   "domain",
			Path:    "name",
			Message: "entry name must not be empty",
		})
	}

	switch e.Kind {
	case KindAPI:
		if e.API == nil {
			errs = append(errs, &ValidationError{
				Phase:   "domain",
				Path:    "api",
				Message: "api entries require a request descriptor",
			})
		} else if strings.TrimSpace(e.API.URL) == "" {
			errs = append(errs, &ValidationError{
				Phase:   "domain",
				Path:    "api/url",
				Message: "api entries require a url",
			})
		}
	case KindPlaybook:
		if _, err := ParsePlaybook(e.Content); err != nil {
			errs = append(errs, &ValidationError{
				Phase:   "domain",
				Path:    "content",
				Message: err.Error(),
			})
		}
	default:
		if e.API != nil {
			errs = append(errs, &ValidationError{
				Phase:   "domain",
				Path:    "api",
				Message: fmt.Sprintf("%s entries must not carry an api descriptor", e.Kind),
			})
		}
	}

	return errs
}
