package main

import (
	"testing"
)

func TestParseBindings(t *testing.T) {
	bindings, err := parseBindings([]string{"USER=alice", "HOST=db1", "EMPTY="})
	if err != nil {
		t.Fatalf("parseBindings: %v", err)
	}
	if bindings["USER"] != "alice" || bindings["HOST"] != "db1" || bindings["EMPTY"] != "" {
		t.Fatalf("bindings = %v", bindings)
	}
}

func TestParseBindingsMalformed(t *testing.T) {
	for _, bad := range []string{"USER", "=value"} {
		if _, err := parseBindings([]string{bad}); err == nil {
			t.Errorf("parseBindings(%q) should fail", bad)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"Authorization: Bearer {{TOKEN}}", "Accept:application/json"})
	if err != nil {
		t.Fatalf("parseHeaders: %v", err)
	}
	if headers["Authorization"] != "Bearer {{TOKEN}}" || headers["Accept"] != "application/json" {
		t.Fatalf("headers = %v", headers)
	}
	if _, err := parseHeaders([]string{"no-colon"}); err == nil {
		t.Error("malformed header should fail")
	}
}

func TestSplitDocuments(t *testing.T) {
	docs, err := splitDocuments([]byte(`[{"a":1},{"b":2}]`))
	if err != nil || len(docs) != 2 {
		t.Fatalf("array: docs=%d err=%v", len(docs), err)
	}
	docs, err = splitDocuments([]byte(`{"a":1}`))
	if err != nil || len(docs) != 1 {
		t.Fatalf("single: docs=%d err=%v", len(docs), err)
	}
	if _, err := splitDocuments([]byte(`[not json`)); err == nil {
		t.Error("bad JSON array should fail")
	}
}
