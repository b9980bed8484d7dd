package validation

import (
	"errors"
	"testing"
)

func titleSchema(t *testing.T) *PayloadSchema {
	t.Helper()
	compiled, err := Compile(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "minLength": 1, "maxLength": 10},
			"views": map[string]any{"type": []any{"integer", "null"}},
		},
		"required":             []any{"title"},
		"additionalProperties": false,
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return compiled
}

func TestPayloadSchemaAcceptsValidPayload(t *testing.T) {
	s := titleSchema(t)
	if err := s.Validate(map[string]any{"title": "Заголовок", "views": 3}); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
	if err := s.Validate(map[string]any{"title": "News", "views": nil}); err != nil {
		t.Fatalf("expected null optional field to validate, got %v", err)
	}
}

func TestPayloadSchemaReportsIssues(t *testing.T) {
	s := titleSchema(t)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing required", payload: map[string]any{}},
		{name: "blank required", payload: map[string]any{"title": ""}},
		{name: "too long", payload: map[string]any{"title": "a very long headline"}},
		{name: "wrong type", payload: map[string]any{"title": "ok", "views": "many"}},
		{name: "unknown field", payload: map[string]any{"title": "ok", "summary": "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Validate(tc.payload)
			if !errors.Is(err, ErrSchemaValidation) {
				t.Fatalf("expected ErrSchemaValidation, got %v", err)
			}
			if len(Issues(err)) == 0 {
				t.Fatalf("expected issues for %v", tc.payload)
			}
		})
	}
}

func TestCompileRejectsEmptyDocument(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestDocumentReturnsCopy(t *testing.T) {
	s := titleSchema(t)
	doc := s.Document()
	doc["type"] = "array"
	if s.Document()["type"] != "object" {
		t.Fatal("expected document copy to be isolated")
	}
}
