package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-finding",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":     map[string]any{"type": "string"},
				"rows":     map[string]any{"type": "integer", "minimum": 0},
				"severity": map[string]any{"type": "string", "enum": []any{"low", "high"}},
			},
			"required":             []any{"name", "rows"},
			"additionalProperties": false,
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"dupes","rows":2,"severity":"high"}`, false},
		{"optional omitted", `{"name":"dupes","rows":0}`, false},
		{"missing required", `{"name":"dupes"}`, true},
		{"wrong type", `{"name":"dupes","rows":"two"}`, true},
		{"enum violation", `{"name":"dupes","rows":1,"severity":"medium"}`, true},
		{"extra property", `{"name":"dupes","rows":1,"note":"x"}`, true},
		{"negative", `{"name":"dupes","rows":-1}`, true},
		{"not JSON", `rows: 2`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(testSchema(), []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, []byte("not even json")); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestCheckOutput_MaxTokens(t *testing.T) {
	err := checkOutput(Request{Schema: testSchema()}, json.RawMessage(`{"name":"du`), "max_tokens")
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}

	if err := checkOutput(Request{}, json.RawMessage(`plain text`), "max_tokens"); err != nil {
		t.Fatalf("unstructured request should pass, got %v", err)
	}
}
