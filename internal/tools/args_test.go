package tools

import (
	"testing"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
)

func TestGetString(t *testing.T) {
	args := map[string]any{"query": "transformers", "empty": ""}

	if got := getString(args, "query", "x"); got != "transformers" {
		t.Errorf("expected transformers, got %q", got)
	}
	if got := getString(args, "empty", "fallback"); got != "fallback" {
		t.Errorf("empty string should fall back to default, got %q", got)
	}
	if got := getString(args, "missing", "fallback"); got != "fallback" {
		t.Errorf("missing key should fall back to default, got %q", got)
	}
}

func TestGetInt_AcceptsJSONNumbers(t *testing.T) {
	// JSON-decoded arguments carry numbers as float64.
	args := map[string]any{"limit": float64(25), "depth": 3, "bad": "ten"}

	if got := getInt(args, "limit", 20); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := getInt(args, "depth", 2); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := getInt(args, "bad", 20); got != 20 {
		t.Errorf("non-numeric value should fall back to default, got %d", got)
	}
	if got := getInt(args, "missing", 20); got != 20 {
		t.Errorf("missing key should fall back to default, got %d", got)
	}
}

func TestGetStringSlice(t *testing.T) {
	args := map[string]any{
		"typed":   []string{"a", "b"},
		"decoded": []any{"x", "y", 5},
		"scalar":  "not-a-list",
	}

	if got := getStringSlice(args, "typed"); len(got) != 2 {
		t.Errorf("expected 2 items, got %v", got)
	}
	// Non-string items inside a JSON array are skipped.
	if got := getStringSlice(args, "decoded"); len(got) != 2 || got[1] != "y" {
		t.Errorf("expected [x y], got %v", got)
	}
	if got := getStringSlice(args, "scalar"); got != nil {
		t.Errorf("expected nil for scalar value, got %v", got)
	}
	if got := getStringSlice(args, "missing"); got != nil {
		t.Errorf("expected nil for missing key, got %v", got)
	}
}

func TestRequireString(t *testing.T) {
	if _, err := requireString(map[string]any{}, "query"); err == nil {
		t.Fatal("expected error for missing required parameter")
	} else if !backend.IsKind(err, backend.KindToolExecution) {
		t.Errorf("expected tool_execution kind, got %v", err)
	}

	v, err := requireString(map[string]any{"query": "ok"}, "query")
	if err != nil || v != "ok" {
		t.Errorf("expected ok, got %q, %v", v, err)
	}
}

func TestRequireStringSlice(t *testing.T) {
	if _, err := requireStringSlice(map[string]any{"ids": []any{}}, "ids"); err == nil {
		t.Fatal("expected error for empty required list")
	}

	v, err := requireStringSlice(map[string]any{"ids": []any{"p1"}}, "ids")
	if err != nil || len(v) != 1 {
		t.Errorf("expected one item, got %v, %v", v, err)
	}
}

func TestWantJSON(t *testing.T) {
	if wantJSON(map[string]any{}) {
		t.Error("default format should be markdown")
	}
	if !wantJSON(map[string]any{"format": "json"}) {
		t.Error("format=json should select JSON output")
	}
	if wantJSON(map[string]any{"format": "markdown"}) {
		t.Error("format=markdown should not select JSON output")
	}
}
