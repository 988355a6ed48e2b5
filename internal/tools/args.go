// Package tools defines the MCP tool catalog entries: schema definitions,
// argument decoding, backend calls, and markdown rendering of results.
package tools

import (
	"fmt"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
)

// --- Argument helpers ---
//
// Handlers receive an unconstrained key/value map from the dispatcher and
// perform their own structured decoding. JSON numbers arrive as float64.

func getString(args map[string]any, key, defaultVal string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return defaultVal
}

func getInt(args map[string]any, key string, defaultVal int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return defaultVal
}

func getBool(args map[string]any, key string, defaultVal bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return defaultVal
}

func getStringSlice(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func getMap(args map[string]any, key string) map[string]any {
	if v, ok := args[key].(map[string]any); ok {
		return v
	}
	return nil
}

func requireString(args map[string]any, key string) (string, error) {
	v := getString(args, key, "")
	if v == "" {
		return "", invalidArgs(fmt.Sprintf("%s parameter is required", key))
	}
	return v, nil
}

func requireStringSlice(args map[string]any, key string) ([]string, error) {
	v := getStringSlice(args, key)
	if len(v) == 0 {
		return nil, invalidArgs(fmt.Sprintf("%s parameter is required", key))
	}
	return v, nil
}

// invalidArgs tags a bad-arguments failure so the dispatcher reports it as
// a tool execution error.
func invalidArgs(msg string) error {
	return backend.NewError(backend.KindToolExecution, "", msg, nil)
}

// wantJSON reports whether the caller asked for raw JSON output instead of
// the default markdown rendering.
func wantJSON(args map[string]any) bool {
	return getString(args, "format", "markdown") == "json"
}
