package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func noopHandler(ctx context.Context, args map[string]any) (any, error) {
	return "ok", nil
}

func entry(name string) Entry {
	return Entry{Tool: mcp.NewTool(name), Handler: noopHandler}
}

func TestNew_DuplicateNameIsError(t *testing.T) {
	_, err := New(entry("search_papers"), entry("search_papers"))
	if err == nil {
		t.Fatal("expected construction error for duplicate name")
	}
	if !strings.Contains(err.Error(), "search_papers") {
		t.Errorf("expected error to name the duplicate tool, got %q", err.Error())
	}
}

func TestNew_EmptyNameIsError(t *testing.T) {
	_, err := New(Entry{Tool: mcp.Tool{}, Handler: noopHandler})
	if err == nil {
		t.Fatal("expected construction error for empty name")
	}
}

func TestNew_NilHandlerIsError(t *testing.T) {
	_, err := New(Entry{Tool: mcp.NewTool("broken")})
	if err == nil {
		t.Fatal("expected construction error for nil handler")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected error to name the tool, got %q", err.Error())
	}
}

func TestDefinitionsAndResolveAgree(t *testing.T) {
	c, err := New(entry("search_papers"), entry("search_authors"), entry("get_service_status"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defs := c.Definitions()
	if len(defs) != c.Len() {
		t.Fatalf("expected %d definitions, got %d", c.Len(), len(defs))
	}
	for _, def := range defs {
		if _, ok := c.Resolve(def.Name); !ok {
			t.Errorf("listed tool %q does not resolve", def.Name)
		}
	}
	for _, name := range c.Names() {
		if _, ok := c.Resolve(name); !ok {
			t.Errorf("named tool %q does not resolve", name)
		}
	}
}

func TestDefinitions_RegistrationOrder(t *testing.T) {
	c, err := New(entry("c"), entry("a"), entry("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"c", "a", "b"}
	got := c.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestResolve_UnknownName(t *testing.T) {
	c, err := New(entry("only"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Resolve("missing"); ok {
		t.Error("expected unknown name to not resolve")
	}
}
