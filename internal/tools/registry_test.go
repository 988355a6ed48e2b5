package tools

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/common"
)

var canonicalTools = []string{
	"search_papers",
	"get_paper_details",
	"get_paper_citations",
	"search_authors",
	"get_author_details",
	"get_author_papers",
	"get_citation_network",
	"get_collaboration_network",
	"get_trending_papers",
	"get_top_keywords",
	"analyze_domain_trends",
	"analyze_research_landscape",
	"get_service_status",
}

func TestNewCatalog_RegistersAllTools(t *testing.T) {
	client, sessions := newBackendFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	cat, err := NewCatalog(client, sessions)
	if err != nil {
		t.Fatalf("catalog construction failed: %v", err)
	}
	if cat.Len() != len(canonicalTools) {
		t.Errorf("expected %d tools, got %d: %v", len(canonicalTools), cat.Len(), cat.Names())
	}
	for _, name := range canonicalTools {
		if _, ok := cat.Resolve(name); !ok {
			t.Errorf("tool %q not registered", name)
		}
	}
}

func TestNewCatalog_DefinitionsHaveDescriptions(t *testing.T) {
	client, sessions := newBackendFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	cat, err := NewCatalog(client, sessions)
	if err != nil {
		t.Fatalf("catalog construction failed: %v", err)
	}
	for _, def := range cat.Definitions() {
		if def.Description == "" {
			t.Errorf("tool %q has no description", def.Name)
		}
	}
}

func TestGetServiceStatus_HealthyBackend(t *testing.T) {
	client, sessions := newBackendFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"healthy"}`))
		case "/api/v1/info":
			w.Write([]byte(`{"name":"openresearch-data","version":"2.1.0","status":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	st := NewStatusTools(client, sessions)
	result, err := st.GetServiceStatus(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := result.(string)

	for _, want := range []string{
		"OpenResearch MCP Server",
		"Session: connected",
		"Backend: healthy",
		"openresearch-data 2.1.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func TestGetServiceStatus_UnreachableBackend(t *testing.T) {
	// Port 1 refuses connections, so the health check fails at transport
	// level rather than with an HTTP error.
	sessions := backend.NewSessionManager("http://127.0.0.1:1", time.Second, "openresearch-mcp-test/0.0", common.NewSilentLogger())
	client := backend.NewClient(sessions, common.NewSilentLogger())

	st := NewStatusTools(client, sessions)
	result, err := st.GetServiceStatus(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("status tool must not fail on an unreachable backend: %v", err)
	}
	if !strings.Contains(result.(string), "Backend: unreachable") {
		t.Errorf("expected unreachable marker, got:\n%s", result)
	}
}
