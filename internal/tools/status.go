package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/catalog"
	"github.com/hetu-project/openresearch-mcp-server/internal/config"
)

// StatusTools exposes the service status tool. Use it to verify backend
// connectivity.
type StatusTools struct {
	client   *backend.Client
	sessions *backend.SessionManager
}

// NewStatusTools creates the status tool family.
func NewStatusTools(client *backend.Client, sessions *backend.SessionManager) *StatusTools {
	return &StatusTools{client: client, sessions: sessions}
}

// Entries returns the catalog entries for the status tools.
func (t *StatusTools) Entries() []catalog.Entry {
	return []catalog.Entry{
		{Tool: serviceStatusTool(), Handler: t.GetServiceStatus},
	}
}

func serviceStatusTool() mcp.Tool {
	return mcp.NewTool("get_service_status",
		mcp.WithDescription("Get the MCP server version and backend service health. Use this to verify connectivity."),
	)
}

// GetServiceStatus handles the get_service_status tool.
func (t *StatusTools) GetServiceStatus(ctx context.Context, args map[string]any) (any, error) {
	var sb strings.Builder

	sb.WriteString("OpenResearch MCP Server\n")
	sb.WriteString(fmt.Sprintf("Version: %s\n", config.GetVersion()))
	sb.WriteString(fmt.Sprintf("Session: %s", t.sessions.Status()))
	if created := t.sessions.SessionCreatedAt(); !created.IsZero() {
		sb.WriteString(fmt.Sprintf(" (since %s)", created.Format(time.RFC3339)))
	}
	sb.WriteString("\n")

	if err := t.client.HealthCheck(ctx); err != nil {
		sb.WriteString(fmt.Sprintf("Backend: unreachable (%v)\n", err))
		return sb.String(), nil
	}
	sb.WriteString("Backend: healthy\n")

	info, err := t.client.GetServiceInfo(ctx)
	if err == nil {
		sb.WriteString(fmt.Sprintf("Backend service: %s %s (%s)\n", info.Name, info.Version, info.Status))
	}
	return sb.String(), nil
}
