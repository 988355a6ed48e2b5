package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/catalog"
	"github.com/hetu-project/openresearch-mcp-server/internal/models"
)

// NetworkTools exposes citation and collaboration graph tools.
type NetworkTools struct {
	client *backend.Client
}

// NewNetworkTools creates the network tool family.
func NewNetworkTools(client *backend.Client) *NetworkTools {
	return &NetworkTools{client: client}
}

// Entries returns the catalog entries for all network tools.
func (t *NetworkTools) Entries() []catalog.Entry {
	return []catalog.Entry{
		{Tool: citationNetworkTool(), Handler: t.GetCitationNetwork},
		{Tool: collaborationNetworkTool(), Handler: t.GetCollaborationNetwork},
	}
}

func citationNetworkTool() mcp.Tool {
	return mcp.NewTool("get_citation_network",
		mcp.WithDescription("Generate citation network graph showing paper relationships"),
		mcp.WithArray("seed_papers",
			mcp.WithStringItems(),
			mcp.Description("Seed paper ID list"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("Network depth (1-3, default 2)"),
		),
		mcp.WithString("direction",
			mcp.Description("Citation direction: incoming, outgoing, or both (default both)"),
		),
		mcp.WithNumber("max_nodes",
			mcp.Description("Maximum nodes (10-200, default 50)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func collaborationNetworkTool() mcp.Tool {
	return mcp.NewTool("get_collaboration_network",
		mcp.WithDescription("Generate collaboration network graph showing author relationships"),
		mcp.WithArray("authors",
			mcp.WithStringItems(),
			mcp.Description("Author ID list"),
			mcp.Required(),
		),
		mcp.WithString("time_range",
			mcp.Description("Time range, format YYYY-YYYY"),
		),
		mcp.WithNumber("max_nodes",
			mcp.Description("Maximum nodes (10-200, default 50)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

// GetCitationNetwork handles the get_citation_network tool.
func (t *NetworkTools) GetCitationNetwork(ctx context.Context, args map[string]any) (any, error) {
	seedPapers, err := requireStringSlice(args, "seed_papers")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetCitationNetwork(ctx, backend.CitationNetworkRequest{
		SeedPapers: seedPapers,
		Depth:      getInt(args, "depth", 2),
		Direction:  getString(args, "direction", "both"),
		MaxNodes:   getInt(args, "max_nodes", 50),
	})
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatNetwork(result, "Citation Network", strings.Join(seedPapers, ", ")), nil
}

// GetCollaborationNetwork handles the get_collaboration_network tool.
func (t *NetworkTools) GetCollaborationNetwork(ctx context.Context, args map[string]any) (any, error) {
	authors, err := requireStringSlice(args, "authors")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetCollaborationNetwork(ctx, backend.CollaborationNetworkRequest{
		Authors:   authors,
		TimeRange: getString(args, "time_range", ""),
		MaxNodes:  getInt(args, "max_nodes", 50),
	})
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatNetwork(result, "Collaboration Network", strings.Join(authors, ", ")), nil
}

// formatNetwork formats a graph as markdown: a summary, the nodes, and an
// adjacency listing.
func formatNetwork(network *models.Network, title, seeds string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**Seeds**: %s\n", seeds))
	sb.WriteString(fmt.Sprintf("**Nodes**: %d\n", network.NodeCount))
	sb.WriteString(fmt.Sprintf("**Edges**: %d\n\n", network.EdgeCount))

	if len(network.Nodes) == 0 {
		sb.WriteString("The network is empty.\n")
		return sb.String()
	}

	labels := make(map[string]string, len(network.Nodes))

	sb.WriteString("## Nodes\n\n")
	for _, node := range network.Nodes {
		labels[node.ID] = node.Label
		sb.WriteString(fmt.Sprintf("- **%s** (%s)", node.Label, node.Type))
		if node.ID != node.Label {
			sb.WriteString(fmt.Sprintf(" `%s`", node.ID))
		}
		sb.WriteString("\n")
	}

	if len(network.Edges) > 0 {
		sb.WriteString("\n## Relationships\n\n")
		for _, edge := range network.Edges {
			source := labels[edge.Source]
			if source == "" {
				source = edge.Source
			}
			target := labels[edge.Target]
			if target == "" {
				target = edge.Target
			}
			sb.WriteString(fmt.Sprintf("- %s -> %s (%s", source, target, edge.EdgeType))
			if edge.Weight > 0 && edge.Weight != 1 {
				sb.WriteString(fmt.Sprintf(", weight %.2f", edge.Weight))
			}
			sb.WriteString(")\n")
		}
	}
	return sb.String()
}
