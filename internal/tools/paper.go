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

// PaperTools exposes paper search and detail tools backed by the research
// data client.
type PaperTools struct {
	client *backend.Client
}

// NewPaperTools creates the paper tool family.
func NewPaperTools(client *backend.Client) *PaperTools {
	return &PaperTools{client: client}
}

// Entries returns the catalog entries for all paper tools.
func (t *PaperTools) Entries() []catalog.Entry {
	return []catalog.Entry{
		{Tool: searchPapersTool(), Handler: t.SearchPapers},
		{Tool: getPaperDetailsTool(), Handler: t.GetPaperDetails},
		{Tool: getPaperCitationsTool(), Handler: t.GetPaperCitations},
	}
}

func searchPapersTool() mcp.Tool {
	return mcp.NewTool("search_papers",
		mcp.WithDescription("Search for academic papers by keywords, authors, year, venue, or other criteria"),
		mcp.WithString("query",
			mcp.Description("Search query, natural language or keywords"),
			mcp.Required(),
		),
		mcp.WithObject("filters",
			mcp.Description("Filter conditions such as year_from, year_to, venue, author, domain"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Sort order: relevance, date, or citations"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-100, default 20)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Result offset for pagination"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func getPaperDetailsTool() mcp.Tool {
	return mcp.NewTool("get_paper_details",
		mcp.WithDescription("Get detailed information about specific papers including abstract and metadata"),
		mcp.WithArray("paper_ids",
			mcp.WithStringItems(),
			mcp.Description("Paper ID list"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func getPaperCitationsTool() mcp.Tool {
	return mcp.NewTool("get_paper_citations",
		mcp.WithDescription("Get citation relationships for a specific paper (citing and cited papers)"),
		mcp.WithString("paper_id",
			mcp.Description("Paper ID"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

// SearchPapers handles the search_papers tool.
func (t *PaperTools) SearchPapers(ctx context.Context, args map[string]any) (any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}

	result, err := t.client.SearchPapers(ctx, backend.SearchPapersRequest{
		Query:   query,
		Filters: getMap(args, "filters"),
		SortBy:  getString(args, "sort_by", "relevance"),
		Limit:   getInt(args, "limit", 20),
		Offset:  getInt(args, "offset", 0),
	})
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatPaperSearch(result, query), nil
}

// GetPaperDetails handles the get_paper_details tool.
func (t *PaperTools) GetPaperDetails(ctx context.Context, args map[string]any) (any, error) {
	paperIDs, err := requireStringSlice(args, "paper_ids")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetPaperDetails(ctx, paperIDs)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatPaperDetails(result.Papers), nil
}

// GetPaperCitations handles the get_paper_citations tool.
func (t *PaperTools) GetPaperCitations(ctx context.Context, args map[string]any) (any, error) {
	paperID, err := requireString(args, "paper_id")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetPaperCitations(ctx, paperID)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatPaperCitations(result), nil
}

// formatPaperSearch formats a paper search result as markdown.
func formatPaperSearch(result *models.PaperSearchResult, query string) string {
	var sb strings.Builder

	sb.WriteString("# Search Results\n\n")
	sb.WriteString(fmt.Sprintf("**Query**: %s\n", query))
	sb.WriteString(fmt.Sprintf("**Total**: %d\n\n", result.TotalCount))

	if len(result.Papers) == 0 {
		sb.WriteString("No matching papers found.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("## Papers (showing %d)\n\n", len(result.Papers)))
	for i, paper := range result.Papers {
		writePaperSummary(&sb, i+1, paper)
	}
	return sb.String()
}

// formatPaperDetails formats full paper records as markdown.
func formatPaperDetails(papers []models.Paper) string {
	if len(papers) == 0 {
		return "No paper details found."
	}

	var sb strings.Builder
	sb.WriteString("# Paper Details\n\n")

	for _, paper := range papers {
		sb.WriteString(fmt.Sprintf("## %s\n\n", paper.Title))
		sb.WriteString(fmt.Sprintf("**ID**: %s\n", paper.ID))

		if len(paper.Authors) > 0 {
			sb.WriteString("**Authors**:\n")
			for _, author := range paper.Authors {
				sb.WriteString(fmt.Sprintf("- %s", author.Name))
				if len(author.Affiliations) > 0 {
					sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(author.Affiliations, ", ")))
				}
				sb.WriteString("\n")
			}
		}
		if paper.Venue != "" {
			sb.WriteString(fmt.Sprintf("**Venue**: %s\n", paper.Venue))
		}
		if d := formatDate(paper.PublicationDate); d != "" {
			sb.WriteString(fmt.Sprintf("**Published**: %s\n", d))
		}
		if paper.CitationCount > 0 || paper.DownloadCount > 0 {
			sb.WriteString("\n### Impact\n")
			if paper.CitationCount > 0 {
				sb.WriteString(fmt.Sprintf("**Citations**: %d\n", paper.CitationCount))
			}
			if paper.DownloadCount > 0 {
				sb.WriteString(fmt.Sprintf("**Downloads**: %d\n", paper.DownloadCount))
			}
		}
		if len(paper.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("\n**Keywords**: %s\n", formatKeywordList(paper.Keywords, 5)))
		}
		if paper.Abstract != "" {
			sb.WriteString(fmt.Sprintf("\n### Abstract\n%s\n", paper.Abstract))
		}

		sb.WriteString("\n### Links\n")
		if paper.URL != "" {
			sb.WriteString(fmt.Sprintf("- [Paper link](%s)\n", paper.URL))
		}
		if paper.DOI != "" {
			sb.WriteString(fmt.Sprintf("- DOI: %s\n", paper.DOI))
		}
		if paper.ArxivID != "" {
			sb.WriteString(fmt.Sprintf("- arXiv: %s\n", paper.ArxivID))
		}
		sb.WriteString("\n---\n\n")
	}
	return sb.String()
}

// formatPaperCitations formats citation relationships as markdown.
func formatPaperCitations(citations *models.PaperCitations) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Citations for %s\n\n", citations.PaperID))
	sb.WriteString(fmt.Sprintf("**Citing papers**: %d\n", citations.CitingCount))
	sb.WriteString(fmt.Sprintf("**Cited papers**: %d\n\n", citations.CitedCount))

	if len(citations.Citing) > 0 {
		sb.WriteString("## Papers citing this one\n\n")
		for i, paper := range citations.Citing {
			writePaperSummary(&sb, i+1, paper)
		}
	}
	if len(citations.Cited) > 0 {
		sb.WriteString("## Papers cited by this one\n\n")
		for i, paper := range citations.Cited {
			writePaperSummary(&sb, i+1, paper)
		}
	}
	if len(citations.Citing) == 0 && len(citations.Cited) == 0 {
		sb.WriteString("No citation relationships found.\n")
	}
	return sb.String()
}
