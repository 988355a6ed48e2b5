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

// AuthorTools exposes author search and detail tools.
type AuthorTools struct {
	client *backend.Client
}

// NewAuthorTools creates the author tool family.
func NewAuthorTools(client *backend.Client) *AuthorTools {
	return &AuthorTools{client: client}
}

// Entries returns the catalog entries for all author tools.
func (t *AuthorTools) Entries() []catalog.Entry {
	return []catalog.Entry{
		{Tool: searchAuthorsTool(), Handler: t.SearchAuthors},
		{Tool: getAuthorDetailsTool(), Handler: t.GetAuthorDetails},
		{Tool: getAuthorPapersTool(), Handler: t.GetAuthorPapers},
	}
}

func searchAuthorsTool() mcp.Tool {
	return mcp.NewTool("search_authors",
		mcp.WithDescription("Search for academic authors by name, affiliation, or research area"),
		mcp.WithString("query",
			mcp.Description("Author name, affiliation, or research area"),
			mcp.Required(),
		),
		mcp.WithObject("filters",
			mcp.Description("Filter conditions such as affiliation or research area"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-100, default 20)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func getAuthorDetailsTool() mcp.Tool {
	return mcp.NewTool("get_author_details",
		mcp.WithDescription("Get detailed information about specific authors including metrics and collaborations"),
		mcp.WithArray("author_ids",
			mcp.WithStringItems(),
			mcp.Description("Author ID list"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func getAuthorPapersTool() mcp.Tool {
	return mcp.NewTool("get_author_papers",
		mcp.WithDescription("Get all papers published by a specific author"),
		mcp.WithString("author_id",
			mcp.Description("Author ID"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum papers to show (default 20)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

// SearchAuthors handles the search_authors tool.
func (t *AuthorTools) SearchAuthors(ctx context.Context, args map[string]any) (any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}

	result, err := t.client.SearchAuthors(ctx, backend.SearchAuthorsRequest{
		Query:   query,
		Filters: getMap(args, "filters"),
		Limit:   getInt(args, "limit", 20),
	})
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatAuthorSearch(result, query), nil
}

// GetAuthorDetails handles the get_author_details tool.
func (t *AuthorTools) GetAuthorDetails(ctx context.Context, args map[string]any) (any, error) {
	authorIDs, err := requireStringSlice(args, "author_ids")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetAuthorDetails(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}

	var sb strings.Builder
	sb.WriteString("# Author Details\n\n")
	if len(result.Authors) == 0 {
		sb.WriteString("No author details found.\n")
		return sb.String(), nil
	}
	for _, author := range result.Authors {
		writeAuthorDetail(&sb, author)
	}
	return sb.String(), nil
}

// GetAuthorPapers handles the get_author_papers tool.
func (t *AuthorTools) GetAuthorPapers(ctx context.Context, args map[string]any) (any, error) {
	authorID, err := requireString(args, "author_id")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetAuthorPapers(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}

	limit := getInt(args, "limit", 20)
	return formatAuthorPapers(result, limit), nil
}

// formatAuthorSearch formats an author search result as markdown.
func formatAuthorSearch(result *models.AuthorSearchResult, query string) string {
	var sb strings.Builder

	sb.WriteString("# Author Search Results\n\n")
	sb.WriteString(fmt.Sprintf("**Query**: %s\n", query))
	sb.WriteString(fmt.Sprintf("**Found**: %d\n\n", len(result.Authors)))

	if len(result.Authors) == 0 {
		sb.WriteString("No matching authors found.\n")
		return sb.String()
	}

	if len(result.Authors) == 1 {
		writeAuthorDetail(&sb, result.Authors[0])
		return sb.String()
	}

	for i, author := range result.Authors {
		sb.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, author.Name))
		if len(author.Affiliations) > 0 {
			sb.WriteString(fmt.Sprintf("**Affiliations**: %s\n", strings.Join(author.Affiliations, ", ")))
		}
		if author.PaperCount > 0 {
			sb.WriteString(fmt.Sprintf("**Papers**: %d\n", author.PaperCount))
		}
		if author.CitationCount > 0 {
			sb.WriteString(fmt.Sprintf("**Citations**: %d\n", author.CitationCount))
		}
		sb.WriteString(fmt.Sprintf("**ID**: %s\n\n", author.ID))
	}
	return sb.String()
}

// writeAuthorDetail writes one full author record.
func writeAuthorDetail(sb *strings.Builder, author models.Author) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", author.Name))
	sb.WriteString(fmt.Sprintf("**ID**: %s\n", author.ID))
	if author.ORCID != "" {
		sb.WriteString(fmt.Sprintf("**ORCID**: %s\n", author.ORCID))
	}
	if len(author.Affiliations) > 0 {
		sb.WriteString(fmt.Sprintf("**Affiliations**: %s\n", strings.Join(author.Affiliations, ", ")))
	}

	sb.WriteString("\n### Metrics\n")
	if author.HIndex > 0 {
		sb.WriteString(fmt.Sprintf("**h-index**: %d\n", author.HIndex))
	}
	if author.PaperCount > 0 {
		sb.WriteString(fmt.Sprintf("**Papers**: %d\n", author.PaperCount))
	}
	if author.CitationCount > 0 {
		sb.WriteString(fmt.Sprintf("**Citations**: %d\n", author.CitationCount))
	}
	if len(author.ResearchInterests) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Research interests**: %s\n", formatKeywordList(author.ResearchInterests, 8)))
	}
	sb.WriteString("\n---\n\n")
}

// formatAuthorPapers formats an author's publication list as markdown.
func formatAuthorPapers(result *models.AuthorPapers, limit int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Papers by %s\n\n", result.AuthorID))
	sb.WriteString(fmt.Sprintf("**Total**: %d\n\n", result.TotalCount))

	if len(result.Papers) == 0 {
		sb.WriteString("No papers found for this author.\n")
		return sb.String()
	}

	papers := result.Papers
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	for i, paper := range papers {
		writePaperSummary(&sb, i+1, paper)
	}
	if len(result.Papers) > len(papers) {
		sb.WriteString(fmt.Sprintf("_%d more papers not shown._\n", len(result.Papers)-len(papers)))
	}
	return sb.String()
}
