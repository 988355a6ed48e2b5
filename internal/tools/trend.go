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

// TrendTools exposes research trend and landscape analysis tools.
type TrendTools struct {
	client *backend.Client
}

// NewTrendTools creates the trend tool family.
func NewTrendTools(client *backend.Client) *TrendTools {
	return &TrendTools{client: client}
}

// Entries returns the catalog entries for all trend tools.
func (t *TrendTools) Entries() []catalog.Entry {
	return []catalog.Entry{
		{Tool: trendingPapersTool(), Handler: t.GetTrendingPapers},
		{Tool: topKeywordsTool(), Handler: t.GetTopKeywords},
		{Tool: domainTrendsTool(), Handler: t.AnalyzeDomainTrends},
		{Tool: researchLandscapeTool(), Handler: t.AnalyzeResearchLandscape},
	}
}

func trendingPapersTool() mcp.Tool {
	return mcp.NewTool("get_trending_papers",
		mcp.WithDescription("Get currently trending/popular papers in specified time window"),
		mcp.WithString("time_window",
			mcp.Description("Time window: week, month, or year (default month)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-100, default 20)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func topKeywordsTool() mcp.Tool {
	return mcp.NewTool("get_top_keywords",
		mcp.WithDescription("Get currently popular research keywords/topics with paper counts"),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-100, default 20)"),
		),
		mcp.WithString("time_range",
			mcp.Description("Time range, format YYYY-YYYY"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func domainTrendsTool() mcp.Tool {
	return mcp.NewTool("analyze_domain_trends",
		mcp.WithDescription("Analyze research trends for a specific domain over time"),
		mcp.WithString("domain",
			mcp.Description("Research domain name"),
			mcp.Required(),
		),
		mcp.WithString("time_range",
			mcp.Description("Time range, format YYYY-YYYY (default 2020-2024)"),
		),
		mcp.WithArray("metrics",
			mcp.WithStringItems(),
			mcp.Description("Metrics: publication_count, citation_count, author_count"),
		),
		mcp.WithString("granularity",
			mcp.Description("Time granularity: year, quarter, or month (default year)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

func researchLandscapeTool() mcp.Tool {
	return mcp.NewTool("analyze_research_landscape",
		mcp.WithDescription("Analyze the full landscape of a research domain: hot topics, active authors, emerging trends"),
		mcp.WithString("domain",
			mcp.Description("Research domain name"),
			mcp.Required(),
		),
		mcp.WithArray("analysis_dimensions",
			mcp.WithStringItems(),
			mcp.Description("Dimensions: topics, authors, trends, institutions (default topics, authors, trends)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
		),
	)
}

// GetTrendingPapers handles the get_trending_papers tool.
func (t *TrendTools) GetTrendingPapers(ctx context.Context, args map[string]any) (any, error) {
	timeWindow := getString(args, "time_window", "month")
	limit := getInt(args, "limit", 20)

	result, err := t.client.GetTrendingPapers(ctx, timeWindow, limit)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatTrendingPapers(result), nil
}

// GetTopKeywords handles the get_top_keywords tool.
func (t *TrendTools) GetTopKeywords(ctx context.Context, args map[string]any) (any, error) {
	limit := getInt(args, "limit", 20)
	timeRange := getString(args, "time_range", "")

	result, err := t.client.GetTopKeywords(ctx, limit, timeRange)
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatTopKeywords(result, limit), nil
}

// AnalyzeDomainTrends handles the analyze_domain_trends tool.
func (t *TrendTools) AnalyzeDomainTrends(ctx context.Context, args map[string]any) (any, error) {
	domain, err := requireString(args, "domain")
	if err != nil {
		return nil, err
	}

	result, err := t.client.GetResearchTrends(ctx, backend.ResearchTrendsRequest{
		Domain:      domain,
		TimeRange:   getString(args, "time_range", "2020-2024"),
		Metrics:     getStringSlice(args, "metrics"),
		Granularity: getString(args, "granularity", "year"),
	})
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatDomainTrends(result), nil
}

// AnalyzeResearchLandscape handles the analyze_research_landscape tool.
func (t *TrendTools) AnalyzeResearchLandscape(ctx context.Context, args map[string]any) (any, error) {
	domain, err := requireString(args, "domain")
	if err != nil {
		return nil, err
	}

	result, err := t.client.AnalyzeResearchLandscape(ctx, domain, getStringSlice(args, "analysis_dimensions"))
	if err != nil {
		return nil, err
	}

	if wantJSON(args) {
		return asJSON(result)
	}
	return formatLandscape(result), nil
}

// formatTrendingPapers formats trending papers as markdown.
func formatTrendingPapers(result *models.TrendingPapers) string {
	var sb strings.Builder

	sb.WriteString("# Trending Papers\n\n")
	sb.WriteString(fmt.Sprintf("**Time window**: %s\n\n", result.TimeWindow))

	if len(result.Papers) == 0 {
		sb.WriteString("No trending papers found.\n")
		return sb.String()
	}
	for i, paper := range result.Papers {
		writePaperSummary(&sb, i+1, paper)
	}
	return sb.String()
}

// formatTopKeywords formats trending keywords as a ranked markdown list.
func formatTopKeywords(result *models.KeywordList, limit int) string {
	var sb strings.Builder

	sb.WriteString("# Top Research Keywords\n\n")
	if result.TimeRange != "" {
		sb.WriteString(fmt.Sprintf("**Time range**: %s\n\n", result.TimeRange))
	}

	if len(result.Keywords) == 0 {
		sb.WriteString("No keyword data available.\n")
		return sb.String()
	}

	keywords := result.Keywords
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	for i, kw := range keywords {
		sb.WriteString(fmt.Sprintf("%d. **%s**", i+1, kw.Keyword))
		if kw.PaperCount > 0 {
			sb.WriteString(fmt.Sprintf(" (%d papers)", kw.PaperCount))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatDomainTrends formats a trend series as markdown.
func formatDomainTrends(result *models.TrendAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Research Trends: %s\n\n", result.Domain))
	sb.WriteString(fmt.Sprintf("**Time range**: %s\n", result.TimeRange))
	if len(result.Metrics) > 0 {
		sb.WriteString(fmt.Sprintf("**Metrics**: %s\n", strings.Join(result.Metrics, ", ")))
	}
	sb.WriteString("\n")

	if len(result.DataPoints) == 0 {
		sb.WriteString("No trend data available for this domain.\n")
		return sb.String()
	}

	sb.WriteString("| Period | Value |\n")
	sb.WriteString("|--------|-------|\n")
	for _, point := range result.DataPoints {
		label := point.TimePeriod
		if point.Label != "" {
			label = fmt.Sprintf("%s (%s)", point.TimePeriod, point.Label)
		}
		sb.WriteString(fmt.Sprintf("| %s | %.0f |\n", label, point.Value))
	}
	return sb.String()
}

// formatLandscape formats a research landscape analysis as markdown.
func formatLandscape(result *models.Landscape) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Research Landscape: %s\n\n", result.Domain))

	if len(result.HotTopics) > 0 {
		sb.WriteString("## Hot Topics\n\n")
		for i, topic := range result.HotTopics {
			sb.WriteString(fmt.Sprintf("%d. **%s**", i+1, topic.Keyword))
			if topic.PaperCount > 0 {
				sb.WriteString(fmt.Sprintf(" (%d papers)", topic.PaperCount))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.TopAuthors) > 0 {
		sb.WriteString("## Active Authors\n\n")
		for i, author := range result.TopAuthors {
			sb.WriteString(fmt.Sprintf("%d. **%s**", i+1, author.Name))
			if len(author.Affiliations) > 0 {
				sb.WriteString(fmt.Sprintf(", %s", author.Affiliations[0]))
			}
			if author.PaperCount > 0 {
				sb.WriteString(fmt.Sprintf(" (%d papers)", author.PaperCount))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.Trends) > 0 {
		sb.WriteString("## Trends\n\n")
		for _, point := range result.Trends {
			sb.WriteString(fmt.Sprintf("- %s: %.0f\n", point.TimePeriod, point.Value))
		}
		sb.WriteString("\n")
	}

	if len(result.Institutions) > 0 {
		sb.WriteString("## Institutions\n\n")
		for _, inst := range result.Institutions {
			sb.WriteString(fmt.Sprintf("- %s\n", inst))
		}
	}

	if len(result.HotTopics) == 0 && len(result.TopAuthors) == 0 &&
		len(result.Trends) == 0 && len(result.Institutions) == 0 {
		sb.WriteString("No landscape data available for this domain.\n")
	}
	return sb.String()
}
