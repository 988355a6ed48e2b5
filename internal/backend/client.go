package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hetu-project/openresearch-mcp-server/internal/common"
	"github.com/hetu-project/openresearch-mcp-server/internal/models"
)

// Client exposes one method per backend capability. Each method builds a
// request descriptor, delegates to the session manager, and normalizes the
// decoded JSON so callers never see nil collections for guaranteed fields.
type Client struct {
	sessions *SessionManager
	logger   *common.Logger
}

// NewClient creates a backend client over the given session manager.
func NewClient(sessions *SessionManager, logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{sessions: sessions, logger: logger}
}

// Connect eagerly establishes the backend session. Called at startup so
// construction failures surface before the server starts serving.
func (c *Client) Connect(ctx context.Context) error {
	return c.sessions.Connect(ctx)
}

// Disconnect closes the backend session. Idempotent.
func (c *Client) Disconnect() {
	c.sessions.Disconnect()
}

// SearchPapersRequest holds search_papers parameters.
type SearchPapersRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
	SortBy  string         `json:"sort_by"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// SearchPapers searches papers by query with optional filters.
func (c *Client) SearchPapers(ctx context.Context, req SearchPapersRequest) (*models.PaperSearchResult, error) {
	const op = "search_papers"
	if req.Filters == nil {
		req.Filters = map[string]any{}
	}
	if req.SortBy == "" {
		req.SortBy = "relevance"
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	c.logger.Info().Str("query", req.Query).Int("limit", req.Limit).Msg("searching papers")

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/papers/search",
		Body:   req,
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.PaperSearchResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	normalizePapers(&result.Papers)

	c.logger.Info().Int("total_count", result.TotalCount).Int("returned", len(result.Papers)).Msg("paper search completed")
	return &result, nil
}

// GetPaperDetails fetches detail records for the given paper IDs.
func (c *Client) GetPaperDetails(ctx context.Context, paperIDs []string) (*models.PaperSearchResult, error) {
	const op = "get_paper_details"
	c.logger.Info().Int("requested", len(paperIDs)).Msg("getting paper details")

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/papers/details",
		Body:   map[string]any{"paper_ids": paperIDs},
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.PaperSearchResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	normalizePapers(&result.Papers)
	return &result, nil
}

// GetPaperCitations fetches citation relationships for one paper.
func (c *Client) GetPaperCitations(ctx context.Context, paperID string) (*models.PaperCitations, error) {
	const op = "get_paper_citations"
	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/api/v1/papers/" + url.PathEscape(paperID) + "/citations",
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.PaperCitations
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.PaperID == "" {
		result.PaperID = paperID
	}
	normalizePapers(&result.Citing)
	normalizePapers(&result.Cited)
	if result.CitingCount == 0 {
		result.CitingCount = len(result.Citing)
	}
	if result.CitedCount == 0 {
		result.CitedCount = len(result.Cited)
	}
	return &result, nil
}

// SearchAuthorsRequest holds search_authors parameters.
type SearchAuthorsRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
	Limit   int            `json:"limit"`
}

// SearchAuthors searches authors by name, affiliation or research area.
func (c *Client) SearchAuthors(ctx context.Context, req SearchAuthorsRequest) (*models.AuthorSearchResult, error) {
	const op = "search_authors"
	if req.Filters == nil {
		req.Filters = map[string]any{}
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	c.logger.Info().Str("query", req.Query).Int("limit", req.Limit).Msg("searching authors")

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/authors/search",
		Body:   req,
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.AuthorSearchResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	normalizeAuthors(&result.Authors)
	return &result, nil
}

// GetAuthorDetails fetches detail records for the given author IDs.
func (c *Client) GetAuthorDetails(ctx context.Context, authorIDs []string) (*models.AuthorSearchResult, error) {
	const op = "get_author_details"
	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/authors/details",
		Body:   map[string]any{"author_ids": authorIDs},
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.AuthorSearchResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	normalizeAuthors(&result.Authors)
	return &result, nil
}

// GetAuthorPapers fetches all papers published by one author.
func (c *Client) GetAuthorPapers(ctx context.Context, authorID string) (*models.AuthorPapers, error) {
	const op = "get_author_papers"
	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/api/v1/authors/" + url.PathEscape(authorID) + "/papers",
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.AuthorPapers
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.AuthorID == "" {
		result.AuthorID = authorID
	}
	normalizePapers(&result.Papers)
	if result.TotalCount == 0 {
		result.TotalCount = len(result.Papers)
	}
	return &result, nil
}

// CitationNetworkRequest holds get_citation_network parameters.
type CitationNetworkRequest struct {
	SeedPapers []string `json:"seed_papers"`
	Depth      int      `json:"depth"`
	Direction  string   `json:"direction"`
	MaxNodes   int      `json:"max_nodes"`
}

// GetCitationNetwork builds a citation graph around the seed papers.
func (c *Client) GetCitationNetwork(ctx context.Context, req CitationNetworkRequest) (*models.Network, error) {
	const op = "get_citation_network"
	if req.Depth <= 0 {
		req.Depth = 2
	}
	if req.Direction == "" {
		req.Direction = "both"
	}
	if req.MaxNodes <= 0 {
		req.MaxNodes = 50
	}

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/networks/citation",
		Body:   req,
	})
	if err != nil {
		return nil, withOp(err, op)
	}
	return decodeNetwork(body, op)
}

// CollaborationNetworkRequest holds get_collaboration_network parameters.
type CollaborationNetworkRequest struct {
	Authors   []string `json:"authors"`
	TimeRange string   `json:"time_range,omitempty"`
	MaxNodes  int      `json:"max_nodes"`
}

// GetCollaborationNetwork builds a collaboration graph for the given authors.
func (c *Client) GetCollaborationNetwork(ctx context.Context, req CollaborationNetworkRequest) (*models.Network, error) {
	const op = "get_collaboration_network"
	if req.MaxNodes <= 0 {
		req.MaxNodes = 50
	}

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/networks/collaboration",
		Body:   req,
	})
	if err != nil {
		return nil, withOp(err, op)
	}
	return decodeNetwork(body, op)
}

// GetTrendingPapers fetches currently trending papers within a time window.
func (c *Client) GetTrendingPapers(ctx context.Context, timeWindow string, limit int) (*models.TrendingPapers, error) {
	const op = "get_trending_papers"
	if timeWindow == "" {
		timeWindow = "month"
	}
	if limit <= 0 {
		limit = 20
	}

	query := url.Values{}
	query.Set("time_window", timeWindow)
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/api/v1/trends/papers",
		Query:  query,
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.TrendingPapers
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	normalizePapers(&result.Papers)
	if result.TimeWindow == "" {
		result.TimeWindow = timeWindow
	}
	return &result, nil
}

// GetTopKeywords fetches trending research keywords with paper counts.
func (c *Client) GetTopKeywords(ctx context.Context, limit int, timeRange string) (*models.KeywordList, error) {
	const op = "get_top_keywords"
	if limit <= 0 {
		limit = 20
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if timeRange != "" {
		query.Set("time_range", timeRange)
	}

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/api/v1/trends/keywords",
		Query:  query,
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.KeywordList
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.Keywords == nil {
		result.Keywords = []models.Keyword{}
	}
	return &result, nil
}

// ResearchTrendsRequest holds analyze_domain_trends parameters.
type ResearchTrendsRequest struct {
	Domain      string   `json:"domain"`
	TimeRange   string   `json:"time_range"`
	Metrics     []string `json:"metrics"`
	Granularity string   `json:"granularity"`
}

// GetResearchTrends fetches trend series for a research domain.
func (c *Client) GetResearchTrends(ctx context.Context, req ResearchTrendsRequest) (*models.TrendAnalysis, error) {
	const op = "analyze_domain_trends"
	if req.Granularity == "" {
		req.Granularity = "year"
	}
	if len(req.Metrics) == 0 {
		req.Metrics = []string{"publication_count"}
	}

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/trends/research",
		Body:   req,
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.TrendAnalysis
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.DataPoints == nil {
		result.DataPoints = []models.TrendPoint{}
	}
	if result.Metrics == nil {
		result.Metrics = []string{}
	}
	if result.Domain == "" {
		result.Domain = req.Domain
	}
	return &result, nil
}

// AnalyzeResearchLandscape fetches a full landscape analysis for a domain.
func (c *Client) AnalyzeResearchLandscape(ctx context.Context, domain string, dimensions []string) (*models.Landscape, error) {
	const op = "analyze_research_landscape"
	if len(dimensions) == 0 {
		dimensions = []string{"topics", "authors", "trends"}
	}

	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/v1/analysis/landscape",
		Body: map[string]any{
			"domain":              domain,
			"analysis_dimensions": dimensions,
		},
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.Landscape
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.HotTopics == nil {
		result.HotTopics = []models.Keyword{}
	}
	if result.TopAuthors == nil {
		result.TopAuthors = []models.Author{}
	}
	normalizeAuthors(&result.TopAuthors)
	if result.Trends == nil {
		result.Trends = []models.TrendPoint{}
	}
	if result.Institutions == nil {
		result.Institutions = []string{}
	}
	if result.Domain == "" {
		result.Domain = domain
	}
	return &result, nil
}

// HealthCheck probes the backend health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	const op = "health_check"
	_, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/health",
	})
	return withOp(err, op)
}

// GetServiceInfo fetches backend service metadata.
func (c *Client) GetServiceInfo(ctx context.Context) (*models.ServiceInfo, error) {
	const op = "get_service_info"
	body, err := c.sessions.Request(ctx, Descriptor{
		Method: http.MethodGet,
		Path:   "/api/v1/info",
	})
	if err != nil {
		return nil, withOp(err, op)
	}

	var result models.ServiceInfo
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	return &result, nil
}

// decodeNetwork decodes and normalizes a network response.
func decodeNetwork(body []byte, op string) (*models.Network, error) {
	var result models.Network
	if err := decodeJSON(body, &result); err != nil {
		return nil, withOp(err, op)
	}
	if result.Nodes == nil {
		result.Nodes = []models.NetworkNode{}
	}
	if result.Edges == nil {
		result.Edges = []models.NetworkEdge{}
	}
	if result.NodeCount == 0 {
		result.NodeCount = len(result.Nodes)
	}
	if result.EdgeCount == 0 {
		result.EdgeCount = len(result.Edges)
	}
	return &result, nil
}

// normalizePapers fills defaulted fields so downstream formatting never
// sees nil collections.
func normalizePapers(papers *[]models.Paper) {
	if *papers == nil {
		*papers = []models.Paper{}
	}
	for i := range *papers {
		p := &(*papers)[i]
		if p.Authors == nil {
			p.Authors = []models.Author{}
		}
		normalizeAuthors(&p.Authors)
		if p.Keywords == nil {
			p.Keywords = []string{}
		}
		if p.Language == "" {
			p.Language = "en"
		}
	}
}

// normalizeAuthors fills defaulted author fields.
func normalizeAuthors(authors *[]models.Author) {
	if *authors == nil {
		*authors = []models.Author{}
	}
	for i := range *authors {
		a := &(*authors)[i]
		if a.Affiliations == nil {
			a.Affiliations = []string{}
		}
		if a.ResearchInterests == nil {
			a.ResearchInterests = []string{}
		}
	}
}
