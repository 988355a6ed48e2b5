// Package models defines the normalized data structures returned by the
// research data backend.
package models

// Author holds author information returned by the backend.
type Author struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	ORCID             string   `json:"orcid,omitempty"`
	Affiliations      []string `json:"affiliations"`
	HIndex            int      `json:"h_index,omitempty"`
	CitationCount     int      `json:"citation_count,omitempty"`
	PaperCount        int      `json:"paper_count,omitempty"`
	ResearchInterests []string `json:"research_interests"`
}

// Paper holds paper information returned by the backend.
type Paper struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract,omitempty"`
	Authors         []Author `json:"authors"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Venue           string   `json:"venue,omitempty"`
	VenueType       string   `json:"venue_type,omitempty"`
	DOI             string   `json:"doi,omitempty"`
	ArxivID         string   `json:"arxiv_id,omitempty"`
	URL             string   `json:"url,omitempty"`
	Keywords        []string `json:"keywords"`
	Language        string   `json:"language,omitempty"`
	CitationCount   int      `json:"citation_count,omitempty"`
	DownloadCount   int      `json:"download_count,omitempty"`
}

// PaperSearchResult holds a paper search response.
type PaperSearchResult struct {
	Papers     []Paper `json:"papers"`
	TotalCount int     `json:"total_count"`
}

// AuthorSearchResult holds an author search response.
type AuthorSearchResult struct {
	Authors    []Author `json:"authors"`
	TotalCount int      `json:"total_count"`
}

// PaperCitations holds citation relationships for one paper.
type PaperCitations struct {
	PaperID     string  `json:"paper_id"`
	Citing      []Paper `json:"citing"`
	Cited       []Paper `json:"cited"`
	CitingCount int     `json:"citing_count"`
	CitedCount  int     `json:"cited_count"`
}

// AuthorPapers holds the publication list for one author.
type AuthorPapers struct {
	AuthorID   string  `json:"author_id"`
	Papers     []Paper `json:"papers"`
	TotalCount int     `json:"total_count"`
}

// NetworkNode is one node of a citation or collaboration graph.
type NetworkNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"` // paper, author, institution
	Properties map[string]any `json:"properties"`
}

// NetworkEdge is one edge of a citation or collaboration graph.
type NetworkEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Weight   float64 `json:"weight"`
	EdgeType string  `json:"edge_type"` // citation, collaboration
}

// Network holds a graph returned by the network endpoints.
type Network struct {
	Nodes     []NetworkNode `json:"nodes"`
	Edges     []NetworkEdge `json:"edges"`
	NodeCount int           `json:"node_count"`
	EdgeCount int           `json:"edge_count"`
}

// TrendPoint is one data point of a research trend series.
type TrendPoint struct {
	TimePeriod string  `json:"time_period"`
	Value      float64 `json:"value"`
	Label      string  `json:"label,omitempty"`
}

// TrendAnalysis holds a research trend response.
type TrendAnalysis struct {
	Domain     string       `json:"domain"`
	TimeRange  string       `json:"time_range"`
	DataPoints []TrendPoint `json:"data_points"`
	Metrics    []string     `json:"metrics"`
}

// Keyword holds one trending keyword with its paper count.
type Keyword struct {
	Keyword    string `json:"keyword"`
	PaperCount int    `json:"paper_count"`
}

// KeywordList holds the trending keywords response.
type KeywordList struct {
	Keywords  []Keyword `json:"keywords"`
	TimeRange string    `json:"time_range,omitempty"`
}

// TrendingPapers holds the trending papers response.
type TrendingPapers struct {
	Papers     []Paper `json:"papers"`
	TimeWindow string  `json:"time_window,omitempty"`
}

// Landscape holds a research landscape analysis response.
type Landscape struct {
	Domain       string         `json:"domain"`
	HotTopics    []Keyword      `json:"hot_topics"`
	TopAuthors   []Author       `json:"top_authors"`
	Trends       []TrendPoint   `json:"trends"`
	Institutions []string       `json:"institutions"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// ServiceInfo holds the backend service info response.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
