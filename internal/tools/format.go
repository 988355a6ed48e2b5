package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hetu-project/openresearch-mcp-server/internal/models"
)

// --- Shared formatting helpers ---

// truncate shortens text to maxLen runes, appending an ellipsis.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// formatDate renders an ISO timestamp as YYYY-MM-DD, passing through
// values it cannot parse.
func formatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return dateStr
}

// formatAuthorNames joins up to max author names, noting the overflow.
func formatAuthorNames(authors []models.Author, max int) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	if len(names) <= max {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s et al. (%d authors)", strings.Join(names[:max], ", "), len(names))
}

// formatKeywordList joins up to max keywords.
func formatKeywordList(keywords []string, max int) string {
	if len(keywords) <= max {
		return strings.Join(keywords, ", ")
	}
	return strings.Join(keywords[:max], ", ")
}

// writePaperSummary writes the compact list entry used by search and
// trending output.
func writePaperSummary(sb *strings.Builder, index int, paper models.Paper) {
	sb.WriteString(fmt.Sprintf("### %d. %s\n\n", index, paper.Title))

	if len(paper.Authors) > 0 {
		sb.WriteString(fmt.Sprintf("**Authors**: %s\n", formatAuthorNames(paper.Authors, 3)))
	}
	if paper.Venue != "" {
		sb.WriteString(fmt.Sprintf("**Venue**: %s", paper.Venue))
		if d := formatDate(paper.PublicationDate); d != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", d))
		}
		sb.WriteString("\n")
	}
	if paper.CitationCount > 0 {
		sb.WriteString(fmt.Sprintf("**Citations**: %d\n", paper.CitationCount))
	}
	if paper.Abstract != "" {
		sb.WriteString(fmt.Sprintf("**Abstract**: %s\n", truncate(paper.Abstract, 200)))
	}
	if paper.URL != "" {
		sb.WriteString(fmt.Sprintf("**Link**: %s\n", paper.URL))
	} else if paper.DOI != "" {
		sb.WriteString(fmt.Sprintf("**DOI**: %s\n", paper.DOI))
	}
	sb.WriteString("\n---\n\n")
}

// asJSON renders a value as indented JSON for the format=json switch.
func asJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}
