package tools

import (
	"strings"
	"testing"

	"github.com/hetu-project/openresearch-mcp-server/internal/models"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcde..." {
		t.Errorf("expected abcde..., got %q", got)
	}
	// Rune-safe: multibyte characters must not be split.
	if got := truncate("日本語のテキスト", 3); got != "日本語..." {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"2023-05-17T10:30:00Z": "2023-05-17",
		"2023-05-17T10:30:00":  "2023-05-17",
		"2023-05-17":           "2023-05-17",
		"May 2023":             "May 2023", // unparseable passes through
	}
	for in, want := range cases {
		if got := formatDate(in); got != want {
			t.Errorf("formatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAuthorNames(t *testing.T) {
	authors := []models.Author{
		{Name: "Ada"}, {Name: "Grace"}, {Name: "Edsger"}, {Name: "Donald"}, {Name: "Barbara"},
	}

	if got := formatAuthorNames(authors[:2], 3); got != "Ada, Grace" {
		t.Errorf("expected plain join, got %q", got)
	}
	got := formatAuthorNames(authors, 3)
	if !strings.Contains(got, "Ada, Grace, Edsger") || !strings.Contains(got, "et al. (5 authors)") {
		t.Errorf("expected overflow marker, got %q", got)
	}
}

func TestWritePaperSummary(t *testing.T) {
	var sb strings.Builder
	writePaperSummary(&sb, 1, models.Paper{
		Title:           "Attention Is All You Need",
		Authors:         []models.Author{{Name: "Ashish Vaswani"}},
		Venue:           "NeurIPS",
		PublicationDate: "2017-06-12",
		CitationCount:   90000,
		Abstract:        strings.Repeat("a", 300),
		DOI:             "10.1000/example",
	})
	out := sb.String()

	for _, want := range []string{
		"### 1. Attention Is All You Need",
		"**Authors**: Ashish Vaswani",
		"**Venue**: NeurIPS (2017-06-12)",
		"**Citations**: 90000",
		"**DOI**: 10.1000/example",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	// Abstract is truncated for list output.
	if !strings.Contains(out, "a...") || strings.Contains(out, strings.Repeat("a", 250)) {
		t.Error("expected abstract truncated to list length")
	}
}

func TestWritePaperSummary_URLPreferredOverDOI(t *testing.T) {
	var sb strings.Builder
	writePaperSummary(&sb, 1, models.Paper{
		Title: "Sparse Models",
		URL:   "https://example.org/paper",
		DOI:   "10.1000/other",
	})
	out := sb.String()

	if !strings.Contains(out, "**Link**: https://example.org/paper") {
		t.Errorf("expected link line, got:\n%s", out)
	}
	if strings.Contains(out, "**DOI**") {
		t.Errorf("DOI should be omitted when a URL exists, got:\n%s", out)
	}
}
