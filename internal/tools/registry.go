package tools

import (
	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/catalog"
)

// NewCatalog builds the full tool catalog bound to the given backend
// client. Each capability is registered exactly once; a duplicate name is
// a construction error.
func NewCatalog(client *backend.Client, sessions *backend.SessionManager) (*catalog.Catalog, error) {
	var entries []catalog.Entry
	entries = append(entries, NewPaperTools(client).Entries()...)
	entries = append(entries, NewAuthorTools(client).Entries()...)
	entries = append(entries, NewNetworkTools(client).Entries()...)
	entries = append(entries, NewTrendTools(client).Entries()...)
	entries = append(entries, NewStatusTools(client, sessions).Entries()...)
	return catalog.New(entries...)
}
