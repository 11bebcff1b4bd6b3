package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/session"
)

// CatalogTools serves whole-catalog reads: search, tree and totals.
type CatalogTools struct {
	Store   *catalog.Store
	Session *session.Session
}

type SearchCatalogInput struct {
	Query string `json:"query" jsonschema:"Case-insensitive substring matched against names, descriptions, credentials, tester data and agents" validate:"required"`
}

type catalogTree struct {
	Organizations    []models.OrgNode `json:"organizations"`
	ExpandedOrgs     []string         `json:"expandedOrgs"`
	ExpandedChatbots []string         `json:"expandedChatbots"`
}

func (t *CatalogTools) SearchCatalog(_ context.Context, _ *mcp.CallToolRequest, input SearchCatalogInput) (*mcp.CallToolResult, any, error) {
	t.Session.SetSearchQuery(input.Query)

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return toolError("Search query is required"), nil, nil
	}

	results := t.Store.SearchAll(query)
	if results.Empty() {
		return toolText("No results for \"" + query + "\"."), nil, nil
	}
	return toolJSON(results)
}

func (t *CatalogTools) ReadCatalog(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(catalogTree{
		Organizations:    t.Store.Tree(),
		ExpandedOrgs:     t.Session.ExpandedOrgs(),
		ExpandedChatbots: t.Session.ExpandedChatbots(),
	})
}

func (t *CatalogTools) GetStats(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Store.Stats())
}
