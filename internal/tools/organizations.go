package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/session"
)

// OrganizationTools holds references needed by organization tool handlers.
type OrganizationTools struct {
	Store   *catalog.Store
	Session *session.Session
}

// --- Input types ---

type GetOrganizationInput struct {
	ID string `json:"id" jsonschema:"Organization id" validate:"required"`
}

type CreateOrganizationInput struct {
	Name        string `json:"name" jsonschema:"Organization name" validate:"required"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
}

type UpdateOrganizationInput struct {
	ID          string  `json:"id" jsonschema:"Organization id" validate:"required"`
	Name        *string `json:"name,omitempty" jsonschema:"New name" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
}

type DeleteOrganizationInput struct {
	ID string `json:"id" jsonschema:"Organization id; its chatbots and their workflows are deleted too" validate:"required"`
}

type organizationDetail struct {
	Organization models.Organization `json:"organization"`
	Chatbots     []models.Chatbot    `json:"chatbots"`
}

// --- Handlers ---

func (t *OrganizationTools) ListOrganizations(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Store.Organizations())
}

func (t *OrganizationTools) GetOrganization(_ context.Context, _ *mcp.CallToolRequest, input GetOrganizationInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	org, ok := t.Store.Organization(input.ID)
	if !ok {
		return toolError("Organization %q not found", input.ID), nil, nil
	}
	return toolJSON(organizationDetail{Organization: org, Chatbots: t.Store.ChatbotsByOrg(org.ID)})
}

func (t *OrganizationTools) CreateOrganization(_ context.Context, _ *mcp.CallToolRequest, input CreateOrganizationInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	org := t.Store.CreateOrganization(input.Name, input.Description)
	return savedJSON(t.Store, org)
}

func (t *OrganizationTools) UpdateOrganization(_ context.Context, _ *mcp.CallToolRequest, input UpdateOrganizationInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	org, ok := t.Store.UpdateOrganization(input.ID, models.OrganizationPatch{
		Name:        input.Name,
		Description: input.Description,
	})
	if !ok {
		return toolError("Organization %q not found", input.ID), nil, nil
	}
	return savedJSON(t.Store, org)
}

func (t *OrganizationTools) DeleteOrganization(_ context.Context, _ *mcp.CallToolRequest, input DeleteOrganizationInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	removed, ok := t.Store.DeleteOrganization(input.ID)
	if !ok {
		return toolError("Organization %q not found", input.ID), nil, nil
	}
	t.Session.Forget(append([]string{input.ID}, removed.IDs()...)...)

	msg := fmt.Sprintf("Organization %q deleted with %d chatbot(s) and %d workflow(s).",
		input.ID, len(removed.Chatbots), len(removed.Workflows))
	return saved(t.Store, toolText(msg)), nil, nil
}
