package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/session"
)

// ChatbotTools holds references needed by chatbot, credential and link handlers.
type ChatbotTools struct {
	Store   *catalog.Store
	Session *session.Session
}

// --- Input types ---

type GetChatbotInput struct {
	ID string `json:"id" jsonschema:"Chatbot id" validate:"required"`
}

type CreateChatbotInput struct {
	OrgID       string `json:"org_id" jsonschema:"Owning organization id" validate:"required"`
	Name        string `json:"name" jsonschema:"Chatbot name" validate:"required"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
}

type UpdateChatbotInput struct {
	ID          string  `json:"id" jsonschema:"Chatbot id" validate:"required"`
	Name        *string `json:"name,omitempty" jsonschema:"New name" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
	TesterData  *string `json:"tester_data,omitempty" jsonschema:"Free-form tester notes"`
	AccentColor *string `json:"accent_color,omitempty" jsonschema:"Hex accent color, e.g. #ff6b2c; empty clears it" validate:"omitnil,hexcolor|len=0"`
}

type DeleteChatbotInput struct {
	ID string `json:"id" jsonschema:"Chatbot id; its workflows are deleted too" validate:"required"`
}

type SetTesterDataInput struct {
	ChatbotID  string `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	TesterData string `json:"tester_data" jsonschema:"Free-form tester notes; empty clears them"`
}

type AddCredentialInput struct {
	ChatbotID  string `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	Label      string `json:"label" jsonschema:"Display label" validate:"required"`
	Service    string `json:"service" jsonschema:"Service the account belongs to" validate:"required"`
	Identifier string `json:"identifier,omitempty" jsonschema:"Login, phone number or account id"`
	Notes      string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type UpdateCredentialInput struct {
	ChatbotID    string  `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	CredentialID string  `json:"credential_id" jsonschema:"Credential id" validate:"required"`
	Label        *string `json:"label,omitempty" validate:"omitnil,min=1"`
	Service      *string `json:"service,omitempty" validate:"omitnil,min=1"`
	Identifier   *string `json:"identifier,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type DeleteCredentialInput struct {
	ChatbotID    string `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	CredentialID string `json:"credential_id" jsonschema:"Credential id" validate:"required"`
}

type AddLinkInput struct {
	ChatbotID string `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	Label     string `json:"label" jsonschema:"Display label" validate:"required"`
	URL       string `json:"url" jsonschema:"Absolute URL" validate:"required,url"`
	Icon      string `json:"icon,omitempty" jsonschema:"Optional icon name"`
}

type UpdateLinkInput struct {
	ChatbotID string  `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	LinkID    string  `json:"link_id" jsonschema:"Link id" validate:"required"`
	Label     *string `json:"label,omitempty" validate:"omitnil,min=1"`
	URL       *string `json:"url,omitempty" validate:"omitnil,url"`
	Icon      *string `json:"icon,omitempty"`
}

type DeleteLinkInput struct {
	ChatbotID string `json:"chatbot_id" jsonschema:"Chatbot id" validate:"required"`
	LinkID    string `json:"link_id" jsonschema:"Link id" validate:"required"`
}

type chatbotDetail struct {
	Chatbot   models.Chatbot    `json:"chatbot"`
	Workflows []models.Workflow `json:"workflows"`
}

// --- Handlers ---

func (t *ChatbotTools) GetChatbot(_ context.Context, _ *mcp.CallToolRequest, input GetChatbotInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	bot, ok := t.Store.Chatbot(input.ID)
	if !ok {
		return toolError("Chatbot %q not found", input.ID), nil, nil
	}
	return toolJSON(chatbotDetail{Chatbot: bot, Workflows: t.Store.WorkflowsByChatbot(bot.ID)})
}

func (t *ChatbotTools) CreateChatbot(_ context.Context, _ *mcp.CallToolRequest, input CreateChatbotInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	bot, ok := t.Store.CreateChatbot(input.OrgID, input.Name, input.Description)
	if !ok {
		return toolError("Organization %q not found", input.OrgID), nil, nil
	}
	return savedJSON(t.Store, bot)
}

func (t *ChatbotTools) UpdateChatbot(_ context.Context, _ *mcp.CallToolRequest, input UpdateChatbotInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	bot, ok := t.Store.UpdateChatbot(input.ID, models.ChatbotPatch{
		Name:        input.Name,
		Description: input.Description,
		TesterData:  input.TesterData,
		AccentColor: input.AccentColor,
	})
	if !ok {
		return toolError("Chatbot %q not found", input.ID), nil, nil
	}
	return savedJSON(t.Store, bot)
}

func (t *ChatbotTools) SetTesterData(_ context.Context, _ *mcp.CallToolRequest, input SetTesterDataInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	bot, ok := t.Store.UpdateChatbot(input.ChatbotID, models.ChatbotPatch{TesterData: &input.TesterData})
	if !ok {
		return toolError("Chatbot %q not found", input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, bot)
}

func (t *ChatbotTools) DeleteChatbot(_ context.Context, _ *mcp.CallToolRequest, input DeleteChatbotInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	removed, ok := t.Store.DeleteChatbot(input.ID)
	if !ok {
		return toolError("Chatbot %q not found", input.ID), nil, nil
	}
	t.Session.Forget(append([]string{input.ID}, removed.IDs()...)...)

	msg := fmt.Sprintf("Chatbot %q deleted with %d workflow(s).", input.ID, len(removed.Workflows))
	return saved(t.Store, toolText(msg)), nil, nil
}

// requireChatbot distinguishes a missing owner from a missing child.
func (t *ChatbotTools) requireChatbot(id string) *mcp.CallToolResult {
	if _, ok := t.Store.Chatbot(id); !ok {
		return toolError("Chatbot %q not found", id)
	}
	return nil
}

func (t *ChatbotTools) AddCredential(_ context.Context, _ *mcp.CallToolRequest, input AddCredentialInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	cred, ok := t.Store.AddCredential(input.ChatbotID, models.CredentialInput{
		Label:      input.Label,
		Service:    input.Service,
		Identifier: input.Identifier,
		Notes:      input.Notes,
	})
	if !ok {
		return toolError("Chatbot %q not found", input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, cred)
}

func (t *ChatbotTools) UpdateCredential(_ context.Context, _ *mcp.CallToolRequest, input UpdateCredentialInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireChatbot(input.ChatbotID); res != nil {
		return res, nil, nil
	}
	cred, ok := t.Store.UpdateCredential(input.ChatbotID, input.CredentialID, models.CredentialPatch{
		Label:      input.Label,
		Service:    input.Service,
		Identifier: input.Identifier,
		Notes:      input.Notes,
	})
	if !ok {
		return toolError("Credential %q not found on chatbot %q", input.CredentialID, input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, cred)
}

func (t *ChatbotTools) DeleteCredential(_ context.Context, _ *mcp.CallToolRequest, input DeleteCredentialInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireChatbot(input.ChatbotID); res != nil {
		return res, nil, nil
	}
	if !t.Store.DeleteCredential(input.ChatbotID, input.CredentialID) {
		return toolError("Credential %q not found on chatbot %q", input.CredentialID, input.ChatbotID), nil, nil
	}
	return saved(t.Store, toolText(fmt.Sprintf("Credential %q deleted.", input.CredentialID))), nil, nil
}

func (t *ChatbotTools) AddLink(_ context.Context, _ *mcp.CallToolRequest, input AddLinkInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	link, ok := t.Store.AddLink(input.ChatbotID, models.LinkInput{
		Label: input.Label,
		URL:   input.URL,
		Icon:  input.Icon,
	})
	if !ok {
		return toolError("Chatbot %q not found", input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, link)
}

func (t *ChatbotTools) UpdateLink(_ context.Context, _ *mcp.CallToolRequest, input UpdateLinkInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireChatbot(input.ChatbotID); res != nil {
		return res, nil, nil
	}
	link, ok := t.Store.UpdateLink(input.ChatbotID, input.LinkID, models.LinkPatch{
		Label: input.Label,
		URL:   input.URL,
		Icon:  input.Icon,
	})
	if !ok {
		return toolError("Link %q not found on chatbot %q", input.LinkID, input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, link)
}

func (t *ChatbotTools) DeleteLink(_ context.Context, _ *mcp.CallToolRequest, input DeleteLinkInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireChatbot(input.ChatbotID); res != nil {
		return res, nil, nil
	}
	if !t.Store.DeleteLink(input.ChatbotID, input.LinkID) {
		return toolError("Link %q not found on chatbot %q", input.LinkID, input.ChatbotID), nil, nil
	}
	return saved(t.Store, toolText(fmt.Sprintf("Link %q deleted.", input.LinkID))), nil, nil
}
