package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/session"
)

// WorkflowTools holds references needed by workflow, agent and timeline handlers.
type WorkflowTools struct {
	Store   *catalog.Store
	Session *session.Session
}

// --- Input types ---

type GetWorkflowInput struct {
	ID string `json:"id" jsonschema:"Workflow id" validate:"required"`
}

type CreateWorkflowInput struct {
	ChatbotID   string `json:"chatbot_id" jsonschema:"Owning chatbot id" validate:"required"`
	Name        string `json:"name" jsonschema:"Workflow name" validate:"required"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
	URL         string `json:"url,omitempty" jsonschema:"Link to the workflow in the automation tool" validate:"omitempty,url"`
	Emoji       string `json:"emoji,omitempty" jsonschema:"Optional emoji shown next to the name"`
}

type UpdateWorkflowInput struct {
	ID          string  `json:"id" jsonschema:"Workflow id" validate:"required"`
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Emoji       *string `json:"emoji,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty" jsonschema:"New URL; empty clears it" validate:"omitnil,url|len=0"`
}

type DeleteWorkflowInput struct {
	ID string `json:"id" jsonschema:"Workflow id" validate:"required"`
}

type AddAgentInput struct {
	WorkflowID    string   `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	Name          string   `json:"name" jsonschema:"Agent name" validate:"required"`
	Role          string   `json:"role,omitempty" jsonschema:"What the agent does"`
	UserMessage   string   `json:"user_message,omitempty" jsonschema:"User prompt template"`
	SystemMessage string   `json:"system_message,omitempty" jsonschema:"System prompt"`
	Tools         []string `json:"tools,omitempty" jsonschema:"Tool names the agent can call"`
}

type UpdateAgentInput struct {
	WorkflowID    string   `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	AgentID       string   `json:"agent_id" jsonschema:"Agent id" validate:"required"`
	Name          *string  `json:"name,omitempty" validate:"omitnil,min=1"`
	Role          *string  `json:"role,omitempty"`
	UserMessage   *string  `json:"user_message,omitempty"`
	SystemMessage *string  `json:"system_message,omitempty"`
	Tools         []string `json:"tools,omitempty" jsonschema:"Replaces the tool list when present"`
}

type DeleteAgentInput struct {
	WorkflowID string `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	AgentID    string `json:"agent_id" jsonschema:"Agent id" validate:"required"`
}

type AddLogEntryInput struct {
	WorkflowID string `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	Content    string `json:"content" jsonschema:"Log text" validate:"required"`
}

type ImportExportInput struct {
	WorkflowID string `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	Payload    string `json:"payload" jsonschema:"Raw workflow export JSON, stored verbatim" validate:"required"`
}

type ViewExportInput struct {
	WorkflowID string `json:"workflow_id" jsonschema:"Workflow id" validate:"required"`
	EntryID    string `json:"entry_id" jsonschema:"Timeline entry id of the export" validate:"required"`
}

// exportView is the rendering of a stored export entry.
type exportView struct {
	EntryID      string `json:"entryId"`
	Timestamp    string `json:"timestamp"`
	WorkflowName string `json:"workflowName,omitempty"`
	Filename     string `json:"filename"`
	Content      string `json:"content"`
}

// --- Handlers ---

func (t *WorkflowTools) GetWorkflow(_ context.Context, _ *mcp.CallToolRequest, input GetWorkflowInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	wf, ok := t.Store.Workflow(input.ID)
	if !ok {
		return toolError("Workflow %q not found", input.ID), nil, nil
	}
	return toolJSON(wf)
}

func (t *WorkflowTools) CreateWorkflow(_ context.Context, _ *mcp.CallToolRequest, input CreateWorkflowInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	wf, ok := t.Store.CreateWorkflow(input.ChatbotID, models.WorkflowInput{
		Name:        input.Name,
		Description: input.Description,
		URL:         input.URL,
		Emoji:       input.Emoji,
	})
	if !ok {
		return toolError("Chatbot %q not found", input.ChatbotID), nil, nil
	}
	return savedJSON(t.Store, wf)
}

func (t *WorkflowTools) UpdateWorkflow(_ context.Context, _ *mcp.CallToolRequest, input UpdateWorkflowInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	wf, ok := t.Store.UpdateWorkflow(input.ID, models.WorkflowPatch{
		Name:        input.Name,
		Emoji:       input.Emoji,
		Description: input.Description,
		URL:         input.URL,
	})
	if !ok {
		return toolError("Workflow %q not found", input.ID), nil, nil
	}
	return savedJSON(t.Store, wf)
}

func (t *WorkflowTools) DeleteWorkflow(_ context.Context, _ *mcp.CallToolRequest, input DeleteWorkflowInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if !t.Store.DeleteWorkflow(input.ID) {
		return toolError("Workflow %q not found", input.ID), nil, nil
	}
	t.Session.Forget(input.ID)
	return saved(t.Store, toolText(fmt.Sprintf("Workflow %q deleted.", input.ID))), nil, nil
}

func (t *WorkflowTools) requireWorkflow(id string) *mcp.CallToolResult {
	if _, ok := t.Store.Workflow(id); !ok {
		return toolError("Workflow %q not found", id)
	}
	return nil
}

func (t *WorkflowTools) AddAgent(_ context.Context, _ *mcp.CallToolRequest, input AddAgentInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	agent, ok := t.Store.AddAgent(input.WorkflowID, models.AgentInput{
		Name:          input.Name,
		Role:          input.Role,
		UserMessage:   input.UserMessage,
		SystemMessage: input.SystemMessage,
		Tools:         input.Tools,
	})
	if !ok {
		return toolError("Workflow %q not found", input.WorkflowID), nil, nil
	}
	return savedJSON(t.Store, agent)
}

func (t *WorkflowTools) UpdateAgent(_ context.Context, _ *mcp.CallToolRequest, input UpdateAgentInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireWorkflow(input.WorkflowID); res != nil {
		return res, nil, nil
	}
	agent, ok := t.Store.UpdateAgent(input.WorkflowID, input.AgentID, models.AgentPatch{
		Name:          input.Name,
		Role:          input.Role,
		UserMessage:   input.UserMessage,
		SystemMessage: input.SystemMessage,
		Tools:         input.Tools,
	})
	if !ok {
		return toolError("Agent %q not found on workflow %q", input.AgentID, input.WorkflowID), nil, nil
	}
	return savedJSON(t.Store, agent)
}

func (t *WorkflowTools) DeleteAgent(_ context.Context, _ *mcp.CallToolRequest, input DeleteAgentInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireWorkflow(input.WorkflowID); res != nil {
		return res, nil, nil
	}
	if !t.Store.DeleteAgent(input.WorkflowID, input.AgentID) {
		return toolError("Agent %q not found on workflow %q", input.AgentID, input.WorkflowID), nil, nil
	}
	return saved(t.Store, toolText(fmt.Sprintf("Agent %q deleted.", input.AgentID))), nil, nil
}

func (t *WorkflowTools) AddLogEntry(_ context.Context, _ *mcp.CallToolRequest, input AddLogEntryInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if strings.TrimSpace(input.Content) == "" {
		return toolError("Invalid input: content must not be blank"), nil, nil
	}
	entry, ok := t.Store.AddTimelineEntry(input.WorkflowID, models.TimelineLog, input.Content)
	if !ok {
		return toolError("Workflow %q not found", input.WorkflowID), nil, nil
	}
	return savedJSON(t.Store, entry)
}

func (t *WorkflowTools) ImportExport(_ context.Context, _ *mcp.CallToolRequest, input ImportExportInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if !gjson.Valid(input.Payload) {
		return toolError("Invalid JSON payload"), nil, nil
	}
	entry, ok := t.Store.AddTimelineEntry(input.WorkflowID, models.TimelineExport, input.Payload)
	if !ok {
		return toolError("Workflow %q not found", input.WorkflowID), nil, nil
	}
	return savedJSON(t.Store, entry)
}

func (t *WorkflowTools) ViewExport(_ context.Context, _ *mcp.CallToolRequest, input ViewExportInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}
	if res := t.requireWorkflow(input.WorkflowID); res != nil {
		return res, nil, nil
	}
	entry, ok := t.Store.TimelineEntry(input.WorkflowID, input.EntryID)
	if !ok {
		return toolError("Timeline entry %q not found on workflow %q", input.EntryID, input.WorkflowID), nil, nil
	}
	if entry.Type != models.TimelineExport {
		return toolError("Timeline entry %q is a %s entry, not an export", input.EntryID, entry.Type), nil, nil
	}
	return toolJSON(renderExport(entry))
}

// renderExport pretty-prints a stored export. Content that no longer parses
// is shown as stored.
func renderExport(entry models.TimelineEntry) exportView {
	view := exportView{
		EntryID:   entry.ID,
		Timestamp: entry.Timestamp,
		Filename:  exportFilename(entry.Timestamp),
		Content:   entry.Content,
	}
	if !gjson.Valid(entry.Content) {
		return view
	}
	view.Content = string(pretty.Pretty([]byte(entry.Content)))
	if name := gjson.Get(entry.Content, "name"); name.Type == gjson.String {
		view.WorkflowName = name.Str
	}
	return view
}

func exportFilename(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return "n8n-export-" + date + ".json"
}
