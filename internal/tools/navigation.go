package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/session"
)

// NavigationTools exposes the per-server view state.
type NavigationTools struct {
	Store   *catalog.Store
	Session *session.Session
}

type NavigateInput struct {
	View string `json:"view" jsonschema:"One of home, org, chatbot, workflow" validate:"required,oneof=home org chatbot workflow"`
	ID   string `json:"id,omitempty" jsonschema:"Id of the organization, chatbot or workflow to open" validate:"required_unless=View home"`
}

type ToggleExpandedInput struct {
	Kind string `json:"kind" jsonschema:"org or chatbot" validate:"required,oneof=org chatbot"`
	ID   string `json:"id" jsonschema:"Id of the tree node" validate:"required"`
}

type expansion struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
}

// Navigate resolves the target's ancestors so the navigation is always
// fully populated.
func (t *NavigationTools) Navigate(_ context.Context, _ *mcp.CallToolRequest, input NavigateInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	nav := session.Navigation{View: session.View(input.View)}
	switch nav.View {
	case session.ViewOrg:
		org, ok := t.Store.Organization(input.ID)
		if !ok {
			return toolError("Organization %q not found", input.ID), nil, nil
		}
		nav.OrgID = org.ID
	case session.ViewChatbot:
		bot, ok := t.Store.Chatbot(input.ID)
		if !ok {
			return toolError("Chatbot %q not found", input.ID), nil, nil
		}
		nav.OrgID, nav.ChatbotID = bot.OrgID, bot.ID
	case session.ViewWorkflow:
		wf, ok := t.Store.Workflow(input.ID)
		if !ok {
			return toolError("Workflow %q not found", input.ID), nil, nil
		}
		nav.ChatbotID, nav.WorkflowID = wf.ChatbotID, wf.ID
		if bot, ok := t.Store.Chatbot(wf.ChatbotID); ok {
			nav.OrgID = bot.OrgID
		}
	}

	t.Session.Navigate(nav)
	return toolJSON(nav)
}

func (t *NavigationTools) GetNavigation(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Session.State())
}

func (t *NavigationTools) ToggleExpanded(_ context.Context, _ *mcp.CallToolRequest, input ToggleExpandedInput) (*mcp.CallToolResult, any, error) {
	if res := checkInput(input); res != nil {
		return res, nil, nil
	}

	var expanded bool
	switch input.Kind {
	case "org":
		if _, ok := t.Store.Organization(input.ID); !ok {
			return toolError("Organization %q not found", input.ID), nil, nil
		}
		expanded = t.Session.ToggleOrgExpanded(input.ID)
	case "chatbot":
		if _, ok := t.Store.Chatbot(input.ID); !ok {
			return toolError("Chatbot %q not found", input.ID), nil, nil
		}
		expanded = t.Session.ToggleChatbotExpanded(input.ID)
	}
	return toolJSON(expansion{Kind: input.Kind, ID: input.ID, Expanded: expanded})
}
