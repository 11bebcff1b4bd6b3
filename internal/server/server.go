package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/session"
	"github.com/jmfantin2/botdocs/internal/tools"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// New creates a fully configured MCP server with all tools registered.
func New(store *catalog.Store, sess *session.Session) *mcp.Server {
	if sess == nil {
		sess = session.New()
	}

	ot := &tools.OrganizationTools{Store: store, Session: sess}
	ct := &tools.ChatbotTools{Store: store, Session: sess}
	wt := &tools.WorkflowTools{Store: store, Session: sess}
	kt := &tools.CatalogTools{Store: store, Session: sess}
	nt := &tools.NavigationTools{Store: store, Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "botdocs",
		Version: Version,
	}, nil)

	// Organizations
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_organizations",
		Description: "List all organizations in creation order",
	}, ot.ListOrganizations)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_organization",
		Description: "Get an organization together with its chatbots",
	}, ot.GetOrganization)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_organization",
		Description: "Create a new organization",
	}, ot.CreateOrganization)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_organization",
		Description: "Update an organization's name or description",
	}, ot.UpdateOrganization)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_organization",
		Description: "Delete an organization, its chatbots and their workflows (irreversible)",
	}, ot.DeleteOrganization)

	// Chatbots
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_chatbot",
		Description: "Get a chatbot with its credentials, links and workflows",
	}, ct.GetChatbot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_chatbot",
		Description: "Create a chatbot under an existing organization",
	}, ct.CreateChatbot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_chatbot",
		Description: "Update a chatbot's name, description, tester data or accent color",
	}, ct.UpdateChatbot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_chatbot",
		Description: "Delete a chatbot and its workflows (irreversible)",
	}, ct.DeleteChatbot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_tester_data",
		Description: "Replace a chatbot's free-form tester notes",
	}, ct.SetTesterData)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_credential",
		Description: "Attach a credential (account used by the chatbot) to a chatbot",
	}, ct.AddCredential)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_credential",
		Description: "Update fields of a chatbot credential",
	}, ct.UpdateCredential)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_credential",
		Description: "Remove a credential from a chatbot",
	}, ct.DeleteCredential)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_link",
		Description: "Attach a labelled URL to a chatbot",
	}, ct.AddLink)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_link",
		Description: "Update fields of a chatbot link",
	}, ct.UpdateLink)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_link",
		Description: "Remove a link from a chatbot",
	}, ct.DeleteLink)

	// Workflows
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_workflow",
		Description: "Get a workflow with its agents and timeline (newest first)",
	}, wt.GetWorkflow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_workflow",
		Description: "Create a workflow under an existing chatbot",
	}, wt.CreateWorkflow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_workflow",
		Description: "Update a workflow's name, emoji, description or URL",
	}, wt.UpdateWorkflow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_workflow",
		Description: "Delete a workflow (irreversible)",
	}, wt.DeleteWorkflow)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_agent",
		Description: "Document a new agent inside a workflow",
	}, wt.AddAgent)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_agent",
		Description: "Update fields of a workflow agent",
	}, wt.UpdateAgent)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_agent",
		Description: "Remove an agent from a workflow",
	}, wt.DeleteAgent)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_log_entry",
		Description: "Prepend a dated log note to a workflow's timeline",
	}, wt.AddLogEntry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "import_export",
		Description: "Store a workflow export JSON verbatim on the workflow's timeline",
	}, wt.ImportExport)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "view_export",
		Description: "Show a stored export pretty-printed with its suggested download filename",
	}, wt.ViewExport)

	// Whole catalog
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_catalog",
		Description: "Case-insensitive search across organizations, chatbots and workflows",
	}, kt.SearchCatalog)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_catalog",
		Description: "Read the organization > chatbot > workflow hierarchy",
	}, kt.ReadCatalog)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_stats",
		Description: "Count organizations, chatbots and workflows",
	}, kt.GetStats)

	// Navigation
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "navigate",
		Description: "Set the current view (home, org, chatbot or workflow)",
	}, nt.Navigate)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_navigation",
		Description: "Get the current view, search text and expanded tree nodes",
	}, nt.GetNavigation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "toggle_expanded",
		Description: "Expand or collapse an organization or chatbot in the tree",
	}, nt.ToggleExpanded)

	return srv
}
