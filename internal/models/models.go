package models

// Organization is the top-level grouping of chatbots.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Credential is an account a chatbot depends on (e.g. a messaging provider login).
type Credential struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Service    string `json:"service"`
	Identifier string `json:"identifier"`
	Notes      string `json:"notes,omitempty"`
}

// Link is a labelled URL attached to a chatbot.
type Link struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// Chatbot is a conversational-bot project owned by an organization.
type Chatbot struct {
	ID          string       `json:"id"`
	OrgID       string       `json:"orgId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Credentials []Credential `json:"credentials"`
	Links       []Link       `json:"links"`
	TesterData  string       `json:"testerData"`
	AccentColor string       `json:"accentColor,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// Agent documents one role/prompt unit inside a workflow.
type Agent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	UserMessage   string   `json:"userMessage"`
	SystemMessage string   `json:"systemMessage"`
	Tools         []string `json:"tools"`
}

// TimelineEntryType distinguishes free-text notes from attached exports.
type TimelineEntryType string

const (
	TimelineLog    TimelineEntryType = "log"
	TimelineExport TimelineEntryType = "export"
)

// TimelineEntry is a dated note or export in a workflow's history.
type TimelineEntry struct {
	ID        string            `json:"id"`
	Type      TimelineEntryType `json:"type"`
	Timestamp string            `json:"timestamp"`
	Content   string            `json:"content"`
}

// Workflow is an automation under a chatbot. Timeline is newest-first.
type Workflow struct {
	ID          string          `json:"id"`
	ChatbotID   string          `json:"chatbotId"`
	Name        string          `json:"name"`
	Emoji       string          `json:"emoji,omitempty"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Agents      []Agent         `json:"agents"`
	Timeline    []TimelineEntry `json:"timeline"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// Snapshot is the persisted layout of the whole catalog.
type Snapshot struct {
	Organizations []Organization `json:"organizations"`
	Chatbots      []Chatbot      `json:"chatbots"`
	Workflows     []Workflow     `json:"workflows"`
}

// SearchResults holds the three independently filtered match lists.
type SearchResults struct {
	Organizations []Organization `json:"organizations"`
	Chatbots      []Chatbot      `json:"chatbots"`
	Workflows     []Workflow     `json:"workflows"`
}

// Empty reports whether nothing matched.
func (r SearchResults) Empty() bool {
	return len(r.Organizations) == 0 && len(r.Chatbots) == 0 && len(r.Workflows) == 0
}

// Stats are the catalog totals.
type Stats struct {
	Organizations int `json:"organizations"`
	Chatbots      int `json:"chatbots"`
	Workflows     int `json:"workflows"`
}

// OrgNode, ChatbotNode and WorkflowNode form the catalog hierarchy.
type OrgNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Chatbots []ChatbotNode `json:"chatbots"`
}

type ChatbotNode struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Workflows []WorkflowNode `json:"workflows"`
}

type WorkflowNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}
