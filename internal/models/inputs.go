package models

// Inputs carry caller-supplied fields for new embedded records; ids and
// timestamps are always assigned by the store.

type CredentialInput struct {
	Label      string
	Service    string
	Identifier string
	Notes      string
}

type LinkInput struct {
	Label string
	URL   string
	Icon  string
}

type AgentInput struct {
	Name          string
	Role          string
	UserMessage   string
	SystemMessage string
	Tools         []string
}

type WorkflowInput struct {
	Name        string
	Description string
	URL         string
	Emoji       string
}

// Patches use nil to mean "leave unchanged".

type OrganizationPatch struct {
	Name        *string
	Description *string
}

type ChatbotPatch struct {
	Name        *string
	Description *string
	TesterData  *string
	AccentColor *string
}

type WorkflowPatch struct {
	Name        *string
	Emoji       *string
	Description *string
	URL         *string
}

type CredentialPatch struct {
	Label      *string
	Service    *string
	Identifier *string
	Notes      *string
}

type LinkPatch struct {
	Label *string
	URL   *string
	Icon  *string
}

type AgentPatch struct {
	Name          *string
	Role          *string
	UserMessage   *string
	SystemMessage *string
	Tools         []string
}
