package session

import (
	"slices"
	"sync"
)

// View names the screen a client is looking at.
type View string

const (
	ViewHome     View = "home"
	ViewOrg      View = "org"
	ViewChatbot  View = "chatbot"
	ViewWorkflow View = "workflow"
)

// Navigation is the current navigation target.
type Navigation struct {
	View       View   `json:"view"`
	OrgID      string `json:"orgId,omitempty"`
	ChatbotID  string `json:"chatbotId,omitempty"`
	WorkflowID string `json:"workflowId,omitempty"`
}

// State is a snapshot of everything a Session tracks.
type State struct {
	Navigation       Navigation `json:"navigation"`
	SearchQuery      string     `json:"searchQuery"`
	ExpandedOrgs     []string   `json:"expandedOrgs"`
	ExpandedChatbots []string   `json:"expandedChatbots"`
}

// Session holds client-facing view state. None of it is persisted.
type Session struct {
	mu               sync.Mutex
	nav              Navigation
	searchQuery      string
	expandedOrgs     map[string]bool
	expandedChatbots map[string]bool
}

// New creates a session on the home view with nothing expanded.
func New() *Session {
	return &Session{
		nav:              Navigation{View: ViewHome},
		expandedOrgs:     make(map[string]bool),
		expandedChatbots: make(map[string]bool),
	}
}

// Navigate replaces the navigation target.
func (s *Session) Navigate(nav Navigation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nav.View == "" {
		nav.View = ViewHome
	}
	s.nav = nav
}

// Current returns the navigation target.
func (s *Session) Current() Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// SetSearchQuery stores the raw search box text.
func (s *Session) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// SearchQuery returns the last stored search text.
func (s *Session) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// ToggleOrgExpanded flips an organization's tree node and returns the new state.
func (s *Session) ToggleOrgExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toggle(s.expandedOrgs, id)
}

// ToggleChatbotExpanded flips a chatbot's tree node and returns the new state.
func (s *Session) ToggleChatbotExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toggle(s.expandedChatbots, id)
}

func toggle(set map[string]bool, id string) bool {
	if set[id] {
		delete(set, id)
		return false
	}
	set[id] = true
	return true
}

// ExpandedOrgs returns expanded organization ids, sorted.
func (s *Session) ExpandedOrgs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.expandedOrgs)
}

// ExpandedChatbots returns expanded chatbot ids, sorted.
func (s *Session) ExpandedChatbots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.expandedChatbots)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// State returns a copy of the whole session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Navigation:       s.nav,
		SearchQuery:      s.searchQuery,
		ExpandedOrgs:     sortedKeys(s.expandedOrgs),
		ExpandedChatbots: sortedKeys(s.expandedChatbots),
	}
}

// Forget drops deleted ids from the expansion sets and sends navigation
// home if it pointed at one of them.
func (s *Session) Forget(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.expandedOrgs, id)
		delete(s.expandedChatbots, id)
		if id != "" && (s.nav.OrgID == id || s.nav.ChatbotID == id || s.nav.WorkflowID == id) {
			s.nav = Navigation{View: ViewHome}
		}
	}
}
