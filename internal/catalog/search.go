package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jmfantin2/botdocs/internal/models"
)

// SearchAll returns the organizations, chatbots, and workflows whose text
// fields contain query, ignoring case. Fields searched:
//
//   - organization: name, description
//   - chatbot: name, description, tester data, credential label and service
//   - workflow: name, description, agent name and role
//
// An empty query matches everything; callers that treat blank input as "no
// search" must check before calling.
func (s *Store) SearchAll(query string) models.SearchResults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fold := cases.Fold()
	q := fold.String(query)
	contains := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(fold.String(f), q) {
				return true
			}
		}
		return false
	}

	res := models.SearchResults{
		Organizations: []models.Organization{},
		Chatbots:      []models.Chatbot{},
		Workflows:     []models.Workflow{},
	}

	for p := s.orgs.Oldest(); p != nil; p = p.Next() {
		o := p.Value
		if contains(o.Name, o.Description) {
			res.Organizations = append(res.Organizations, *o)
		}
	}

	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		c := p.Value
		match := contains(c.Name, c.Description, c.TesterData)
		for i := 0; !match && i < len(c.Credentials); i++ {
			match = contains(c.Credentials[i].Label, c.Credentials[i].Service)
		}
		if match {
			res.Chatbots = append(res.Chatbots, cloneChatbot(c))
		}
	}

	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		w := p.Value
		match := contains(w.Name, w.Description)
		for i := 0; !match && i < len(w.Agents); i++ {
			match = contains(w.Agents[i].Name, w.Agents[i].Role)
		}
		if match {
			res.Workflows = append(res.Workflows, cloneWorkflow(w))
		}
	}

	return res
}

// Tree returns the organization → chatbot → workflow hierarchy in
// insertion order.
func (s *Store) Tree() []models.OrgNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byChatbot := make(map[string][]models.WorkflowNode)
	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		w := p.Value
		byChatbot[w.ChatbotID] = append(byChatbot[w.ChatbotID], models.WorkflowNode{
			ID: w.ID, Name: w.Name, Emoji: w.Emoji,
		})
	}

	byOrg := make(map[string][]models.ChatbotNode)
	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		c := p.Value
		wfs := byChatbot[c.ID]
		if wfs == nil {
			wfs = []models.WorkflowNode{}
		}
		byOrg[c.OrgID] = append(byOrg[c.OrgID], models.ChatbotNode{
			ID: c.ID, Name: c.Name, Workflows: wfs,
		})
	}

	tree := make([]models.OrgNode, 0, s.orgs.Len())
	for p := s.orgs.Oldest(); p != nil; p = p.Next() {
		bots := byOrg[p.Key]
		if bots == nil {
			bots = []models.ChatbotNode{}
		}
		tree = append(tree, models.OrgNode{ID: p.Key, Name: p.Value.Name, Chatbots: bots})
	}
	return tree
}

// Stats returns collection sizes.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Stats{
		Organizations: s.orgs.Len(),
		Chatbots:      s.chatbots.Len(),
		Workflows:     s.workflows.Len(),
	}
}
