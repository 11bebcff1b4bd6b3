package catalog

import (
	"slices"

	"github.com/jmfantin2/botdocs/internal/models"
)

// CreateChatbot adds a chatbot under orgID. It returns false, and creates
// nothing, when the organization does not exist.
func (s *Store) CreateChatbot(orgID, name, description string) (models.Chatbot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs.Get(orgID); !ok {
		return models.Chatbot{}, false
	}

	ts := s.stamp()
	c := &models.Chatbot{
		ID:          s.newID(),
		OrgID:       orgID,
		Name:        name,
		Description: description,
		Credentials: []models.Credential{},
		Links:       []models.Link{},
		TesterData:  "",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.chatbots.Set(c.ID, c)
	s.persistLocked()
	return cloneChatbot(c), true
}

// UpdateChatbot merges patch into the chatbot.
func (s *Store) UpdateChatbot(id string, patch models.ChatbotPatch) (models.Chatbot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(id)
	if !ok {
		return models.Chatbot{}, false
	}
	setString(&c.Name, patch.Name)
	setString(&c.Description, patch.Description)
	setString(&c.TesterData, patch.TesterData)
	setString(&c.AccentColor, patch.AccentColor)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return cloneChatbot(c), true
}

// Cascade lists the ids removed along with a deleted owner.
type Cascade struct {
	Chatbots  []string
	Workflows []string
}

// IDs returns every removed id, chatbots first.
func (c Cascade) IDs() []string {
	ids := make([]string, 0, len(c.Chatbots)+len(c.Workflows))
	ids = append(ids, c.Chatbots...)
	return append(ids, c.Workflows...)
}

// DeleteChatbot removes the chatbot and its workflows. The returned Cascade
// holds the removed workflow ids.
func (s *Store) DeleteChatbot(id string) (Cascade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wids, ok := s.deleteChatbotLocked(id)
	if !ok {
		return Cascade{}, false
	}
	s.persistLocked()
	return Cascade{Workflows: wids}, true
}

func (s *Store) deleteChatbotLocked(id string) ([]string, bool) {
	if _, ok := s.chatbots.Delete(id); !ok {
		return nil, false
	}
	var workflowIDs []string
	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		if p.Value.ChatbotID == id {
			workflowIDs = append(workflowIDs, p.Key)
		}
	}
	for _, wid := range workflowIDs {
		s.workflows.Delete(wid)
	}
	return workflowIDs, true
}

// Chatbot returns the chatbot with id.
func (s *Store) Chatbot(id string) (models.Chatbot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chatbots.Get(id)
	if !ok {
		return models.Chatbot{}, false
	}
	return cloneChatbot(c), true
}

// Chatbots returns every chatbot in insertion order.
func (s *Store) Chatbots() []models.Chatbot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Chatbot, 0, s.chatbots.Len())
	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		out = append(out, cloneChatbot(p.Value))
	}
	return out
}

// ChatbotsByOrg returns the organization's chatbots in insertion order.
func (s *Store) ChatbotsByOrg(orgID string) []models.Chatbot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Chatbot{}
	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		if p.Value.OrgID == orgID {
			out = append(out, cloneChatbot(p.Value))
		}
	}
	return out
}

// AddCredential appends a credential to the chatbot.
func (s *Store) AddCredential(chatbotID string, in models.CredentialInput) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return models.Credential{}, false
	}
	cred := models.Credential{
		ID:         s.newID(),
		Label:      in.Label,
		Service:    in.Service,
		Identifier: in.Identifier,
		Notes:      in.Notes,
	}
	c.Credentials = append(c.Credentials, cred)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return cred, true
}

// UpdateCredential merges patch into one credential. A missing chatbot or
// credential leaves everything, including UpdatedAt, untouched.
func (s *Store) UpdateCredential(chatbotID, credentialID string, patch models.CredentialPatch) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return models.Credential{}, false
	}
	i := slices.IndexFunc(c.Credentials, func(x models.Credential) bool { return x.ID == credentialID })
	if i < 0 {
		return models.Credential{}, false
	}
	cred := &c.Credentials[i]
	setString(&cred.Label, patch.Label)
	setString(&cred.Service, patch.Service)
	setString(&cred.Identifier, patch.Identifier)
	setString(&cred.Notes, patch.Notes)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return *cred, true
}

// DeleteCredential removes one credential from the chatbot.
func (s *Store) DeleteCredential(chatbotID, credentialID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return false
	}
	i := slices.IndexFunc(c.Credentials, func(x models.Credential) bool { return x.ID == credentialID })
	if i < 0 {
		return false
	}
	c.Credentials = slices.Delete(c.Credentials, i, i+1)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return true
}

// AddLink appends a link to the chatbot.
func (s *Store) AddLink(chatbotID string, in models.LinkInput) (models.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return models.Link{}, false
	}
	link := models.Link{
		ID:    s.newID(),
		Label: in.Label,
		URL:   in.URL,
		Icon:  in.Icon,
	}
	c.Links = append(c.Links, link)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return link, true
}

// UpdateLink merges patch into one link. Same no-op rules as UpdateCredential.
func (s *Store) UpdateLink(chatbotID, linkID string, patch models.LinkPatch) (models.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return models.Link{}, false
	}
	i := slices.IndexFunc(c.Links, func(x models.Link) bool { return x.ID == linkID })
	if i < 0 {
		return models.Link{}, false
	}
	link := &c.Links[i]
	setString(&link.Label, patch.Label)
	setString(&link.URL, patch.URL)
	setString(&link.Icon, patch.Icon)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return *link, true
}

// DeleteLink removes one link from the chatbot.
func (s *Store) DeleteLink(chatbotID, linkID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chatbots.Get(chatbotID)
	if !ok {
		return false
	}
	i := slices.IndexFunc(c.Links, func(x models.Link) bool { return x.ID == linkID })
	if i < 0 {
		return false
	}
	c.Links = slices.Delete(c.Links, i, i+1)
	c.UpdatedAt = s.stamp()
	s.persistLocked()
	return true
}
