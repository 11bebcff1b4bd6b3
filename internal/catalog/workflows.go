package catalog

import (
	"slices"

	"github.com/jmfantin2/botdocs/internal/models"
)

// CreateWorkflow adds a workflow under chatbotID. It returns false, and
// creates nothing, when the chatbot does not exist.
func (s *Store) CreateWorkflow(chatbotID string, in models.WorkflowInput) (models.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chatbots.Get(chatbotID); !ok {
		return models.Workflow{}, false
	}

	ts := s.stamp()
	w := &models.Workflow{
		ID:          s.newID(),
		ChatbotID:   chatbotID,
		Name:        in.Name,
		Emoji:       in.Emoji,
		Description: in.Description,
		URL:         in.URL,
		Agents:      []models.Agent{},
		Timeline:    []models.TimelineEntry{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.workflows.Set(w.ID, w)
	s.persistLocked()
	return cloneWorkflow(w), true
}

// UpdateWorkflow merges patch into the workflow.
func (s *Store) UpdateWorkflow(id string, patch models.WorkflowPatch) (models.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows.Get(id)
	if !ok {
		return models.Workflow{}, false
	}
	setString(&w.Name, patch.Name)
	setString(&w.Emoji, patch.Emoji)
	setString(&w.Description, patch.Description)
	setString(&w.URL, patch.URL)
	w.UpdatedAt = s.stamp()
	s.persistLocked()
	return cloneWorkflow(w), true
}

// DeleteWorkflow removes the workflow. Agents and timeline go with it.
func (s *Store) DeleteWorkflow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows.Delete(id); !ok {
		return false
	}
	s.persistLocked()
	return true
}

// Workflow returns the workflow with id.
func (s *Store) Workflow(id string) (models.Workflow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workflows.Get(id)
	if !ok {
		return models.Workflow{}, false
	}
	return cloneWorkflow(w), true
}

// Workflows returns every workflow in insertion order.
func (s *Store) Workflows() []models.Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Workflow, 0, s.workflows.Len())
	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		out = append(out, cloneWorkflow(p.Value))
	}
	return out
}

// WorkflowsByChatbot returns the chatbot's workflows in insertion order.
func (s *Store) WorkflowsByChatbot(chatbotID string) []models.Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Workflow{}
	for p := s.workflows.Oldest(); p != nil; p = p.Next() {
		if p.Value.ChatbotID == chatbotID {
			out = append(out, cloneWorkflow(p.Value))
		}
	}
	return out
}

// AddAgent appends an agent to the workflow.
func (s *Store) AddAgent(workflowID string, in models.AgentInput) (models.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows.Get(workflowID)
	if !ok {
		return models.Agent{}, false
	}
	agent := models.Agent{
		ID:            s.newID(),
		Name:          in.Name,
		Role:          in.Role,
		UserMessage:   in.UserMessage,
		SystemMessage: in.SystemMessage,
		Tools:         append([]string{}, in.Tools...),
	}
	w.Agents = append(w.Agents, agent)
	w.UpdatedAt = s.stamp()
	s.persistLocked()
	return cloneAgent(agent), true
}

// UpdateAgent merges patch into one agent. A non-nil Tools replaces the
// whole list. Same no-op rules as UpdateCredential.
func (s *Store) UpdateAgent(workflowID, agentID string, patch models.AgentPatch) (models.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows.Get(workflowID)
	if !ok {
		return models.Agent{}, false
	}
	i := slices.IndexFunc(w.Agents, func(x models.Agent) bool { return x.ID == agentID })
	if i < 0 {
		return models.Agent{}, false
	}
	agent := &w.Agents[i]
	setString(&agent.Name, patch.Name)
	setString(&agent.Role, patch.Role)
	setString(&agent.UserMessage, patch.UserMessage)
	setString(&agent.SystemMessage, patch.SystemMessage)
	if patch.Tools != nil {
		agent.Tools = append([]string{}, patch.Tools...)
	}
	w.UpdatedAt = s.stamp()
	s.persistLocked()
	return cloneAgent(*agent), true
}

// DeleteAgent removes one agent from the workflow.
func (s *Store) DeleteAgent(workflowID, agentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows.Get(workflowID)
	if !ok {
		return false
	}
	i := slices.IndexFunc(w.Agents, func(x models.Agent) bool { return x.ID == agentID })
	if i < 0 {
		return false
	}
	w.Agents = slices.Delete(w.Agents, i, i+1)
	w.UpdatedAt = s.stamp()
	s.persistLocked()
	return true
}

// AddTimelineEntry prepends an entry to the workflow's timeline. The id and
// timestamp are assigned here. Export content is stored verbatim.
func (s *Store) AddTimelineEntry(workflowID string, entryType models.TimelineEntryType, content string) (models.TimelineEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows.Get(workflowID)
	if !ok {
		return models.TimelineEntry{}, false
	}
	ts := s.stamp()
	entry := models.TimelineEntry{
		ID:        s.newID(),
		Type:      entryType,
		Timestamp: ts,
		Content:   content,
	}
	w.Timeline = slices.Insert(w.Timeline, 0, entry)
	w.UpdatedAt = ts
	s.persistLocked()
	return entry, true
}

// TimelineEntry returns one entry from the workflow's timeline.
func (s *Store) TimelineEntry(workflowID, entryID string) (models.TimelineEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workflows.Get(workflowID)
	if !ok {
		return models.TimelineEntry{}, false
	}
	i := slices.IndexFunc(w.Timeline, func(x models.TimelineEntry) bool { return x.ID == entryID })
	if i < 0 {
		return models.TimelineEntry{}, false
	}
	return w.Timeline[i], true
}
