package catalog

import (
	"github.com/jmfantin2/botdocs/internal/models"
)

// CreateOrganization adds an organization. Names are not validated here.
func (s *Store) CreateOrganization(name, description string) models.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.stamp()
	org := &models.Organization{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.orgs.Set(org.ID, org)
	s.persistLocked()
	return *org
}

// UpdateOrganization merges patch into the organization.
func (s *Store) UpdateOrganization(id string, patch models.OrganizationPatch) (models.Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs.Get(id)
	if !ok {
		return models.Organization{}, false
	}
	setString(&org.Name, patch.Name)
	setString(&org.Description, patch.Description)
	org.UpdatedAt = s.stamp()
	s.persistLocked()
	return *org, true
}

// DeleteOrganization removes the organization, its chatbots, and their
// workflows. The returned Cascade lists the dependents that went with it.
func (s *Store) DeleteOrganization(id string) (Cascade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs.Delete(id); !ok {
		return Cascade{}, false
	}

	var removed Cascade
	for p := s.chatbots.Oldest(); p != nil; p = p.Next() {
		if p.Value.OrgID == id {
			removed.Chatbots = append(removed.Chatbots, p.Key)
		}
	}
	for _, cid := range removed.Chatbots {
		wids, _ := s.deleteChatbotLocked(cid)
		removed.Workflows = append(removed.Workflows, wids...)
	}

	s.persistLocked()
	return removed, true
}

// Organization returns the organization with id.
func (s *Store) Organization(id string) (models.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs.Get(id)
	if !ok {
		return models.Organization{}, false
	}
	return *org, true
}

// Organizations returns every organization in insertion order.
func (s *Store) Organizations() []models.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Organization, 0, s.orgs.Len())
	for p := s.orgs.Oldest(); p != nil; p = p.Next() {
		out = append(out, *p.Value)
	}
	return out
}
