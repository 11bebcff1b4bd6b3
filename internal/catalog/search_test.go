package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfantin2/botdocs/internal/models"
)

func TestSearchAll(t *testing.T) {
	s, _ := newTestStore(t)
	org := s.CreateOrganization("Acme Corp", "")
	other := s.CreateOrganization("Globex", "")
	bot, _ := s.CreateChatbot(org.ID, "Support", "handles Acme tickets")
	s.CreateChatbot(other.ID, "Sales", "")

	res := s.SearchAll("acme")
	require.Len(t, res.Organizations, 1)
	assert.Equal(t, org.ID, res.Organizations[0].ID)
	require.Len(t, res.Chatbots, 1)
	assert.Equal(t, bot.ID, res.Chatbots[0].ID)
	assert.Empty(t, res.Workflows)

	none := s.SearchAll("nonexistent")
	assert.True(t, none.Empty())
	assert.NotNil(t, none.Organizations)
	assert.NotNil(t, none.Chatbots)
	assert.NotNil(t, none.Workflows)
}

func TestSearchFields(t *testing.T) {
	s, _ := newTestStore(t)
	org := s.CreateOrganization("Org", "")
	bot, _ := s.CreateChatbot(org.ID, "bot", "")
	s.AddCredential(bot.ID, models.CredentialInput{Label: "main line", Service: "Quacker.io", Identifier: "secret-identifier"})
	s.UpdateChatbot(bot.ID, models.ChatbotPatch{TesterData: ptr("tester phone 5511")})
	wf, _ := s.CreateWorkflow(bot.ID, models.WorkflowInput{Name: "wf", URL: "https://n8n.example.com/hidden"})
	s.AddAgent(wf.ID, models.AgentInput{Name: "Router", Role: "Dispatcher", SystemMessage: "never searched"})

	cases := []struct {
		query             string
		orgs, bots, flows int
	}{
		{"quacker", 0, 1, 0},
		{"MAIN LINE", 0, 1, 0},
		{"tester phone", 0, 1, 0},
		{"secret-identifier", 0, 0, 0},
		{"dispatcher", 0, 0, 1},
		{"router", 0, 0, 1},
		{"never searched", 0, 0, 0},
		{"hidden", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			res := s.SearchAll(tc.query)
			assert.Len(t, res.Organizations, tc.orgs)
			assert.Len(t, res.Chatbots, tc.bots)
			assert.Len(t, res.Workflows, tc.flows)
		})
	}
}

func TestSearchFoldsUnicodeCase(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateOrganization("STRASSE Logística", "")
	assert.Len(t, s.SearchAll("logística").Organizations, 1)
	assert.Len(t, s.SearchAll("LOGÍSTICA").Organizations, 1)
	assert.Len(t, s.SearchAll("strasse").Organizations, 1)
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	s, _ := newTestStore(t)
	org := s.CreateOrganization("Acme", "")
	bot, _ := s.CreateChatbot(org.ID, "bot", "")
	s.CreateWorkflow(bot.ID, models.WorkflowInput{Name: "wf"})

	res := s.SearchAll("")
	assert.Len(t, res.Organizations, 1)
	assert.Len(t, res.Chatbots, 1)
	assert.Len(t, res.Workflows, 1)
}

func TestTreeAndStats(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateOrganization("A", "")
	b := s.CreateOrganization("B", "")
	bot, _ := s.CreateChatbot(a.ID, "bot", "")
	wf, _ := s.CreateWorkflow(bot.ID, models.WorkflowInput{Name: "wf", Emoji: "⚙️"})

	tree := s.Tree()
	require.Len(t, tree, 2)
	assert.Equal(t, a.ID, tree[0].ID)
	require.Len(t, tree[0].Chatbots, 1)
	assert.Equal(t, bot.ID, tree[0].Chatbots[0].ID)
	assert.Equal(t, []models.WorkflowNode{{ID: wf.ID, Name: "wf", Emoji: "⚙️"}}, tree[0].Chatbots[0].Workflows)
	assert.Equal(t, b.ID, tree[1].ID)
	assert.NotNil(t, tree[1].Chatbots)

	assert.Equal(t, models.Stats{Organizations: 2, Chatbots: 1, Workflows: 1}, s.Stats())
}
