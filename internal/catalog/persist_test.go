package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/storage"
)

func populate(t *testing.T, s *Store) {
	t.Helper()
	org := s.CreateOrganization("Acme Corp", "customer support")
	bot, ok := s.CreateChatbot(org.ID, "Support", "handles Acme tickets")
	require.True(t, ok)
	s.AddCredential(bot.ID, models.CredentialInput{Label: "WhatsApp", Service: "Z-API", Identifier: "+5511"})
	s.AddLink(bot.ID, models.LinkInput{Label: "panel", URL: "https://panel.example.com"})
	s.UpdateChatbot(bot.ID, models.ChatbotPatch{TesterData: ptr("tester: +5511"), AccentColor: ptr("#ff6b2c")})
	wf, ok := s.CreateWorkflow(bot.ID, models.WorkflowInput{Name: "Triage", URL: "https://n8n.example.com/w/1", Emoji: "📨"})
	require.True(t, ok)
	s.AddAgent(wf.ID, models.AgentInput{Name: "router", Role: "classifier", Tools: []string{"http"}})
	s.AddTimelineEntry(wf.ID, models.TimelineLog, "deployed")
	s.AddTimelineEntry(wf.ID, models.TimelineExport, `{"name":"Triage","nodes":[]}`)
	s.CreateOrganization("Empty Org", "")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := New(blobs, nil)
	populate(t, s)
	require.NoError(t, s.Save(context.Background()))
	want := s.Snapshot()

	fresh := New(blobs, nil)
	require.NoError(t, fresh.Load(context.Background()))
	assert.Equal(t, want, fresh.Snapshot())
	assert.Equal(t, s.Tree(), fresh.Tree())
}

func TestRoundTripThroughSQLite(t *testing.T) {
	blobs, err := storage.OpenSQLite(t.TempDir())
	require.NoError(t, err)
	defer blobs.Close()

	s := New(blobs, nil)
	populate(t, s)
	want := s.Snapshot()

	fresh := New(blobs, nil)
	require.NoError(t, fresh.Load(context.Background()))
	assert.Equal(t, want, fresh.Snapshot())
}

func TestLoadMissingBlobIsEmpty(t *testing.T) {
	s := New(storage.NewMemoryStore(), nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, models.Stats{}, s.Stats())
}

func TestLoadCorruptBlobResetsToEmpty(t *testing.T) {
	blobs := storage.NewMemoryStore()
	require.NoError(t, blobs.Put(context.Background(), DefaultKey, []byte("{not json")))

	s := New(blobs, nil)
	s.CreateOrganization("will be dropped", "")
	// The create above overwrote the corrupt blob; put it back.
	require.NoError(t, blobs.Put(context.Background(), DefaultKey, []byte("{not json")))

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog")
	assert.Equal(t, models.Stats{}, s.Stats())
}

func TestLoadToleratesMissingCollections(t *testing.T) {
	blobs := storage.NewMemoryStore()
	blob := `{"organizations":[{"id":"o1","name":"Acme","description":"","createdAt":"2025-01-01T00:00:00.000Z","updatedAt":"2025-01-01T00:00:00.000Z"}],
	          "chatbots":[{"id":"c1","orgId":"o1","name":"bot","description":"","credentials":null,"testerData":"","createdAt":"x","updatedAt":"x"}]}`
	require.NoError(t, blobs.Put(context.Background(), DefaultKey, []byte(blob)))

	s := New(blobs, nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, models.Stats{Organizations: 1, Chatbots: 1}, s.Stats())

	bot, ok := s.Chatbot("c1")
	require.True(t, ok)
	assert.NotNil(t, bot.Credentials)
	assert.NotNil(t, bot.Links)
}

func TestPersistedLayout(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := New(blobs, nil, WithKey("custom"))
	org := s.CreateOrganization("Acme", "")
	s.CreateChatbot(org.ID, "bot", "")

	data, err := blobs.Get(context.Background(), "custom")
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "organizations")
	assert.Contains(t, raw, "chatbots")
	assert.Contains(t, raw, "workflows")
	assert.JSONEq(t, `[]`, string(raw["workflows"]))

	var chatbots []map[string]any
	require.NoError(t, json.Unmarshal(raw["chatbots"], &chatbots))
	require.Len(t, chatbots, 1)
	assert.Equal(t, org.ID, chatbots[0]["orgId"])
	assert.Equal(t, []any{}, chatbots[0]["credentials"])
}
