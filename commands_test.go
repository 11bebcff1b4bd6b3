package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/storage"
)

// runCLI executes the root command with args and returns what it wrote to
// stdout. cfg is restored afterwards since flags write straight into it.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTreeCommandEmptyCatalog(t *testing.T) {
	out, err := runCLI(t, "--backend", "memory", "tree")
	if err != nil {
		t.Fatal(err)
	}
	if out != "(empty catalog)\n" {
		t.Errorf("tree output = %q", out)
	}
}

func TestSearchCommandRejectsBlankQuery(t *testing.T) {
	_, err := runCLI(t, "--backend", "memory", "search", "   ", "\t")
	if err == nil || !strings.Contains(err.Error(), "search query is required") {
		t.Fatalf("expected blank query error, got %v", err)
	}

	if _, err := runCLI(t, "--backend", "memory", "search"); err == nil {
		t.Fatal("expected error without a query")
	}
}

func TestInvalidBackendFailsValidation(t *testing.T) {
	_, err := runCLI(t, "--backend", "postgres", "stats")
	if err == nil || !strings.Contains(err.Error(), "must be one of") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCommandsReadPersistedCatalog(t *testing.T) {
	dir := t.TempDir()
	files, err := storage.OpenFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	seed := catalog.New(files, nil, catalog.WithKey("catalog"))
	org := seed.CreateOrganization("Acme Corp", "")
	bot, _ := seed.CreateChatbot(org.ID, "Support", "")
	wf, _ := seed.CreateWorkflow(bot.ID, models.WorkflowInput{Name: "Triage", Emoji: "📨"})
	if err := seed.PersistError(); err != nil {
		t.Fatal(err)
	}

	base := []string{"--backend", "file", "--data-dir", dir, "--key", "catalog"}

	out, err := runCLI(t, append(base, "tree")...)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"Acme Corp  [" + org.ID + "]\n",
		"  Support  [" + bot.ID + "]\n",
		"    📨 Triage  [" + wf.ID + "]\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("tree output missing %q:\n%s", line, out)
		}
	}

	out, err = runCLI(t, append(base, "search", "  ACME ")...)
	if err != nil {
		t.Fatal(err)
	}
	var results models.SearchResults
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode search output: %v\n%s", err, out)
	}
	if len(results.Organizations) != 1 || results.Organizations[0].ID != org.ID {
		t.Errorf("search organizations = %+v", results.Organizations)
	}

	out, err = runCLI(t, append(base, "stats")...)
	if err != nil {
		t.Fatal(err)
	}
	var stats models.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatal(err)
	}
	if stats != (models.Stats{Organizations: 1, Chatbots: 1, Workflows: 1}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCorruptCatalogStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--backend", "file", "--data-dir", dir, "--key", "catalog", "stats")
	if err != nil {
		t.Fatalf("corrupt catalog should not fail the command: %v", err)
	}
	var stats models.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatal(err)
	}
	if stats != (models.Stats{}) {
		t.Errorf("stats = %+v, want empty", stats)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{not json" {
		t.Errorf("read-only command rewrote the catalog file: %q", data)
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, []models.OrgNode{
		{ID: "o1", Name: "Acme", Chatbots: []models.ChatbotNode{
			{ID: "c1", Name: "Support", Workflows: []models.WorkflowNode{
				{ID: "w1", Name: "Triage", Emoji: "📨"},
				{ID: "w2", Name: "Escalate"},
			}},
		}},
		{ID: "o2", Name: "Globex"},
	})

	want := "Acme  [o1]\n" +
		"  Support  [c1]\n" +
		"    📨 Triage  [w1]\n" +
		"    Escalate  [w2]\n" +
		"Globex  [o2]\n"
	if buf.String() != want {
		t.Errorf("printTree =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestBackendFieldsIncludePath(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg.Backend, cfg.DataKey = "sqlite", "botdocs_data"

	db, err := storage.OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	got := map[string]string{}
	for _, f := range backendFields(db) {
		if f.Type == zapcore.StringType {
			got[f.Key] = f.String
		}
	}
	if got["backend"] != "sqlite" || got["path"] != db.Path() || db.Path() == "" {
		t.Errorf("backendFields = %v", got)
	}
	for _, f := range backendFields(storage.NewMemoryStore()) {
		if f.Key == "path" {
			t.Error("memory backend has no path")
		}
	}
}
