package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "botdocs-test-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestOpenSQLite(t *testing.T) {
	dir := tempDir(t)
	s, err := OpenSQLite(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "nested", SQLiteFile)); err != nil {
		t.Errorf("Expected %s to exist: %v", SQLiteFile, err)
	}
}

func TestSQLiteReopenKeepsBlob(t *testing.T) {
	dir := tempDir(t)
	ctx := context.Background()

	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "botdocs_data", []byte(`{"organizations":[]}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Get(ctx, "botdocs_data")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"organizations":[]}` {
		t.Errorf("Get = %q, want %q", got, `{"organizations":[]}`)
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	s, err := OpenSQLite(tempDir(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	if _, err := s.UpdatedAt(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatedAt(missing) err = %v, want ErrNotFound", err)
	}

	s.Put(ctx, "k", []byte("v"))
	ts, err := s.UpdatedAt(ctx, "k")
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if ts == "" {
		t.Error("UpdatedAt should not be empty")
	}
}
