package storage

import (
	"context"
	"errors"
	"os"
	"testing"
)

// exerciseBlobStore runs the behaviour every backend must share.
func exerciseBlobStore(t *testing.T, s BlobStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(absent) err = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "botdocs_data", []byte("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "botdocs_data", []byte("second")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, err := s.Get(ctx, "botdocs_data")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}

	if err := s.Put(ctx, "other", []byte("x")); err != nil {
		t.Fatalf("Put other: %v", err)
	}
	got, _ = s.Get(ctx, "botdocs_data")
	if string(got) != "second" {
		t.Errorf("Keys should be independent, got %q", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(tempDir(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseBlobStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := OpenFile(tempDir(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseBlobStore(t, s)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseBlobStore(t, s)
	if s.Puts() != 3 {
		t.Errorf("Puts = %d, want 3", s.Puts())
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	data := []byte("abc")
	s.Put(ctx, "k", data)
	data[0] = 'z'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Get = %q, want %q", got, "abc")
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("BOTDOCS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BOTDOCS_TEST_REDIS_URL not set")
	}
	s, err := OpenRedis(context.Background(), url)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	defer s.Close()
	exerciseBlobStore(t, s)
}

func TestOpenRedisBadURL(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "not a url"); err == nil {
		t.Error("Expected error for malformed redis url")
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		s, err := Open(ctx, backend, tempDir(t), "")
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		s.Close()
	}

	if _, err := Open(ctx, "tape", tempDir(t), ""); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
