package client_test

import (
	"path/filepath"
	"testing"

	"balance/client"
)

func newSessionStore(t *testing.T) *client.SessionStore {
	t.Helper()
	return client.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSessionStoreRoundTrip(t *testing.T) {
	s := newSessionStore(t)

	if s.Token() != "" || s.UserID() != "" {
		t.Fatal("fresh store should be empty")
	}

	if err := s.SetSession("tok-1", "7"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if s.Token() != "tok-1" || s.UserID() != "7" {
		t.Fatalf("got (%q, %q)", s.Token(), s.UserID())
	}

	// overwrite is visible on next read
	if err := s.SetSession("tok-2", "8"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if s.Token() != "tok-2" || s.UserID() != "8" {
		t.Fatalf("got (%q, %q) after overwrite", s.Token(), s.UserID())
	}
}

func TestSessionStoreClear(t *testing.T) {
	s := newSessionStore(t)

	if err := s.SetSession("tok", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if s.Token() != "" || s.UserID() != "" {
		t.Fatal("store should be empty after clear")
	}

	// clearing an already-empty store is fine
	if err := s.ClearSession(); err != nil {
		t.Fatalf("second ClearSession: %v", err)
	}
}

func TestSessionStoreSharedSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writer := client.NewSessionStore(path)
	reader := client.NewSessionStore(path)

	if err := writer.SetSession("tok", "42"); err != nil {
		t.Fatal(err)
	}
	// a second store over the same slot sees the write on next read
	if reader.Token() != "tok" || reader.UserID() != "42" {
		t.Fatalf("got (%q, %q)", reader.Token(), reader.UserID())
	}
}
