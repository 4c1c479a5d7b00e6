package store

import (
	"path/filepath"
	"testing"
)

func TestVisitedPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openhouse.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.MarkVisited("fountain")
	s.MarkVisited("fountain") // idempotent
	s.SetZoom(2.25)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if !s2.IsVisited("fountain") {
		t.Fatalf("visited set should survive reopen")
	}
	if s2.IsVisited("plinth") {
		t.Fatalf("unvisited POI reported visited")
	}
	zoom, ok := s2.Zoom()
	if !ok || zoom != 2.25 {
		t.Fatalf("zoom pref = %v ok=%v, want 2.25", zoom, ok)
	}
}

func TestResetClearsVisited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openhouse.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.MarkVisited("bookcase")
	s.Reset()
	if s.IsVisited("bookcase") {
		t.Fatalf("reset should clear the in-memory set")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if s2.IsVisited("bookcase") {
		t.Fatalf("reset should clear the persisted set")
	}
}

func TestNilStoreIsUsable(t *testing.T) {
	var s *Store
	s.MarkVisited("anything")
	if s.IsVisited("anything") {
		t.Fatalf("nil store should report nothing visited")
	}
	s.Reset()
	if _, ok := s.Zoom(); ok {
		t.Fatalf("nil store should have no zoom pref")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("empty path should fail")
	}
}
