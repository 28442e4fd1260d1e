// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []Entry{
		{Query: "first query", Backends: []string{"arxiv", "openalex"}, Mode: types.ModeAI, ResultCount: 12, Summary: "12 papers"},
		{Query: "second query", Backends: []string{"crossref"}, Mode: types.ModeCitations, ResultCount: 3, Summary: "3 papers"},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Newest first.
	if got[0].Query != "second query" || got[1].Query != "first query" {
		t.Fatalf("unexpected order: %q, %q", got[0].Query, got[1].Query)
	}
	if got[1].Mode != types.ModeAI || got[1].ResultCount != 12 {
		t.Fatalf("entry fields not persisted: %+v", got[1])
	}
	if len(got[0].Backends) != 1 || got[0].Backends[0] != "crossref" {
		t.Fatalf("backends not persisted: %+v", got[0].Backends)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("created_at not persisted")
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, Entry{Query: "q", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d entries from empty store", len(got))
	}
}
