package driven

import (
	"context"
	"fmt"
	"testing"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

func testEntry(id, name string) catalog.Entry {
	return catalog.Entry{
		ID:          id,
		Name:        name,
		URL:         "http://example.com/" + id,
		Category:    "News",
		ContentType: catalog.ContentLive,
		Quality:     catalog.QualityAuto,
		Duration:    -1,
	}
}

func TestFavoriteBoltDBRepository(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewFavoriteBoltDBRepository(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("empty repository returns empty slice", func(t *testing.T) {
		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Errorf("expected empty slice, got %v", entries)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		if err := repo.Add(context.Background(), testEntry("a", "A")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Add(context.Background(), testEntry("b", "B")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != "a" || entries[1].ID != "b" {
			t.Errorf("unexpected order: %q, %q", entries[0].ID, entries[1].ID)
		}
	})

	t.Run("adding a duplicate is a no-op", func(t *testing.T) {
		if err := repo.Add(context.Background(), testEntry("a", "A again")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries after duplicate add, got %d", len(entries))
		}
		if entries[0].Name != "A" {
			t.Errorf("expected the original entry to be kept, got %q", entries[0].Name)
		}
	})

	t.Run("removes by id", func(t *testing.T) {
		if err := repo.Remove(context.Background(), "a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].ID != "b" {
			t.Errorf("unexpected entries after remove: %v", entries)
		}
	})

	t.Run("removing an unknown id is a no-op", func(t *testing.T) {
		if err := repo.Remove(context.Background(), "missing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
	})
}

func TestHistoryBoltDBRepository(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewHistoryBoltDBRepository(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("most recent first", func(t *testing.T) {
		if err := repo.Touch(context.Background(), testEntry("a", "A")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Touch(context.Background(), testEntry("b", "B")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != "b" || entries[1].ID != "a" {
			t.Errorf("unexpected order: %q, %q", entries[0].ID, entries[1].ID)
		}
	})

	t.Run("touching again moves the entry to the front", func(t *testing.T) {
		if err := repo.Touch(context.Background(), testEntry("a", "A")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries after re-touch, got %d", len(entries))
		}
		if entries[0].ID != "a" || entries[1].ID != "b" {
			t.Errorf("unexpected order: %q, %q", entries[0].ID, entries[1].ID)
		}
	})

	t.Run("clear empties the history", func(t *testing.T) {
		if err := repo.Clear(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty history, got %d entries", len(entries))
		}
	})

	t.Run("trims to the history limit", func(t *testing.T) {
		for i := 0; i < catalog.HistoryLimit+10; i++ {
			id := fmt.Sprintf("e%d", i)
			if err := repo.Touch(context.Background(), testEntry(id, id)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		entries, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != catalog.HistoryLimit {
			t.Fatalf("expected %d entries, got %d", catalog.HistoryLimit, len(entries))
		}
		if entries[0].ID != fmt.Sprintf("e%d", catalog.HistoryLimit+9) {
			t.Errorf("expected the latest entry first, got %q", entries[0].ID)
		}
	})
}
