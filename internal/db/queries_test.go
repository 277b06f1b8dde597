package db

import (
	"context"
	"testing"
	"time"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/errors"
)

func testItem(id string, p catalog.Polarity, prio int, tags ...string) catalog.Item {
	now := time.Now().Unix()
	return catalog.Item{
		ID:        id,
		Polarity:  p,
		Text:      "text for " + id,
		Detail:    "detail for " + id,
		Tags:      tags,
		Priority:  prio,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertAndGetItem(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	item := testItem("custom-quiet", catalog.Do, 15, "closed", "evening")
	if err := InsertItem(database, item); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	got, err := GetItem(database, "custom-quiet")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Text != item.Text || got.Detail != item.Detail {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "closed" {
		t.Errorf("Tags = %v, want [closed evening]", got.Tags)
	}
	if got.Builtin {
		t.Error("Builtin = true, want false for inserted item")
	}
}

func TestInsertItem_DuplicateID(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	item := testItem("dup", catalog.Do, 1)
	if err := InsertItem(database, item); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := InsertItem(database, item); err != ErrUniqueConstraint {
		t.Errorf("second insert error = %v, want ErrUniqueConstraint", err)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	_, err = GetItem(database, "nope")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestUpdateItem(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	item := testItem("to-update", catalog.Dont, 5, "calm")
	if err := InsertItem(database, item); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	item.Text = "updated text"
	item.Tags = nil
	item.Priority = 99
	item.UpdatedAt = item.UpdatedAt + 10
	if err := UpdateItem(database, item); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := GetItem(database, "to-update")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Text != "updated text" || got.Priority != 99 {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, want cleared", got.Tags)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	err = UpdateItem(database, testItem("missing", catalog.Do, 1))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestDeleteItem(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if err := InsertItem(database, testItem("bye", catalog.Do, 1)); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}
	if err := DeleteItem(database, "bye"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if err := DeleteItem(database, "bye"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NOT_FOUND", err)
	}
}

func TestReplaceItem_InsertsAndOverwrites(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	item := testItem("replace-me", catalog.Do, 1)
	if err := ReplaceItem(database, item); err != nil {
		t.Fatalf("ReplaceItem (insert) failed: %v", err)
	}

	item.Text = "second version"
	if err := ReplaceItem(database, item); err != nil {
		t.Fatalf("ReplaceItem (overwrite) failed: %v", err)
	}

	got, err := GetItem(database, "replace-me")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Text != "second version" {
		t.Errorf("Text = %q, want overwrite applied", got.Text)
	}
}

func TestListItems_Filters(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	doPolarity := catalog.Do
	summaries, total, err := ListItems(database, &doPolarity, nil, 100, 0)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if total != len(summaries) {
		t.Errorf("total = %d, len = %d, want equal for one page", total, len(summaries))
	}
	for _, s := range summaries {
		if s.Polarity != catalog.Do {
			t.Errorf("polarity filter leaked %q", s.ID)
		}
	}

	tag := "cautious"
	summaries, _, err = ListItems(database, nil, &tag, 100, 0)
	if err != nil {
		t.Fatalf("ListItems with tag failed: %v", err)
	}
	if len(summaries) == 0 {
		t.Fatal("expected seeded items tagged cautious")
	}
	for _, s := range summaries {
		found := false
		for _, st := range s.Tags {
			if st == "cautious" {
				found = true
			}
		}
		if !found {
			t.Errorf("tag filter leaked %q with tags %v", s.ID, s.Tags)
		}
	}
}

func TestListItems_Pagination(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	all, total, err := ListItems(database, nil, nil, 1000, 0)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if total != len(catalog.Seed()) {
		t.Fatalf("total = %d, want seed size %d", total, len(catalog.Seed()))
	}

	page, pageTotal, err := ListItems(database, nil, nil, 3, 2)
	if err != nil {
		t.Fatalf("ListItems page failed: %v", err)
	}
	if pageTotal != total {
		t.Errorf("page total = %d, want %d", pageTotal, total)
	}
	if len(page) != 3 {
		t.Errorf("page len = %d, want 3", len(page))
	}
	if page[0].ID != all[2].ID {
		t.Errorf("page[0] = %q, want %q", page[0].ID, all[2].ID)
	}

	// Offset past the end yields an empty page, not an error
	empty, _, err := ListItems(database, nil, nil, 10, 10000)
	if err != nil {
		t.Fatalf("ListItems past end failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past end = %v, want empty", empty)
	}
}

func TestSearchItems(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	summaries, total, err := SearchItems(context.Background(), database, "gift", nil, 100, 0)
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if total == 0 {
		t.Fatal("expected seeded 'gift' items")
	}
	for _, s := range summaries {
		if s.ID == "" {
			t.Error("summary with empty id")
		}
	}

	// LIKE wildcards in the query must be treated literally
	_, total, err = SearchItems(context.Background(), database, "%", nil, 100, 0)
	if err != nil {
		t.Fatalf("SearchItems with wildcard failed: %v", err)
	}
	if total != 0 {
		t.Errorf("bare %% matched %d items, want 0 (escaped)", total)
	}
}

func TestLoadAllItems_EngineOrder(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	items, err := LoadAllItems(database)
	if err != nil {
		t.Fatalf("LoadAllItems failed: %v", err)
	}
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Priority > cur.Priority ||
			(prev.Priority == cur.Priority && prev.ID > cur.ID) {
			t.Errorf("items out of order at %d: %s(%d) before %s(%d)",
				i, prev.ID, prev.Priority, cur.ID, cur.Priority)
		}
	}
}

func TestDeleteAllItems(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	deleted, err := DeleteAllItems(database)
	if err != nil {
		t.Fatalf("DeleteAllItems failed: %v", err)
	}
	if deleted != len(catalog.Seed()) {
		t.Errorf("deleted = %d, want %d", deleted, len(catalog.Seed()))
	}

	count, err := CountItems(database)
	if err != nil {
		t.Fatalf("CountItems failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
