package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/labelforge/labelforge/batch"
)

func openTestStore(t *testing.T) *BatchStore {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "batch.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAddAndListItems(t *testing.T) {
	st := openTestStore(t)

	items, err := batch.Expand("ITEM-100", "Widget", "$5.00", 3)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if err := st.AddItems(items); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}

	got, err := st.ListItems()
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("listed %d items, want 3", len(got))
	}
	for i, it := range got {
		if it.ID == 0 {
			t.Errorf("item %d has no id", i)
		}
		if it.Data != items[i].Data {
			t.Errorf("item %d data = %q, want %q", i, it.Data, items[i].Data)
		}
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	st := openTestStore(t)

	first, _ := batch.Expand("A-1", "", "", 2)
	second, _ := batch.Expand("B-1", "", "", 2)
	if err := st.AddItems(first); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	if err := st.AddItems(second); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}

	got, err := st.ListItems()
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	want := []string{"A-1", "A-2", "B-1", "B-2"}
	for i, w := range want {
		if got[i].Data != w {
			t.Errorf("item %d = %q, want %q", i, got[i].Data, w)
		}
	}
}

func TestUpdateItem(t *testing.T) {
	st := openTestStore(t)

	items, _ := batch.Expand("ITEM-1", "Widget", "", 1)
	if err := st.AddItems(items); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	listed, _ := st.ListItems()

	item := listed[0]
	item.Name = "Red Widget"
	item.Price = "$7.50"
	if err := st.UpdateItem(item); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := st.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != "Red Widget" || got.Price != "$7.50" {
		t.Errorf("got %+v after update", got)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	st := openTestStore(t)
	err := st.UpdateItem(batch.Item{ID: 42, Data: "X-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetMissingItem(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetItem(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	st := openTestStore(t)

	items, _ := batch.Expand("ITEM-1", "", "", 4)
	if err := st.AddItems(items); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	listed, _ := st.ListItems()

	if err := st.RemoveItems(listed[0].ID, listed[2].ID); err != nil {
		t.Fatalf("RemoveItems failed: %v", err)
	}
	n, err := st.CountItems()
	if err != nil {
		t.Fatalf("CountItems failed: %v", err)
	}
	if n != 2 {
		t.Errorf("count after remove = %d, want 2", n)
	}

	if err := st.ClearItems(); err != nil {
		t.Fatalf("ClearItems failed: %v", err)
	}
	n, _ = st.CountItems()
	if n != 0 {
		t.Errorf("count after clear = %d, want 0", n)
	}
}
