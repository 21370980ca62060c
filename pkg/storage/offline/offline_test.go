package offline

import (
	"context"
	"errors"
	"testing"

	"github.com/witch49/wedding-invitation/pkg/storage"
)

func TestStore_ListRecent(t *testing.T) {
	db := New()

	got, err := db.ListRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Timestamp < got[i].Timestamp {
			t.Errorf("entries out of order at %d", i)
		}
	}
}

func TestStore_ListRecent_MoreThanAvailable(t *testing.T) {
	db := New()

	got, err := db.ListRecent(context.Background(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(dataset) {
		t.Errorf("want the whole dataset (%d entries), got %d", len(dataset), len(got))
	}
}

func TestStore_ListPage(t *testing.T) {
	db := New()

	page, err := db.ListPage(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPages := (len(dataset) + 4) / 5
	if page.TotalPages != wantPages {
		t.Errorf("want %d total pages, got %d", wantPages, page.TotalPages)
	}
	if len(page.Posts) != 5 {
		t.Errorf("want 5 posts, got %d", len(page.Posts))
	}
	if page.Posts[0].ID != dataset[0].ID {
		t.Errorf("want newest entry first, got id %d", page.Posts[0].ID)
	}
}

func TestStore_WritesDisabled(t *testing.T) {
	db := New()

	if err := db.Create(context.Background(), "철수", "축하해요!", "1234"); !errors.Is(err, storage.ErrReadOnly) {
		t.Errorf("want ErrReadOnly from Create, got %v", err)
	}
	if err := db.Delete(context.Background(), dataset[0].ID, "1234"); !errors.Is(err, storage.ErrReadOnly) {
		t.Errorf("want ErrReadOnly from Delete, got %v", err)
	}

	// The dataset itself must be untouched.
	got, _ := db.ListRecent(context.Background(), len(dataset))
	if len(got) != len(dataset) {
		t.Errorf("dataset changed: want %d entries, got %d", len(dataset), len(got))
	}
}
