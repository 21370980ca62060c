package memdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/witch49/wedding-invitation/pkg/storage"
)

// testClock hands out strictly increasing timestamps one second apart so every
// entry gets a distinct id and a stable order.
func testClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		out := t
		t = t.Add(time.Second)
		return out
	}
}

func seed(t *testing.T, db *Store, n int) {
	t.Helper()
	names := []string{"수진", "민준", "지혜", "동현", "은영"}
	for i := 0; i < n; i++ {
		err := db.Create(context.Background(), names[i%len(names)], "축하합니다!", "pass1234")
		if err != nil {
			t.Fatalf("unexpected error while seeding entry %d: %v", i, err)
		}
	}
}

func TestStore_CreateAndListRecent(t *testing.T) {
	db := New()
	db.SetClock(testClock(time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)))

	if err := db.Create(context.Background(), "철수", "축하해요!", "1234"); err != nil {
		t.Fatalf("unexpected error adding entry: %v", err)
	}
	if err := db.Create(context.Background(), "영희", "행복하세요", "5678"); err != nil {
		t.Fatalf("unexpected error adding entry: %v", err)
	}

	got, err := db.ListRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error listing recent entries: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("want 2 entries, got %d", len(got))
	}
	if got[0].Name != "영희" {
		t.Errorf("want newest entry first, got %q", got[0].Name)
	}
	if got[1].Name != "철수" || got[1].Content != "축하해요!" {
		t.Errorf("entry did not round-trip: %+v", got[1])
	}
	if got[1].Timestamp == 0 {
		t.Error("want non-zero timestamp")
	}
}

func TestStore_Delete(t *testing.T) {
	db := New()
	db.SetClock(testClock(time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)))

	if err := db.Create(context.Background(), "철수", "축하해요!", "1234"); err != nil {
		t.Fatalf("unexpected error adding entry: %v", err)
	}

	posts, err := db.ListRecent(context.Background(), 1)
	if err != nil || len(posts) != 1 {
		t.Fatalf("failed to read back entry: %v", err)
	}
	id := posts[0].ID

	if err := db.Delete(context.Background(), id, "wrong-pass"); !errors.Is(err, storage.ErrWrongPassword) {
		t.Errorf("want ErrWrongPassword, got %v", err)
	}

	// The failed attempt must not have removed anything.
	posts, _ = db.ListRecent(context.Background(), 1)
	if len(posts) != 1 {
		t.Fatal("entry disappeared after failed deletion")
	}

	if err := db.Delete(context.Background(), id, "1234"); err != nil {
		t.Errorf("unexpected error deleting entry: %v", err)
	}
	if err := db.Delete(context.Background(), id, "1234"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("want ErrNotFound for repeated deletion, got %v", err)
	}

	posts, _ = db.ListRecent(context.Background(), 5)
	if len(posts) != 0 {
		t.Errorf("want empty guestbook after deletion, got %d entries", len(posts))
	}
}

func TestStore_ListPage(t *testing.T) {
	db := New()
	db.SetClock(testClock(time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)))
	seed(t, db, 12)

	page, err := db.ListPage(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("unexpected error listing page: %v", err)
	}

	if page.TotalPages != 3 {
		t.Errorf("want 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Posts) != 2 {
		t.Errorf("want 2 posts on the last page, got %d", len(page.Posts))
	}
}

func TestStore_List(t *testing.T) {
	db := New()
	db.SetClock(testClock(time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)))
	seed(t, db, 7)

	tests := []struct {
		name          string
		offset, limit int
		wantLen       int
	}{
		{"first window", 0, 5, 5},
		{"tail window", 5, 5, 2},
		{"offset past end", 10, 5, 0},
		{"zero limit", 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posts, total, err := db.List(context.Background(), tc.offset, tc.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != 7 {
				t.Errorf("want total 7, got %d", total)
			}
			if len(posts) != tc.wantLen {
				t.Errorf("want %d posts, got %d", tc.wantLen, len(posts))
			}
		})
	}
}

func TestStore_OrderIsNewestFirst(t *testing.T) {
	db := New()
	db.SetClock(testClock(time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)))
	seed(t, db, 6)

	posts, _, err := db.List(context.Background(), 0, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(posts); i++ {
		if posts[i-1].Timestamp < posts[i].Timestamp {
			t.Fatalf("posts out of order at %d: %d before %d", i, posts[i-1].Timestamp, posts[i].Timestamp)
		}
	}
}
