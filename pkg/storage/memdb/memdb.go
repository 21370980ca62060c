package memdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

// Store is the in-memory guestbook strategy used in dev mode and as a test
// double. It keeps the same id and digest scheme as the document-database
// strategy.
type Store struct {
	mu    sync.Mutex
	posts map[int64]models.Post

	// now is swappable in tests so entries created in the same test get
	// distinct ids.
	now func() time.Time
}

func New() *Store {
	return &Store{
		posts: make(map[int64]models.Post),
		now:   time.Now,
	}
}

func (db *Store) Authenticate(ctx context.Context) error {
	return nil
}

func (db *Store) Create(ctx context.Context, name, content, password string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.now()
	id := now.UnixMilli()
	// Keep ids unique under rapid successive writes in one process.
	for {
		if _, taken := db.posts[id]; !taken {
			break
		}
		id++
	}

	db.posts[id] = models.Post{
		ID:           id,
		Timestamp:    now.Unix(),
		Name:         name,
		Content:      content,
		PasswordHash: storage.Digest(password),
	}

	return nil
}

func (db *Store) Delete(ctx context.Context, id int64, password string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	post, ok := db.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	if storage.Digest(password) != post.PasswordHash {
		return storage.ErrWrongPassword
	}

	delete(db.posts, id)
	return nil
}

func (db *Store) ListRecent(ctx context.Context, n int) ([]models.Post, error) {
	all := db.sorted()
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n], nil
}

func (db *Store) ListPage(ctx context.Context, page, size int) (models.Page, error) {
	return storage.SlicePage(db.sorted(), page, size), nil
}

// List returns the offset/limit window plus the exact entry count, for the
// server-side listing contract.
func (db *Store) List(ctx context.Context, offset, limit int) ([]models.Post, int, error) {
	all := db.sorted()
	total := len(all)

	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return all[offset:end], total, nil
}

func (db *Store) sorted() []models.Post {
	db.mu.Lock()
	all := make([]models.Post, 0, len(db.posts))
	for _, p := range db.posts {
		all = append(all, p)
	}
	db.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Timestamp != all[j].Timestamp {
			return all[i].Timestamp > all[j].Timestamp
		}
		return all[i].ID > all[j].ID
	})

	return all
}

// SetClock overrides the creation clock. Test helper.
func (db *Store) SetClock(now func() time.Time) {
	db.now = now
}
