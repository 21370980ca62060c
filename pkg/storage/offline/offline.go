// Package offline is the bundled fallback guestbook strategy: a fixed,
// newest-first dataset served when no live backend is configured or the
// document database is unreachable. Writes are disabled.
package offline

import (
	"context"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

type Store struct {
	posts []models.Post
}

// New returns a store serving the bundled dataset.
func New() *Store {
	return &Store{posts: dataset}
}

// NewWithPosts returns a store serving the given newest-first dataset.
func NewWithPosts(posts []models.Post) *Store {
	return &Store{posts: posts}
}

func (db *Store) Authenticate(ctx context.Context) error {
	return nil
}

func (db *Store) ListRecent(ctx context.Context, n int) ([]models.Post, error) {
	if n < 0 {
		n = 0
	}
	if n > len(db.posts) {
		n = len(db.posts)
	}
	out := make([]models.Post, n)
	copy(out, db.posts[:n])
	return out, nil
}

func (db *Store) ListPage(ctx context.Context, page, size int) (models.Page, error) {
	return storage.SlicePage(db.posts, page, size), nil
}

func (db *Store) Create(ctx context.Context, name, content, password string) error {
	return storage.ErrReadOnly
}

func (db *Store) Delete(ctx context.Context, id int64, password string) error {
	return storage.ErrReadOnly
}
