package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/witch49/wedding-invitation/pkg/models"
)

var (
	ErrNotFound        = errors.New("entry not found")
	ErrWrongPassword   = errors.New("wrong deletion password")
	ErrReadOnly        = errors.New("backend is read-only")
	ErrDBNotResponding = errors.New("DB not responding")
)

// Backend is the data access contract shared by every guestbook strategy
// (remote HTTP API, document database, bundled offline dataset). Callers are
// strategy-agnostic; selection happens once at construction.
type Backend interface {
	// Authenticate establishes whatever session the backend needs before
	// reads and writes. Strategies without a session concept return nil.
	Authenticate(ctx context.Context) error

	// ListRecent returns up to n entries, newest first.
	ListRecent(ctx context.Context, n int) ([]models.Post, error)

	// ListPage returns the 0-based page of the given size plus the total
	// page count.
	ListPage(ctx context.Context, page, size int) (models.Page, error)

	// Create persists a new entry stamped with the current time. The created
	// entry is not returned; callers reload instead.
	Create(ctx context.Context, name, content, password string) error

	// Delete removes the entry with the given id after checking the password.
	// It returns ErrNotFound when no entry matches and ErrWrongPassword when
	// the password digest does not match the stored one.
	Delete(ctx context.Context, id int64, password string) error
}

// Digest hashes a deletion password the way it is stored alongside an entry:
// SHA-256, lowercase hex.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// SlicePage cuts one 0-based page out of an already newest-first ordered list
// and derives the page count from its length. Shared by the strategies that
// paginate client-side.
func SlicePage(posts []models.Post, page, size int) models.Page {
	if size <= 0 {
		return models.Page{Posts: []models.Post{}, TotalPages: 1}
	}

	total := len(posts)
	numPages := (total + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}

	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= total {
		return models.Page{Posts: []models.Post{}, TotalPages: numPages}
	}
	end := start + size
	if end > total {
		end = total
	}

	out := make([]models.Post, end-start)
	copy(out, posts[start:end])

	return models.Page{Posts: out, TotalPages: numPages}
}
