// Package guestbook implements the guestbook core: the auth gate, the write
// and delete protocols and the pagination controller, on top of an
// interchangeable storage backend picked once at construction.
package guestbook

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

// Service wires the protocols to one backend and holds the process-wide
// session state behind EnsureAuthenticated.
type Service struct {
	backend storage.Backend

	auth authGate
}

func NewService(backend storage.Backend) *Service {
	return &Service{backend: backend}
}

// EnsureAuthenticated establishes the backend session once. It is idempotent,
// concurrent callers share a single in-flight attempt, and failures are
// logged and swallowed so read-only operation can proceed (fail-open).
func (s *Service) EnsureAuthenticated(ctx context.Context) {
	s.auth.ensure(ctx, s.backend.Authenticate)
}

// Recent returns up to n entries for the summary view, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]models.Post, error) {
	s.EnsureAuthenticated(ctx)

	posts, err := s.backend.ListRecent(ctx, n)
	if err != nil {
		log.Errorf("[guestbook] failed to list recent entries: %v", err)
		return nil, err
	}
	return posts, nil
}

// Submit runs the write protocol: validate, authenticate, create. Validation
// failures return a *ValidationError without touching the backend.
func (s *Service) Submit(ctx context.Context, name, content, password string) error {
	if err := ValidateEntry(name, content, password); err != nil {
		return err
	}

	s.EnsureAuthenticated(ctx)

	if err := s.backend.Create(ctx, name, content, password); err != nil {
		log.Errorf("[guestbook] failed to save entry from %q: %v", name, err)
		return err
	}
	return nil
}

// Remove runs the delete protocol: validate the password length, authenticate,
// delete. storage.ErrNotFound and storage.ErrWrongPassword pass through
// unchanged so callers can report them distinctly.
func (s *Service) Remove(ctx context.Context, id int64, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	s.EnsureAuthenticated(ctx)

	err := s.backend.Delete(ctx, id, password)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrWrongPassword):
		return err
	default:
		log.Errorf("[guestbook] failed to delete entry id:%d: %v", id, err)
		return err
	}
}

// NewPager returns a pagination controller over this service's backend.
// onUpdate receives the new view after every applied page load; nil is
// allowed.
func (s *Service) NewPager(onUpdate func(View)) *Pager {
	return newPager(s, onUpdate)
}
