package guestbook

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/witch49/wedding-invitation/pkg/models"
)

const (
	// DefaultPageSize is the number of entries shown per page.
	DefaultPageSize = 5
	// DefaultWindowSize is the number of page controls shown at once.
	DefaultWindowSize = 5
)

// View is one rendered state of the paginated guestbook.
type View struct {
	Posts       []models.Post
	CurrentPage int
	TotalPages  int

	// Window is the contiguous block of 0-based page indices shown as
	// navigation controls; it always starts at a multiple of the window size
	// and contains CurrentPage.
	Window        []int
	HasPrevWindow bool
	HasNextWindow bool
}

// Pager owns the current page, the total page count and the sliding page
// window for one open list view. Every page load carries a sequence number;
// a response is applied only if no newer load was issued meanwhile, so a slow
// early request can never overwrite a faster later one.
type Pager struct {
	svc        *Service
	pageSize   int
	windowSize int
	onUpdate   func(View)

	mu          sync.Mutex
	seq         uint64
	currentPage int
	totalPages  int
	posts       []models.Post
	loaded      bool
}

func newPager(svc *Service, onUpdate func(View)) *Pager {
	return &Pager{
		svc:        svc,
		pageSize:   DefaultPageSize,
		windowSize: DefaultWindowSize,
		onUpdate:   onUpdate,
		totalPages: 1,
	}
}

// LoadPage fetches the given 0-based page and applies it. Requesting the page
// that is already current is a no-op. A page that turned out of range (the
// total shrank after a deletion) is clamped to the last page and refetched.
func (p *Pager) LoadPage(ctx context.Context, page int) error {
	p.mu.Lock()
	if p.loaded && page == p.currentPage {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	return p.load(ctx, page)
}

// Reload refetches the current page, preserving the visitor's position. Called
// after every successful create or delete.
func (p *Pager) Reload(ctx context.Context) error {
	p.mu.Lock()
	page := p.currentPage
	p.mu.Unlock()

	return p.load(ctx, page)
}

func (p *Pager) load(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}

	// Reads require the session too. The gate is idempotent.
	p.svc.EnsureAuthenticated(ctx)

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	pg, err := p.svc.backend.ListPage(ctx, page, p.pageSize)
	if err != nil {
		// Degrade silently: keep whatever is on screen.
		log.Errorf("[guestbook] failed to load page %d: %v", page, err)
		return err
	}

	if pg.TotalPages < 1 {
		pg.TotalPages = 1
	}

	p.mu.Lock()
	if seq != p.seq {
		// A newer load was issued while this one was in flight.
		p.mu.Unlock()
		return nil
	}

	if page >= pg.TotalPages {
		p.mu.Unlock()
		return p.load(ctx, pg.TotalPages-1)
	}

	p.currentPage = page
	p.totalPages = pg.TotalPages
	p.posts = pg.Posts
	p.loaded = true
	view := p.viewLocked()
	cb := p.onUpdate
	p.mu.Unlock()

	if cb != nil {
		cb(view)
	}
	return nil
}

// View returns the current rendered state.
func (p *Pager) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

func (p *Pager) viewLocked() View {
	window := pageWindow(p.currentPage, p.windowSize, p.totalPages)

	return View{
		Posts:         p.posts,
		CurrentPage:   p.currentPage,
		TotalPages:    p.totalPages,
		Window:        window,
		HasPrevWindow: len(window) > 0 && window[0] > 0,
		HasNextWindow: len(window) > 0 && window[len(window)-1] < p.totalPages-1,
	}
}

// pageWindow returns the contiguous block of page indices containing current:
// [floor(current/size)*size, min(start+size, totalPages)).
func pageWindow(current, size, totalPages int) []int {
	if size <= 0 || totalPages < 1 {
		return []int{}
	}
	if current < 0 {
		current = 0
	}

	start := current / size * size
	end := start + size
	if end > totalPages {
		end = totalPages
	}

	window := make([]int, 0, size)
	for i := start; i < end; i++ {
		window = append(window, i)
	}
	return window
}
