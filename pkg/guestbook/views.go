package guestbook

import (
	"context"
	"errors"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

// Outcome messages for submissions and deletions, one per failure kind.
const (
	MsgSaved         = "메시지가 등록되었습니다."
	MsgSaveFailed    = "저장에 실패했습니다. 잠시 후 다시 시도해 주세요."
	MsgDeleted       = "메시지가 삭제되었습니다."
	MsgDeleteFailed  = "삭제에 실패했습니다. 잠시 후 다시 시도해 주세요."
	MsgWrongPassword = "비밀번호가 일치하지 않습니다."
	MsgAlreadyGone   = "이미 삭제된 메시지입니다."
)

// RecentView is the summary surface showing the newest few entries. Its list
// is independent from the paginated board.
type RecentView struct {
	svc      *Service
	limit    int
	onUpdate func([]models.Post)
}

func NewRecentView(svc *Service, limit int, onUpdate func([]models.Post)) *RecentView {
	return &RecentView{svc: svc, limit: limit, onUpdate: onUpdate}
}

// Refresh reloads the summary list. Failures leave the previous list in place.
func (v *RecentView) Refresh(ctx context.Context) error {
	posts, err := v.svc.Recent(ctx, v.limit)
	if err != nil {
		return err
	}
	if v.onUpdate != nil {
		v.onUpdate(posts)
	}
	return nil
}

// Board is the full paginated surface: a pager plus the write and delete
// protocols, reporting each outcome through notify with user-facing text.
type Board struct {
	svc    *Service
	pager  *Pager
	notify func(message string)
}

func NewBoard(svc *Service, onUpdate func(View), notify func(string)) *Board {
	return &Board{
		svc:    svc,
		pager:  svc.NewPager(onUpdate),
		notify: notify,
	}
}

// Pager exposes the board's pagination controller for navigation.
func (b *Board) Pager() *Pager {
	return b.pager
}

// Open loads the first page.
func (b *Board) Open(ctx context.Context) error {
	return b.pager.LoadPage(ctx, 0)
}

// Submit runs the write protocol and, on success, reloads the current page so
// the visitor keeps their position.
func (b *Board) Submit(ctx context.Context, name, content, password string) error {
	err := b.svc.Submit(ctx, name, content, password)

	var verr *ValidationError
	switch {
	case err == nil:
		b.say(MsgSaved)
		return b.pager.Reload(ctx)
	case errors.As(err, &verr):
		b.say(verr.Message)
		return err
	default:
		b.say(MsgSaveFailed)
		return err
	}
}

// Delete runs the delete protocol and, on success, reloads the current page.
func (b *Board) Delete(ctx context.Context, id int64, password string) error {
	err := b.svc.Remove(ctx, id, password)

	var verr *ValidationError
	switch {
	case err == nil:
		b.say(MsgDeleted)
		return b.pager.Reload(ctx)
	case errors.As(err, &verr):
		b.say(verr.Message)
		return err
	case errors.Is(err, storage.ErrWrongPassword):
		b.say(MsgWrongPassword)
		return err
	case errors.Is(err, storage.ErrNotFound):
		b.say(MsgAlreadyGone)
		return err
	default:
		b.say(MsgDeleteFailed)
		return err
	}
}

func (b *Board) say(message string) {
	if b.notify != nil {
		b.notify(message)
	}
}
