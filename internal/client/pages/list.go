package pages

import (
	"context"
	"sync"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
)

// ListPage shows every user, loaded fresh each time the page is entered.
type ListPage struct {
	deps   Deps
	flight inflight

	mu    sync.RWMutex
	users []dto.User
}

func NewListPage(deps Deps) *ListPage {
	return &ListPage{deps: deps}
}

// Users returns a copy of the loaded users.
func (p *ListPage) Users() []dto.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]dto.User, len(p.users))
	copy(out, p.users)
	return out
}

func (p *ListPage) Busy() bool { return p.flight.Busy() }

// Enter fetches the list. On failure the previous rows stay.
func (p *ListPage) Enter(ctx context.Context) error {
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	res, err := p.deps.API.List(ctx)
	if err != nil {
		p.deps.Logger.Error("❌ [ListPage] Failed to load users", "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		return err
	}
	if !res.OK {
		p.deps.Logger.Warn("⚠️ [ListPage] List rejected", "code", res.Code, "message", res.Error)
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		return nil
	}

	p.mu.Lock()
	p.users = res.Value
	p.mu.Unlock()
	return nil
}

// Delete removes a user without confirmation. On success the row is dropped
// locally, without refetching.
func (p *ListPage) Delete(ctx context.Context, id uint) error {
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	res, err := p.deps.API.Delete(ctx, id)
	if err != nil {
		p.deps.Logger.Error("❌ [ListPage] Failed to delete user", "user_id", id, "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		return err
	}
	if !res.OK {
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		return nil
	}

	p.mu.Lock()
	for i, u := range p.users {
		if u.ID == id {
			p.users = append(p.users[:i], p.users[i+1:]...)
			break
		}
	}
	p.mu.Unlock()

	p.deps.Logger.Info("🗑️ [ListPage] User deleted", "user_id", id)
	return nil
}

// Open navigates to the select page for id.
func (p *ListPage) Open(id uint) {
	p.deps.Navigator.ToSelect(id)
}
