package pages

import (
	"context"
	"sync"
	"time"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
)

// TimestampLayout renders dates as dd/mm/yyyy, hh:mm (24h).
const TimestampLayout = "02/01/2006, 15:04"

// SelectState is where the select page is in its lifecycle.
type SelectState int

const (
	StateLoading SelectState = iota
	StateLoaded
	StateEditing
	StateDeleting
	StateNavigatedAway
)

func (s SelectState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEditing:
		return "editing"
	case StateDeleting:
		return "deleting"
	case StateNavigatedAway:
		return "navigated_away"
	default:
		return "unknown"
	}
}

// FormatTimestamp formats t in loc with TimestampLayout.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(TimestampLayout)
}

// SelectPage shows one user and lets it be edited or deleted.
type SelectPage struct {
	deps   Deps
	id     uint
	form   *Form
	flight inflight
	loc    *time.Location

	mu        sync.RWMutex
	state     SelectState
	user      dto.User
	loadError string
}

// NewSelectPage returns a page in the loading state. Call Load to fetch.
func NewSelectPage(deps Deps, id uint) *SelectPage {
	return &SelectPage{
		deps:  deps,
		id:    id,
		form:  NewForm(deps.Validator),
		loc:   time.Local,
		state: StateLoading,
	}
}

// OpenSelectPage builds the page for id and loads it right away.
func OpenSelectPage(ctx context.Context, deps Deps, id uint) (*SelectPage, error) {
	p := NewSelectPage(deps, id)
	return p, p.Load(ctx)
}

func (p *SelectPage) ID() uint { return p.id }

func (p *SelectPage) Form() *Form { return p.form }

func (p *SelectPage) Busy() bool { return p.flight.Busy() }

func (p *SelectPage) State() SelectState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *SelectPage) User() dto.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// LoadError is the server's message when the record could not be loaded.
func (p *SelectPage) LoadError() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadError
}

func (p *SelectPage) CreatedAt() string { return FormatTimestamp(p.User().CreatedAt, p.loc) }

func (p *SelectPage) UpdatedAt() string { return FormatTimestamp(p.User().UpdatedAt, p.loc) }

// Load fetches the record and fills the form with name and email. The
// password field stays blank. If the record cannot be loaded the page stays
// in StateLoading.
func (p *SelectPage) Load(ctx context.Context) error {
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	res, err := p.deps.API.Get(ctx, p.id)
	if err != nil {
		p.deps.Logger.Error("❌ [SelectPage] Failed to load user", "user_id", p.id, "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		return err
	}
	if !res.OK {
		p.mu.Lock()
		p.loadError = res.Error
		p.mu.Unlock()
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		return nil
	}

	p.form.Reset()
	p.form.Patch(map[string]string{"name": res.Value.Name, "email": res.Value.Email})

	p.mu.Lock()
	p.user = res.Value
	p.loadError = ""
	p.state = StateLoaded
	p.mu.Unlock()
	return nil
}

// Update submits the form as a full replace. On success the page shows the
// stored record and stays.
func (p *SelectPage) Update(ctx context.Context) error {
	if !p.form.Valid() {
		p.deps.Notifier.Notify(p.deps.Validator.Text("form_invalid"), LevelWarning)
		return ErrFormInvalid
	}
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	if !p.transition(StateLoaded, StateEditing) {
		return ErrNotReady
	}

	res, err := p.deps.API.Update(ctx, p.id, p.form.Request())
	if err != nil {
		p.deps.Logger.Error("❌ [SelectPage] Failed to update user", "user_id", p.id, "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		p.setState(StateLoaded)
		return err
	}
	if !res.OK {
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		p.setState(StateLoaded)
		return nil
	}

	p.mu.Lock()
	p.user = res.Value
	p.state = StateLoaded
	p.mu.Unlock()

	p.deps.Logger.Info("✅ [SelectPage] User updated", "user_id", p.id)
	p.deps.Notifier.Notify(p.deps.Validator.Text("user_updated"), LevelSuccess)
	return nil
}

// RequestDelete opens the confirm prompt.
func (p *SelectPage) RequestDelete() error {
	if !p.transition(StateLoaded, StateDeleting) {
		return ErrNotReady
	}
	return nil
}

// CancelDelete closes the confirm prompt.
func (p *SelectPage) CancelDelete() error {
	if !p.transition(StateDeleting, StateLoaded) {
		return ErrNotReady
	}
	return nil
}

// ConfirmDelete deletes the record. On success the page navigates to the
// list; otherwise it goes back to StateLoaded.
func (p *SelectPage) ConfirmDelete(ctx context.Context) error {
	if p.State() != StateDeleting {
		return ErrNotReady
	}
	if !p.flight.begin() {
		return ErrBusy
	}
	defer p.flight.end()

	res, err := p.deps.API.Delete(ctx, p.id)
	if err != nil {
		p.deps.Logger.Error("❌ [SelectPage] Failed to delete user", "user_id", p.id, "error", err)
		p.deps.Notifier.Notify(err.Error(), LevelDanger)
		p.setState(StateLoaded)
		return err
	}
	if !res.OK {
		p.deps.Notifier.Notify(res.Error, LevelWarning)
		p.setState(StateLoaded)
		return nil
	}

	p.setState(StateNavigatedAway)
	p.deps.Logger.Info("🗑️ [SelectPage] User deleted", "user_id", p.id)
	p.deps.Navigator.ToList()
	return nil
}

func (p *SelectPage) transition(from, to SelectState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != from {
		return false
	}
	p.state = to
	return true
}

func (p *SelectPage) setState(s SelectState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
