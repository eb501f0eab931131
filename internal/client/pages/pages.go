// Package pages holds the client screens as plain controllers: create, list
// and select/edit. They talk to the API through UsersAPI and report back
// through a Notifier and a Navigator, so any front-end can drive them.
package pages

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

var (
	// ErrBusy is returned when an action is triggered while the page still
	// waits on a previous request.
	ErrBusy = errors.New("pages: request already in flight")
	// ErrFormInvalid is returned when a submit is attempted with an invalid form.
	ErrFormInvalid = errors.New("pages: form is invalid")
	// ErrNotReady is returned when the select page is not in a state that
	// allows the action.
	ErrNotReady = errors.New("pages: action not allowed in current state")
)

// Level is the color of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string, level Level)
}

// Navigator moves between screens.
type Navigator interface {
	ToList()
	ToSelect(id uint)
}

// UsersAPI is the part of the API client the pages use.
type UsersAPI interface {
	Create(ctx context.Context, req dto.UserRequest) (client.Result[dto.User], error)
	List(ctx context.Context) (client.Result[[]dto.User], error)
	Get(ctx context.Context, id uint) (client.Result[dto.User], error)
	Update(ctx context.Context, id uint, req dto.UserRequest) (client.Result[dto.User], error)
	Delete(ctx context.Context, id uint) (client.Result[dto.User], error)
}

// Deps is what every page needs.
type Deps struct {
	API       UsersAPI
	Validator *validation.Validator
	Notifier  Notifier
	Navigator Navigator
	Logger    *slog.Logger
}

type inflight struct {
	busy atomic.Bool
}

func (f *inflight) begin() bool { return f.busy.CompareAndSwap(false, true) }
func (f *inflight) end()        { f.busy.Store(false) }

// Busy reports whether a request is pending.
func (f *inflight) Busy() bool { return f.busy.Load() }
