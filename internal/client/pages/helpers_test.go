package pages_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/testutil"
)

type toast struct {
	Message string
	Level   pages.Level
}

// recorder is both Notifier and Navigator.
type recorder struct {
	mu       sync.Mutex
	toasts   []toast
	toList   int
	selected []uint
}

func (r *recorder) Notify(message string, level pages.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{message, level})
}

func (r *recorder) ToList() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toList++
}

func (r *recorder) ToSelect(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = append(r.selected, id)
}

func (r *recorder) last() toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

type MockUsersAPI struct {
	mock.Mock
}

func (m *MockUsersAPI) Create(ctx context.Context, req dto.UserRequest) (client.Result[dto.User], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(client.Result[dto.User]), args.Error(1)
}

func (m *MockUsersAPI) List(ctx context.Context) (client.Result[[]dto.User], error) {
	args := m.Called(ctx)
	return args.Get(0).(client.Result[[]dto.User]), args.Error(1)
}

func (m *MockUsersAPI) Get(ctx context.Context, id uint) (client.Result[dto.User], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(client.Result[dto.User]), args.Error(1)
}

func (m *MockUsersAPI) Update(ctx context.Context, id uint, req dto.UserRequest) (client.Result[dto.User], error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(client.Result[dto.User]), args.Error(1)
}

func (m *MockUsersAPI) Delete(ctx context.Context, id uint) (client.Result[dto.User], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(client.Result[dto.User]), args.Error(1)
}

// liveDeps wires pages to a real server.
func liveDeps(t *testing.T) (pages.Deps, *recorder, *client.APIClient) {
	t.Helper()
	_, baseURL := testutil.NewServer(t)
	api := client.NewAPIClient(baseURL, 5*time.Second, logger.Discard())
	rec := &recorder{}
	return pages.Deps{
		API:       api,
		Validator: testutil.NewValidator(t, "pt_BR"),
		Notifier:  rec,
		Navigator: rec,
		Logger:    logger.Discard(),
	}, rec, api
}

func mockDeps(t *testing.T) (pages.Deps, *recorder, *MockUsersAPI) {
	t.Helper()
	api := &MockUsersAPI{}
	rec := &recorder{}
	return pages.Deps{
		API:       api,
		Validator: testutil.NewValidator(t, "pt_BR"),
		Notifier:  rec,
		Navigator: rec,
		Logger:    logger.Discard(),
	}, rec, api
}

func seed(t *testing.T, api *client.APIClient, email, name string) dto.User {
	t.Helper()
	res, err := api.Create(context.Background(), dto.UserRequest{Email: email, Password: testutil.ValidPassword, Name: name})
	require.NoError(t, err)
	require.True(t, res.OK, res.Error)
	return res.Value
}

func fill(f *pages.Form, email, password, name string) {
	f.Set("email", email)
	f.Set("password", password)
	f.Set("name", name)
}
