package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/testutil"
)

func setupRoot(t *testing.T) (RootModel, *client.APIClient) {
	t.Helper()
	_, baseURL := testutil.NewServer(t)
	api := client.NewAPIClient(baseURL, 5*time.Second, logger.Discard())
	return NewRootModel(context.Background(), api, testutil.NewValidator(t, "pt_BR"), logger.Discard()), api
}

func update(t *testing.T, m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_ListLoads(t *testing.T) {
	m, api := setupRoot(t)
	_, err := api.Create(context.Background(), dto.UserRequest{Email: "a@b.com", Password: testutil.ValidPassword, Name: "Ann"})
	require.NoError(t, err)

	msg := m.list.enterCmd(m.ctx)()
	m, _ = update(t, m, msg)

	require.Len(t, m.list.users, 1)
	assert.Contains(t, m.View(), "Ann")
	assert.Contains(t, m.View(), "a@b.com")
}

func TestRootModel_StaleDoneIgnored(t *testing.T) {
	m, _ := setupRoot(t)
	m.screen = screenCreate

	next, cmd := update(t, m, doneMsg{screen: screenList})

	assert.Nil(t, cmd)
	assert.Equal(t, screenCreate, next.screen)
}

func TestRootModel_Toast(t *testing.T) {
	m, _ := setupRoot(t)

	m.bridge.Notify("Usuário criado com sucesso!", pages.LevelSuccess)
	m, _ = update(t, m, m.bridge.WaitForMsg())
	assert.Contains(t, m.View(), "Usuário criado com sucesso!")

	// An older timer does not clear a newer toast.
	m, _ = update(t, m, toastMsg{text: "second", level: pages.LevelWarning})
	m, _ = update(t, m, toastExpiredMsg{seq: 1})
	assert.Contains(t, m.View(), "second")

	m, _ = update(t, m, toastExpiredMsg{seq: m.toastSeq})
	assert.NotContains(t, m.View(), "second")
}

func TestRootModel_Navigation(t *testing.T) {
	m, api := setupRoot(t)
	created, err := api.Create(context.Background(), dto.UserRequest{Email: "a@b.com", Password: testutil.ValidPassword, Name: "Ann"})
	require.NoError(t, err)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, screenCreate, m.screen)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenList, m.screen)

	m, cmd := m.navigate(navigateMsg{to: screenSelect, id: created.Value.ID})
	require.NotNil(t, cmd)
	assert.Equal(t, screenSelect, m.screen)

	m, _ = update(t, m, cmd())
	assert.Equal(t, pages.StateLoaded, m.sel.page.State())
	assert.Contains(t, m.View(), "a@b.com")
}

func TestRootModel_Quit(t *testing.T) {
	m, _ := setupRoot(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, "Bye!\n", m.View())
}
