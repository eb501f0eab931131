// Package tui is the terminal front-end of the user client. It routes between
// the list, create and select pages and renders them with bubbles widgets.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 4 * time.Second

type RootModel struct {
	ctx       context.Context
	bridge    *bridge
	deps      pages.Deps
	validator *validation.Validator

	screen screen
	list   listModel
	create createModel
	sel    selectModel

	toast    toastMsg
	toastSeq int
	quitting bool
}

// NewRootModel builds the program model. It starts on the list screen.
func NewRootModel(ctx context.Context, api pages.UsersAPI, v *validation.Validator, logger *slog.Logger) RootModel {
	b := newBridge()
	deps := pages.Deps{
		API:       api,
		Validator: v,
		Notifier:  b,
		Navigator: b,
		Logger:    logger,
	}

	return RootModel{
		ctx:       ctx,
		bridge:    b,
		deps:      deps,
		validator: v,
		screen:    screenList,
		list:      newListModel(pages.NewListPage(deps), v.Text("title_list")),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.bridge.WaitForMsg, m.list.enterCmd(m.ctx))
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 10; h > 3 {
			m.list.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

	case toastMsg:
		m.toastSeq++
		m.toast = msg
		seq := m.toastSeq
		return m, tea.Batch(
			m.bridge.WaitForMsg,
			tea.Tick(ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} }),
		)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = toastMsg{}
		}
		return m, nil

	case navigateMsg:
		var cmd tea.Cmd
		m, cmd = m.navigate(msg)
		return m, tea.Batch(m.bridge.WaitForMsg, cmd)

	case doneMsg:
		if msg.screen != m.screen {
			return m, nil
		}
		switch m.screen {
		case screenList:
			m.list.sync()
		case screenSelect:
			m.sel.form.load()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenList:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "n":
				return m.navigate(navigateMsg{to: screenCreate})
			}
		}
		m.list, cmd = m.list.Update(m.ctx, msg)

	case screenCreate:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			return m.navigate(navigateMsg{to: screenList})
		}
		m.create, cmd = m.create.Update(m.ctx, msg)

	case screenSelect:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.sel.page.State() != pages.StateDeleting {
			return m.navigate(navigateMsg{to: screenList})
		}
		m.sel, cmd = m.sel.Update(m.ctx, msg)
	}
	return m, cmd
}

// navigate switches screens. Every entry builds fresh page state, so nothing
// carries over between visits.
func (m RootModel) navigate(msg navigateMsg) (RootModel, tea.Cmd) {
	m.screen = msg.to
	switch msg.to {
	case screenList:
		return m, m.list.enterCmd(m.ctx)
	case screenCreate:
		m.create = newCreateModel(pages.NewCreatePage(m.deps), m.validator)
		return m, nil
	case screenSelect:
		m.sel = newSelectModel(pages.NewSelectPage(m.deps, msg.id), m.validator)
		return m, m.sel.loadCmd(m.ctx)
	}
	return m, nil
}

func (m RootModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var body string
	switch m.screen {
	case screenList:
		body = m.list.View()
	case screenCreate:
		body = m.create.View()
	case screenSelect:
		body = m.sel.View()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.toast.text != "" {
		style, ok := toastStyles[m.toast.level]
		if !ok {
			style = toastStyles[pages.LevelWarning]
		}
		b.WriteString("\n\n" + style.Render(m.toast.text))
	}
	return docStyle.Render(b.String())
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, api pages.UsersAPI, v *validation.Validator, logger *slog.Logger) error {
	p := tea.NewProgram(NewRootModel(ctx, api, v, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
