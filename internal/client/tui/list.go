package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
)

type listModel struct {
	page  *pages.ListPage
	table table.Model
	users []dto.User
	title string
}

func newListModel(page *pages.ListPage, title string) listModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 28},
		{Title: "Email", Width: 34},
		{Title: "Created", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return listModel{page: page, table: t, title: title}
}

func (m listModel) enterCmd(ctx context.Context) tea.Cmd {
	page := m.page
	return func() tea.Msg {
		return doneMsg{screen: screenList, err: page.Enter(ctx)}
	}
}

// sync rebuilds the rows from the page.
func (m *listModel) sync() {
	m.users = m.page.Users()
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			u.Email,
			pages.FormatTimestamp(u.CreatedAt, time.Local),
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m listModel) selected() (dto.User, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.users) {
		return dto.User{}, false
	}
	return m.users[i], true
}

func (m listModel) Update(ctx context.Context, msg tea.Msg) (listModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "r":
			return m, m.enterCmd(ctx)
		case "enter":
			if u, ok := m.selected(); ok {
				m.page.Open(u.ID)
			}
			return m, nil
		case "d":
			u, ok := m.selected()
			if !ok {
				return m, nil
			}
			page := m.page
			return m, func() tea.Msg {
				return doneMsg{screen: screenList, err: page.Delete(ctx, u.ID)}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	if len(m.users) == 0 {
		b.WriteString(blurredStyle.Render("No users yet.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}
	b.WriteString(helpStyle.Render("enter: open • n: new • d: delete • r: refresh • q: quit"))
	return b.String()
}
