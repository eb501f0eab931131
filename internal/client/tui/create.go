package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

type createModel struct {
	page  *pages.CreatePage
	form  formView
	title string
}

func newCreateModel(page *pages.CreatePage, v *validation.Validator) createModel {
	return createModel{page: page, form: newFormView(page.Form(), v), title: v.Text("title_create")}
}

func (m createModel) submitCmd(ctx context.Context) tea.Cmd {
	page := m.page
	return func() tea.Msg {
		return doneMsg{screen: screenCreate, err: page.Submit(ctx)}
	}
}

func (m createModel) Update(ctx context.Context, msg tea.Msg) (createModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.String() == "ctrl+s", msg.Type == tea.KeyEnter && m.form.lastFocused():
			return m, m.submitCmd(ctx)
		case msg.Type == tea.KeyEnter:
			m.form.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m createModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	b.WriteString(m.form.View())
	if m.page.Busy() {
		b.WriteString(blurredStyle.Render("Saving...") + "\n")
	}
	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: save • esc: back to list"))
	return b.String()
}
