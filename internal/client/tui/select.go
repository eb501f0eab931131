package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

type selectModel struct {
	page      *pages.SelectPage
	form      formView
	validator *validation.Validator
}

func newSelectModel(page *pages.SelectPage, v *validation.Validator) selectModel {
	return selectModel{page: page, form: newFormView(page.Form(), v), validator: v}
}

func (m selectModel) loadCmd(ctx context.Context) tea.Cmd {
	page := m.page
	return func() tea.Msg {
		return doneMsg{screen: screenSelect, err: page.Load(ctx)}
	}
}

func (m selectModel) Update(ctx context.Context, msg tea.Msg) (selectModel, tea.Cmd) {
	page := m.page

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch page.State() {
		case pages.StateDeleting:
			switch msg.String() {
			case "y", "enter":
				return m, func() tea.Msg {
					return doneMsg{screen: screenSelect, err: page.ConfirmDelete(ctx)}
				}
			case "n", "esc":
				_ = page.CancelDelete()
			}
			return m, nil

		case pages.StateLoaded:
			switch msg.String() {
			case "ctrl+s":
				return m, func() tea.Msg {
					return doneMsg{screen: screenSelect, err: page.Update(ctx)}
				}
			case "ctrl+d":
				_ = page.RequestDelete()
				return m, nil
			}

		default:
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	var b strings.Builder
	page := m.page

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s #%d", m.validator.Text("title_select"), page.ID())) + "\n\n")

	switch page.State() {
	case pages.StateLoading:
		if msg := page.LoadError(); msg != "" {
			b.WriteString(fieldErrorStyle.Render(msg) + "\n")
		} else {
			b.WriteString(blurredStyle.Render("Loading...") + "\n")
		}
		b.WriteString(helpStyle.Render("esc: back to list"))
		return b.String()
	case pages.StateNavigatedAway:
		return b.String()
	}

	b.WriteString(labelStyle.Render(m.validator.Text("created_at")+": ") + page.CreatedAt() + "\n")
	b.WriteString(labelStyle.Render(m.validator.Text("updated_at")+": ") + page.UpdatedAt() + "\n\n")
	b.WriteString(m.form.View())

	switch {
	case page.State() == pages.StateDeleting:
		b.WriteString(promptStyle.Render(m.validator.Text("confirm_delete")+"  (y/n)") + "\n")
	case page.Busy():
		b.WriteString(blurredStyle.Render("Saving...") + "\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: save • ctrl+d: delete • esc: back to list"))
	return b.String()
}
