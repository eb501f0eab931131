package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

var formFields = []string{"name", "email", "password"}

// formView renders a pages.Form as three text inputs and writes every
// keystroke back into it.
type formView struct {
	form     *pages.Form
	inputs   []textinput.Model
	labels   []string
	focusIdx int
}

func newFormView(form *pages.Form, v *validation.Validator) formView {
	inputs := make([]textinput.Model, len(formFields))
	labels := make([]string, len(formFields))
	for i, name := range formFields {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 255
		in.Width = 48
		if name == "password" {
			in.EchoMode = textinput.EchoPassword
		}
		inputs[i] = in
		labels[i] = v.Label(name)
	}
	inputs[0].Focus()
	return formView{form: form, inputs: inputs, labels: labels}
}

// load copies the form values into the inputs.
func (f *formView) load() {
	for i, name := range formFields {
		f.inputs[i].SetValue(f.form.Get(name))
	}
}

func (f formView) lastFocused() bool {
	return f.focusIdx == len(f.inputs)-1
}

func (f formView) Update(msg tea.Msg) (formView, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			f.move(1)
			return f, nil
		case tea.KeyShiftTab, tea.KeyUp:
			f.move(-1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	before := f.inputs[f.focusIdx].Value()
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	if after := f.inputs[f.focusIdx].Value(); after != before {
		f.form.Set(formFields[f.focusIdx], after)
	}
	return f, cmd
}

func (f *formView) move(delta int) {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = (f.focusIdx + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focusIdx].Focus()
}

func (f formView) View() string {
	var b strings.Builder
	for i, name := range formFields {
		label := labelStyle.Render(f.labels[i])
		if i == f.focusIdx {
			label = focusedStyle.Bold(true).Render(f.labels[i])
		}
		b.WriteString(label + "\n")
		b.WriteString(f.inputs[i].View() + "\n")
		if msg := f.form.VisibleError(name); msg != "" {
			b.WriteString(fieldErrorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
