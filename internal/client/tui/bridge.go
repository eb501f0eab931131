package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/pages"
)

type screen int

const (
	screenList screen = iota
	screenCreate
	screenSelect
)

type toastMsg struct {
	text  string
	level pages.Level
}

type toastExpiredMsg struct{ seq int }

type navigateMsg struct {
	to screen
	id uint
}

// doneMsg reports that a page action running in a command has returned.
type doneMsg struct {
	screen screen
	err    error
}

// bridge implements pages.Notifier and pages.Navigator. Pages call it from
// command goroutines; the program receives the calls as messages through
// WaitForMsg.
type bridge struct {
	msgs chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{msgs: make(chan tea.Msg, 16)}
}

func (b *bridge) Notify(message string, level pages.Level) {
	b.msgs <- toastMsg{text: message, level: level}
}

func (b *bridge) ToList() {
	b.msgs <- navigateMsg{to: screenList}
}

func (b *bridge) ToSelect(id uint) {
	b.msgs <- navigateMsg{to: screenSelect, id: id}
}

// WaitForMsg is a tea.Cmd that waits for the next page callback.
func (b *bridge) WaitForMsg() tea.Msg {
	return <-b.msgs
}
