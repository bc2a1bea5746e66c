package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	tradeinput "github.com/wagiedev/trade-input-go"
)

var (
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	quitKey   = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
)

// presenterMsg carries one presenter event into the bubbletea loop.
type presenterMsg tradeinput.Event

// disconnectedMsg is sent once the host connection ends.
type disconnectedMsg struct {
	err error
}

// model renders the pending input of one client.
type model struct {
	ctx    context.Context
	client tradeinput.Client
	events <-chan tradeinput.Event

	input  textinput.Model
	prompt *tradeinput.Prompt
	hint   string
	status string
}

func newModel(ctx context.Context, client tradeinput.Client, events <-chan tradeinput.Event) *model {
	input := textinput.New()
	input.CharLimit = tradeinput.MaxInputLength
	input.Width = tradeinput.MaxInputLength + 1

	return &model{
		ctx:    ctx,
		client: client,
		events: events,
		input:  input,
		status: "Waiting for the host...",
	}
}

// Init initializes the model.
func (m *model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.listenEvents(),
		m.waitDisconnect(),
	)
}

// Update handles messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case presenterMsg:
		m.handleEvent(tradeinput.Event(msg))

		return m, m.listenEvents()

	case disconnectedMsg:
		m.prompt = nil
		m.input.Blur()

		if msg.err != nil {
			m.status = fmt.Sprintf("Disconnected: %v", msg.err)
		} else {
			m.status = "Host closed the connection"
		}

		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit

		case m.prompt == nil:
			return m, nil

		case key.Matches(msg, submitKey):
			m.submit()

			return m, nil

		case key.Matches(msg, cancelKey):
			m.cancel()

			return m, nil
		}
	}

	if m.prompt == nil {
		return m, nil
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != before {
		text, err := m.client.TextChanged(m.ctx, value)
		if err != nil {
			// Rejected or stale: show what the session holds.
			m.input.SetValue(text)
		}
	}

	return m, cmd
}

func (m *model) handleEvent(ev tradeinput.Event) {
	switch {
	case ev.Open != nil:
		prompt := *ev.Open
		m.prompt = &prompt
		m.hint = ""
		m.status = ""
		m.input.Reset()
		m.input.Placeholder = placeholder(prompt)
		m.input.Focus()

	case ev.Close != nil:
		if m.prompt == nil || m.prompt.ID != ev.Close.ID {
			return
		}

		m.prompt = nil
		m.hint = ""
		m.input.Blur()

		switch ev.Close.Outcome {
		case tradeinput.OutcomeAccepted:
			m.status = "Sent " + ev.Close.Kind.String()
		case tradeinput.OutcomeExpired:
			m.status = "Timed out waiting for input"
		default:
			m.status = "Cancelled"
		}
	}
}

func (m *model) submit() {
	_, err := m.client.Submit(m.ctx)

	var vErr *tradeinput.ValidationError

	switch {
	case err == nil:
		m.hint = ""
	case errors.As(err, &vErr):
		m.hint = vErr.Error()
	default:
		m.hint = err.Error()
	}
}

func (m *model) cancel() {
	if _, err := m.client.Cancel(m.ctx); err != nil {
		m.hint = err.Error()
	}
}

func (m *model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		ev := <-m.events

		return presenterMsg(ev)
	}
}

func (m *model) waitDisconnect() tea.Cmd {
	return func() tea.Msg {
		<-m.client.Done()

		return disconnectedMsg{err: m.client.Err()}
	}
}

// View renders the UI.
func (m *model) View() string {
	var b strings.Builder

	if m.prompt == nil {
		b.WriteString(titleStyle.Render("Trade input"))
		b.WriteString("\n")
		b.WriteString(statusLine(m.status))

		return panelStyle.Render(b.String()) + "\n"
	}

	b.WriteString(titleStyle.Render(title(*m.prompt)))
	b.WriteString("\n")

	if m.prompt.Text != "" {
		b.WriteString(promptStyle.Render(m.prompt.Text))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.hint != "" {
		b.WriteString(hintStyle.Render(m.hint))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(helpLine()))

	return activePanelStyle.Render(b.String()) + "\n"
}

func statusLine(status string) string {
	if strings.HasPrefix(status, "Sent") {
		return acceptedStyle.Render(status)
	}

	return statusStyle.Render(status)
}

func title(prompt tradeinput.Prompt) string {
	switch prompt.Kind {
	case tradeinput.KindPrice:
		return "Enter a price"
	case tradeinput.KindQuantity:
		return fmt.Sprintf("Enter a quantity (1-%d)", prompt.Bound)
	case tradeinput.KindSearch:
		return "Search"
	default:
		return "Input"
	}
}

func placeholder(prompt tradeinput.Prompt) string {
	switch prompt.Kind {
	case tradeinput.KindPrice:
		return "0.00"
	case tradeinput.KindQuantity:
		return "1"
	default:
		return fmt.Sprintf("at least %d characters", tradeinput.MinSearchLength)
	}
}

func helpLine() string {
	parts := make([]string, 0, 3)

	for _, binding := range []key.Binding{submitKey, cancelKey, quitKey} {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}

	return strings.Join(parts, " · ")
}
