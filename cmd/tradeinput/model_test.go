package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	tradeinput "github.com/wagiedev/trade-input-go"
)

// fakeClient applies the live filter locally and records calls.
type fakeClient struct {
	text      string
	submitErr error
	submits   int
	cancels   int
	done      chan struct{}
}

var _ tradeinput.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{done: make(chan struct{})}
}

func (f *fakeClient) Start(context.Context, ...tradeinput.Option) error { return nil }

func (f *fakeClient) TextChanged(_ context.Context, raw string) (string, error) {
	if tradeinput.FilterText(tradeinput.KindQuantity, raw) != raw {
		return f.text, tradeinput.ErrTextRejected
	}

	f.text = raw

	return raw, nil
}

func (f *fakeClient) Submit(context.Context) (*tradeinput.InputResponse, error) {
	f.submits++

	if f.submitErr != nil {
		return nil, f.submitErr
	}

	return &tradeinput.InputResponse{Kind: tradeinput.KindQuantity, Value: f.text, Accepted: true}, nil
}

func (f *fakeClient) Cancel(context.Context) (*tradeinput.InputResponse, error) {
	f.cancels++

	return &tradeinput.InputResponse{Kind: tradeinput.KindQuantity}, nil
}

func (f *fakeClient) CurrentError(context.Context) *tradeinput.ValidationError { return nil }

func (f *fakeClient) Pending(context.Context) (tradeinput.PendingInput, error) {
	return tradeinput.PendingInput{}, tradeinput.ErrNoPendingInput
}

func (f *fakeClient) State(context.Context) tradeinput.State { return tradeinput.StateIdle }
func (f *fakeClient) Done() <-chan struct{}                  { return f.done }
func (f *fakeClient) Err() error                             { return nil }
func (f *fakeClient) Close() error                           { return nil }

func openQuantity(t *testing.T, m *model) {
	t.Helper()

	_, cmd := m.Update(presenterMsg{Open: &tradeinput.Prompt{
		ID:    "01J",
		Kind:  tradeinput.KindQuantity,
		Text:  "How many?",
		Bound: 10,
	}})
	require.NotNil(t, cmd, "model keeps listening for events")
}

func typeRunes(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_OpenShowsPrompt(t *testing.T) {
	m := newModel(context.Background(), newFakeClient(), nil)

	require.Contains(t, m.View(), "Waiting for the host")

	openQuantity(t, m)

	view := m.View()
	require.Contains(t, view, "Enter a quantity (1-10)")
	require.Contains(t, view, "How many?")
}

func TestModel_TypingGoesThroughFilter(t *testing.T) {
	client := newFakeClient()
	m := newModel(context.Background(), client, nil)
	openQuantity(t, m)

	typeRunes(m, "1x2")

	require.Equal(t, "12", m.input.Value())
	require.Equal(t, "12", client.text)
}

func TestModel_SubmitValidationHint(t *testing.T) {
	client := newFakeClient()
	client.submitErr = &tradeinput.ValidationError{Kind: tradeinput.KindQuantity, Code: tradeinput.CodeExceedsMax, Bound: 10}

	m := newModel(context.Background(), client, nil)
	openQuantity(t, m)
	typeRunes(m, "15")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 1, client.submits)
	require.Contains(t, m.View(), "quantity must not exceed 10")
}

func TestModel_CancelAndClose(t *testing.T) {
	client := newFakeClient()
	m := newModel(context.Background(), client, nil)
	openQuantity(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 1, client.cancels)

	m.Update(presenterMsg{Close: &tradeinput.Closed{ID: "01J", Kind: tradeinput.KindQuantity, Outcome: tradeinput.OutcomeCancelled}})

	require.Nil(t, m.prompt)
	require.Contains(t, m.View(), "Cancelled")
}

func TestModel_StaleCloseIgnored(t *testing.T) {
	m := newModel(context.Background(), newFakeClient(), nil)
	openQuantity(t, m)

	m.Update(presenterMsg{Close: &tradeinput.Closed{ID: "older", Outcome: tradeinput.OutcomeExpired}})

	require.NotNil(t, m.prompt)
}

func TestModel_KeysIgnoredWhileIdle(t *testing.T) {
	client := newFakeClient()
	m := newModel(context.Background(), client, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "5")

	require.Zero(t, client.submits)
	require.Empty(t, client.text)
}

func TestModel_DisconnectQuits(t *testing.T) {
	m := newModel(context.Background(), newFakeClient(), nil)

	_, cmd := m.Update(disconnectedMsg{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Contains(t, m.View(), "Host closed the connection")
}
