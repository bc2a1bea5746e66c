package tradeinput

import (
	"context"
	"iter"
)

// Event is one presenter notification. Exactly one of Open and Close is set.
type Event struct {
	Open  *Prompt
	Close *Closed
}

// ChannelPresenter is a Presenter that forwards notifications onto a
// buffered channel, for UIs that run their own event loop.
//
// It never blocks the session: when the buffer is full the oldest event is
// discarded to make room.
type ChannelPresenter struct {
	events chan Event
}

// Compile-time verification that ChannelPresenter implements Presenter.
var _ Presenter = (*ChannelPresenter)(nil)

// NewChannelPresenter creates a presenter buffering up to size events.
// A size below 1 is treated as 1.
func NewChannelPresenter(size int) *ChannelPresenter {
	return &ChannelPresenter{events: make(chan Event, max(size, 1))}
}

// OnOpen implements Presenter.
func (p *ChannelPresenter) OnOpen(prompt Prompt) {
	p.push(Event{Open: &prompt})
}

// OnClose implements Presenter.
func (p *ChannelPresenter) OnClose(closed Closed) {
	p.push(Event{Close: &closed})
}

// Events returns the event channel. It is never closed.
func (p *ChannelPresenter) Events() <-chan Event {
	return p.events
}

// All yields events as they arrive until ctx is cancelled.
func (p *ChannelPresenter) All(ctx context.Context) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			select {
			case ev := <-p.events:
				if !yield(ev) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

// push is only called from the session goroutine, so a freed slot stays free.
func (p *ChannelPresenter) push(ev Event) {
	select {
	case p.events <- ev:
		return
	default:
	}

	select {
	case <-p.events:
	default:
	}

	select {
	case p.events <- ev:
	default:
	}
}
