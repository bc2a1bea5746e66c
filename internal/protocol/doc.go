// Package protocol implements the trade input state machine and the inbound
// request dispatcher.
//
// A Session owns the single pending input of one connection. Every transition
// runs on the goroutine executing Session.Run, so the dispatcher (network
// side) and a presenter (UI side) never touch the pending input directly:
//
//	session := protocol.NewSession(log, transport, presenter, m, protocol.SessionConfig{})
//	go session.Run(ctx)
//
//	dispatcher := protocol.NewDispatcher(log, transport, session, m)
//	dispatcher.Start(ctx)
//
//	// From the UI:
//	session.TextChanged(ctx, "12")
//	resp, err := session.Submit(ctx)
//
// A newer request replaces the pending one without a response being sent for
// it. Each pending input receives at most one response.
package protocol
