package view

import (
	"context"

	"alpenworks.io/resort-services/internal/resort"
)

// Msg is a message understood by a map view session.
type Msg interface{ isSessionMsg() }

// Join registers a client; the current snapshot is delivered to its
// outbox immediately.
type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

// Select sets the session's selected lift. Unknown ids are dropped
// (the state domain is closed over the seeded collection) and
// re-selecting the current id changes nothing.
type Select struct{ LiftID string }

func (Select) isSessionMsg() {}

// Hover records which lift a client is hovering. Transient,
// per-client, and never touches the selection.
type Hover struct {
	ClientID string
	LiftID   string
}

func (Hover) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// GetView reflects internal state without data races; used by tests
// and the ctl status command.
type GetView struct {
	Reply chan State
}

func (GetView) isSessionMsg() {}

// Snapshot is what clients receive after every selection change.
type Snapshot struct {
	Version        int
	SelectedLiftID string
}

// State is the full session state as seen through GetView.
type State struct {
	Version        int
	SelectedLiftID string
	NumClients     int
	Hovered        map[string]string
}

// Session owns the selection state for one shared map view. All
// mutation goes through the inbox; there is no other writer.
type Session struct {
	inbox    chan Msg
	known    map[string]bool
	selected string
	hovered  map[string]string
	version  int
	clients  map[string]chan Snapshot
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSession(parent context.Context, lifts []resort.Lift) *Session {
	ctx, cancel := context.WithCancel(parent)

	known := make(map[string]bool, len(lifts))
	for _, l := range lifts {
		known[l.ID] = true
	}

	s := &Session{
		inbox:   make(chan Msg, 64),
		known:   known,
		hovered: make(map[string]string),
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

// Inbox exposes the message channel to the websocket layer and tests.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: s.version, SelectedLiftID: s.selected}

			case Leave:
				// Close the outbox so the client's writer goroutine
				// unblocks and exits, same as broadcast and shutdown.
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
				}
				delete(s.hovered, msg.ClientID)

			case Select:
				if !s.known[msg.LiftID] {
					break
				}
				if msg.LiftID == s.selected {
					// Idempotent: same id leaves state and output
					// unchanged, so no version bump and no broadcast.
					break
				}
				s.selected = msg.LiftID
				s.version++
				s.broadcast(Snapshot{Version: s.version, SelectedLiftID: s.selected})

			case Hover:
				if !s.known[msg.LiftID] {
					break
				}
				s.hovered[msg.ClientID] = msg.LiftID

			case GetView:
				hovered := make(map[string]string, len(s.hovered))
				for k, v := range s.hovered {
					hovered[k] = v
				}
				msg.Reply <- State{
					Version:        s.version,
					SelectedLiftID: s.selected,
					NumClients:     len(s.clients),
					Hovered:        hovered,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow or gone; drop it.
			close(ch)
			delete(s.clients, id)
			delete(s.hovered, id)
		}
	}
}
