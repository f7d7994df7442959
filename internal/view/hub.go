package view

import (
	"context"

	"alpenworks.io/resort-services/internal/resort"
)

type HubMsg interface{ isHubMsg() }

type GetSession struct {
	Code  string
	Reply chan *Session
}

// EnsureSession returns the session for a code, creating it on first
// use so any viewer can open a shared map view by URL.
type EnsureSession struct {
	Code  string
	Reply chan *Session
}

type ShutdownHub struct{}

func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub manages map view sessions by code. Sessions share the one
// seeded lift collection; only selection state differs between them.
type Hub struct {
	inbox    chan HubMsg
	lifts    []resort.Lift
	sessions map[string]*Session
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, lifts []resort.Lift) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		lifts:    lifts,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // may be nil

			case EnsureSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				s := NewSession(h.ctx, h.lifts)
				h.sessions[msg.Code] = s
				msg.Reply <- s

			case ShutdownHub:
				for _, s := range h.sessions {
					s.Inbox() <- Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}
