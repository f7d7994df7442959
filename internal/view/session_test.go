package view

import (
	"context"
	"testing"
	"time"

	"alpenworks.io/resort-services/internal/resort"
)

func testLifts() []resort.Lift {
	mk := func(id string) resort.Lift {
		return resort.Lift{
			ID:         id,
			Name:       "Lift " + id,
			Status:     resort.StatusOpen,
			Type:       resort.TypeQuad,
			Difficulty: resort.DifficultyIntermediate,
			Path:       []resort.Point{{X: 120, Y: 150}, {X: 180, Y: 80}},
		}
	}
	return []resort.Lift{mk("1"), mk("2"), mk("3")}
}

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// closed channel means no further snapshots; fine
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
	}
}

func getView(t *testing.T, s *Session) State {
	t.Helper()
	reply := make(chan State, 1)
	s.Inbox() <- GetView{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for view")
		return State{} // unreachable
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewSession(ctx, testLifts())
}

func TestJoinReceivesCurrentSnapshot(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}

	snap := recvSnapshot(t, out, time.Second)
	if snap.Version != 0 || snap.SelectedLiftID != "" {
		t.Fatalf("initial snapshot = %+v, want version 0 and no selection", snap)
	}
}

func TestSelectBroadcastsAndBumpsVersion(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second) // initial

	s.Inbox() <- Select{LiftID: "1"}

	snap := recvSnapshot(t, out, time.Second)
	if snap.SelectedLiftID != "1" {
		t.Fatalf("selected = %q, want 1", snap.SelectedLiftID)
	}
	if snap.Version != 1 {
		t.Fatalf("version = %d, want 1", snap.Version)
	}
}

func TestSelectReplacesPriorSelection(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "1"}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "2"}
	snap := recvSnapshot(t, out, time.Second)
	if snap.SelectedLiftID != "2" {
		t.Fatalf("selected = %q, want 2", snap.SelectedLiftID)
	}

	v := getView(t, s)
	if v.SelectedLiftID != "2" {
		t.Fatalf("view selected = %q, want exactly one selected lift: 2", v.SelectedLiftID)
	}
}

func TestReselectingSameIDIsIdempotent(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "1"}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "1"}
	recvNoSnapshot(t, out, 100*time.Millisecond)

	v := getView(t, s)
	if v.Version != 1 || v.SelectedLiftID != "1" {
		t.Fatalf("view = %+v, want version 1 selected 1", v)
	}
}

func TestUnknownLiftIDIsDropped(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "99"}
	recvNoSnapshot(t, out, 100*time.Millisecond)

	v := getView(t, s)
	if v.Version != 0 || v.SelectedLiftID != "" {
		t.Fatalf("view = %+v, want untouched state", v)
	}
}

func TestHoverNeverMutatesSelection(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Select{LiftID: "1"}
	recvSnapshot(t, out, time.Second)

	s.Inbox() <- Hover{ClientID: "a", LiftID: "3"}
	recvNoSnapshot(t, out, 100*time.Millisecond)

	v := getView(t, s)
	if v.SelectedLiftID != "1" {
		t.Fatalf("hover mutated selection: %+v", v)
	}
	if v.Hovered["a"] != "3" {
		t.Fatalf("hover not recorded: %+v", v.Hovered)
	}
}

func TestLeaveClosesOutbox(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "a", Outbox: out}
	recvSnapshot(t, out, time.Second)

	// Mirror the websocket writer: it ranges over the outbox and only
	// exits once the channel closes.
	writerDone := make(chan struct{})
	go func() {
		for range out {
		}
		close(writerDone)
	}()

	s.Inbox() <- Leave{ClientID: "a"}

	select {
	case <-writerDone:
	case <-time.After(time.Second):
		t.Fatalf("outbox not closed after Leave; writer goroutine leaks")
	}

	v := getView(t, s)
	if v.NumClients != 0 {
		t.Fatalf("clients = %d after Leave, want 0", v.NumClients)
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	s := newTestSession(t)

	// Unbuffered outbox that nobody reads after join.
	out := make(chan Snapshot, 1)
	s.Inbox() <- Join{ClientID: "slow", Outbox: out}
	recvSnapshot(t, out, time.Second)

	// Fill the buffer, then force one more broadcast.
	s.Inbox() <- Select{LiftID: "1"}
	s.Inbox() <- Select{LiftID: "2"}

	deadline := time.After(time.Second)
	for {
		v := getView(t, s)
		if v.NumClients == 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("slow client was not dropped: %+v", v)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
