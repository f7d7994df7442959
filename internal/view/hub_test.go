package view

import (
	"context"
	"testing"
)

func TestEnsureSessionReturnsSameSessionForCode(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(ctx, testLifts())

	reply := make(chan *Session, 1)
	h.Inbox() <- EnsureSession{Code: "LODGE", Reply: reply}
	first := <-reply

	h.Inbox() <- EnsureSession{Code: "LODGE", Reply: reply}
	second := <-reply

	if first == nil || first != second {
		t.Fatalf("expected the same session for one code")
	}

	h.Inbox() <- GetSession{Code: "OTHER", Reply: reply}
	if got := <-reply; got != nil {
		t.Fatalf("expected nil for unknown code, got %v", got)
	}
}
