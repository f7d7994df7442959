package resort_web

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"alpenworks.io/resort-services/internal/view"
)

type clientMessage struct {
	Type   string `json:"type"`
	LiftID string `json:"lift_id,omitempty"`
}

type serverMessage struct {
	Type           string `json:"type"` // "ViewSnapshot" | "Error"
	Version        int    `json:"version,omitempty"`
	SelectedLiftID string `json:"selected_lift_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (server *ResortWebServer) handleWS(w http.ResponseWriter, r *http.Request) {
	query := ParseMapQuery(r.URL.Query())

	reply := make(chan *view.Session, 1)
	server.hub.Inbox() <- view.EnsureSession{Code: query.Session, Reply: reply}
	session := <-reply
	if session == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	out := make(chan view.Snapshot, 8)
	clientID := randID(6)

	session.Inbox() <- view.Join{ClientID: clientID, Outbox: out}
	defer func() { session.Inbox() <- view.Leave{ClientID: clientID} }()

	// Writer goroutine: every selection change becomes one snapshot
	// frame.
	writeCtx, writeCancel := context.WithCancel(r.Context())
	defer writeCancel()
	go func() {
		for snap := range out {
			msg := serverMessage{
				Type:           "ViewSnapshot",
				Version:        snap.Version,
				SelectedLiftID: snap.SelectedLiftID,
			}
			payload, _ := json.Marshal(msg)
			ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
			_ = conn.Write(ctx, websocket.MessageText, payload)
			cancel()
		}
	}()

	// Reader loop
	for {
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		_, data, err := conn.Read(ctx)
		cancel()
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			return
		}

		var cm clientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			_ = conn.Write(r.Context(), websocket.MessageText,
				[]byte(`{"type":"Error","error":"bad json"}`))
			continue
		}

		msg, ok := toSessionMsg(cm, clientID)
		if !ok {
			_ = conn.Write(r.Context(), websocket.MessageText,
				[]byte(`{"type":"Error","error":"unknown type"}`))
			continue
		}

		session.Inbox() <- msg
	}
}

func toSessionMsg(m clientMessage, clientID string) (view.Msg, bool) {
	switch m.Type {
	case "SelectLift":
		return view.Select{LiftID: m.LiftID}, true
	case "HoverLift":
		return view.Hover{ClientID: clientID, LiftID: m.LiftID}, true
	default:
		return nil, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
