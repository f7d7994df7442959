package resort_web

import (
	"net/url"
	"strings"
)

// DefaultSession is the shared view everyone lands on without an
// explicit session code.
const DefaultSession = "LODGE"

type MapQuery struct {
	Selected string // lift id, or "" for no selection
	Session  string
}

func ParseMapQuery(values url.Values) MapQuery {
	session := strings.ToUpper(strings.TrimSpace(values.Get("session")))
	if session == "" {
		session = DefaultSession
	}
	return MapQuery{
		Selected: strings.TrimSpace(values.Get("selected")),
		Session:  session,
	}
}
