package session

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Session is one live notification socket of a user. A user may hold several
// at once, one per open tab or device.
type Session struct {
	UserID string
	Conn   *websocket.Conn
	ConnMu sync.Mutex
}

var (
	sessions   = make(map[string]map[*Session]struct{})
	sessionsMu sync.RWMutex
)

func Register(userID string, conn *websocket.Conn) *Session {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	s := &Session{UserID: userID, Conn: conn}
	set, ok := sessions[userID]
	if !ok {
		set = make(map[*Session]struct{})
		sessions[userID] = set
	}
	set[s] = struct{}{}
	return s
}

// Unregister drops s and leaves the user's other sockets alone.
func Unregister(s *Session) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	set, ok := sessions[s.UserID]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(sessions, s.UserID)
	}
}

// Get returns a snapshot of the user's live sessions on this instance.
func Get(userID string) []*Session {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()

	set := sessions[userID]
	out := make([]*Session, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Count returns how many users have at least one live session.
func Count() int {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()

	return len(sessions)
}
