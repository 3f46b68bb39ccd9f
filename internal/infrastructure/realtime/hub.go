package realtime

import (
	"sync"
)

// Hub owns the registry of live sessions and their bound identities.
// A session is registered on connect, bound to a user id once the auth
// handshake succeeds, and removed on disconnect. Callers never iterate
// the raw registry; fan-out goes through Broadcast/NotifyUser which
// snapshot under the read lock before writing to sockets.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]Session // sessionID -> session
	identities map[string]string  // sessionID -> bound userID, "" until auth
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]Session),
		identities: make(map[string]string),
	}
}

// Register tracks a freshly connected, not yet authenticated session.
func (h *Hub) Register(s Session) {
	h.mu.Lock()
	h.sessions[s.SessionID()] = s
	h.identities[s.SessionID()] = ""
	h.mu.Unlock()
}

// Unregister removes a session if it is still tracked.
func (h *Hub) Unregister(s Session) {
	h.mu.Lock()
	delete(h.sessions, s.SessionID())
	delete(h.identities, s.SessionID())
	h.mu.Unlock()
}

// Bind attaches a verified user id to the session. The binding happens at
// most once per session lifetime; rebinding and binding an untracked
// session report false.
func (h *Hub) Bind(s Session, userID string) bool {
	if userID == "" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	current, ok := h.identities[s.SessionID()]
	if !ok || current != "" {
		return false
	}
	h.identities[s.SessionID()] = userID
	return true
}

// UserID returns the identity bound to the session, if any.
func (h *Hub) UserID(s Session) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id := h.identities[s.SessionID()]
	return id, id != ""
}

// Broadcast delivers payload to every authenticated session whose bound
// user id satisfies allow. A nil allow matches everyone. The registry is
// snapshotted before writing so a concurrent disconnect cannot corrupt
// iteration. Returns the number of sessions written to.
func (h *Hub) Broadcast(payload []byte, allow func(userID string) bool) int {
	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		userID := h.identities[id]
		if userID == "" {
			continue
		}
		if allow != nil && !allow(userID) {
			continue
		}
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if err := s.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// NotifyUser delivers payload to every session bound to the given user.
// A user may hold several concurrent sockets (phone + browser).
func (h *Hub) NotifyUser(userID string, payload []byte) int {
	if userID == "" {
		return 0
	}
	return h.Broadcast(payload, func(id string) bool { return id == userID })
}

// Len reports the number of tracked sessions, authenticated or not.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close terminates all tracked sessions and clears the registry.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]Session)
	h.identities = make(map[string]string)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close(1001, "hub shutdown")
	}
}
