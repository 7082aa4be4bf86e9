package core

import "time"

// Session is the top-level container scoping one runtime conversation
// universe: its users, its groups and the fused shared contexts of groups
// that enable context sharing (keyed by group id).
//
// A session holds no lock of its own. All access goes through the owning
// Store, whose lock also guards the cross-map invariants between users and
// groups.
type Session struct {
	ID             string                 `json:"id"`
	Users          map[string]*User       `json:"users"`
	Groups         map[string]*Group      `json:"groups"`
	ActiveContexts map[string]UserContext `json:"active_contexts,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	LastActivity   time.Time              `json:"last_activity"`
}

// NewSession creates an empty session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Users:          make(map[string]*User),
		Groups:         make(map[string]*Group),
		ActiveContexts: make(map[string]UserContext),
		CreatedAt:      now,
		LastActivity:   now,
	}
}

// Touch stamps the last-activity timestamp.
func (s *Session) Touch() { s.LastActivity = time.Now() }

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:             s.ID,
		Users:          make(map[string]*User, len(s.Users)),
		Groups:         make(map[string]*Group, len(s.Groups)),
		ActiveContexts: make(map[string]UserContext, len(s.ActiveContexts)),
		CreatedAt:      s.CreatedAt,
		LastActivity:   s.LastActivity,
	}
	for id, u := range s.Users {
		clone.Users[id] = u.Clone()
	}
	for id, g := range s.Groups {
		clone.Groups[id] = g.Clone()
	}
	for id, c := range s.ActiveContexts {
		clone.ActiveContexts[id] = c.Clone()
	}
	return clone
}
