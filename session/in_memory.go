package session

import (
	"sync"
	"time"

	"github.com/sessionmesh/sessionmesh/core"
	"github.com/sessionmesh/sessionmesh/logging"
)

// Options configures an InMemoryStore.
type Options struct {
	// Publisher receives lifecycle events. Nil disables emission.
	Publisher core.Publisher
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// InMemoryStore is a volatile core.Store implementation keeping all sessions,
// users, groups and identity links in process-local maps. It is safe for
// concurrent access: one RWMutex guards every map so the cross-map invariants
// (user.GroupIDs vs group.Members) are never observable in an inconsistent
// intermediate state. Returned entities are clones to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu           sync.RWMutex
	sessions     map[string]*core.Session
	userSessions map[string]string // userID -> sessionID reverse index
	identities   map[string]string // externalID -> userID
	publisher    core.Publisher
	logger       logging.Logger
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		sessions:     make(map[string]*core.Session),
		userSessions: make(map[string]string),
		identities:   make(map[string]string),
		publisher:    opts.Publisher,
		logger:       opts.Logger,
	}
}

// WithPublisher wires an event publisher into the store.
func WithPublisher(p core.Publisher) func(o *Options) {
	return func(o *Options) { o.Publisher = p }
}

// WithLogger wires a logger into the store.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// publish emits an event when a publisher is configured. The publisher
// contract is fire-and-forget, so calling it with the lock held is safe.
func (s *InMemoryStore) publish(ev core.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

// CreateSession registers an empty session under id. Creation is idempotent:
// re-creating an existing id returns the current session untouched instead of
// silently discarding its users and groups.
func (s *InMemoryStore) CreateSession(id string) *core.Session {
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		clone := sess.Clone()
		s.mu.Unlock()
		return clone
	}
	sess := core.NewSession(id)
	s.sessions[id] = sess
	clone := sess.Clone()
	s.mu.Unlock()

	s.logger.Debug("session created", "session_id", id)
	s.publish(core.NewSessionCreatedEvent(id))
	return clone
}

// Session returns a clone of the session registered under id.
func (s *InMemoryStore) Session(id string) (*core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// JoinSession registers a user in a session, creating the session lazily.
// Explicit UserData fields win over defaults. Re-joining an existing user id
// updates the record in place (memberships and identity links survive) and
// marks it online.
func (s *InMemoryStore) JoinSession(userID, sessionID string, data core.UserData) *core.User {
	now := time.Now()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	created := false
	if !ok {
		sess = core.NewSession(sessionID)
		s.sessions[sessionID] = sess
		created = true
	}

	user, exists := sess.Users[userID]
	if !exists {
		user = &core.User{
			ID:          userID,
			Name:        userID,
			Role:        core.RoleMember,
			SessionID:   sessionID,
			Context:     core.UserContext{AIMode: core.AIModeAssistant, RelationshipType: core.RelationshipIndividual},
			Preferences: core.DefaultPreferences(),
		}
		sess.Users[userID] = user
	}
	if data.Name != "" {
		user.Name = data.Name
	}
	if data.Email != "" {
		user.Email = data.Email
	}
	if data.Role != "" {
		user.Role = core.ParseRole(string(data.Role))
	}
	if data.Context != nil {
		user.Context = data.Context.Clone()
	}
	if data.Preferences != nil {
		user.Preferences = *data.Preferences
	}
	user.Online = true
	user.LastActive = now
	for externalID, linkedID := range s.identities {
		if linkedID == userID {
			user.ExternalID = externalID
		}
	}
	s.userSessions[userID] = sessionID
	sess.LastActivity = now
	clone := user.Clone()
	s.mu.Unlock()

	s.logger.Debug("user joined", "user_id", userID, "session_id", sessionID, "role", clone.Role)
	if created {
		s.publish(core.NewSessionCreatedEvent(sessionID))
	}
	s.publish(core.NewUserJoinedEvent(clone.Clone()))
	return clone
}

// LeaveSession marks the user offline, stamps its last-active time and
// removes it from every group it belonged to. The user record is retained
// until the owning session is evicted. Returns false for unknown users.
func (s *InMemoryStore) LeaveSession(userID string) bool {
	now := time.Now()

	s.mu.Lock()
	sess, user, ok := s.userLocked(userID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	user.Online = false
	user.LastActive = now

	events := make([]core.Event, 0, len(user.GroupIDs)+1)
	for _, groupID := range append([]string(nil), user.GroupIDs...) {
		if s.removeFromGroupLocked(sess, user, groupID) {
			events = append(events, core.NewUserRemovedFromGroupEvent(sess.ID, userID, groupID))
		}
	}
	sess.LastActivity = now
	sessionID := sess.ID
	events = append(events, core.NewUserLeftEvent(user.Clone()))
	s.mu.Unlock()

	s.logger.Debug("user left", "user_id", userID, "session_id", sessionID)
	for _, ev := range events {
		s.publish(ev)
	}
	return true
}

// User resolves a user id through the reverse session index and returns a
// clone.
func (s *InMemoryStore) User(userID string) (*core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, user, ok := s.userLocked(userID)
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

// UpdateUserContext shallow-merges the delta onto the user's context: fields
// present in the delta fully replace the old value, absent fields are
// preserved. Stamps activity on both user and session.
func (s *InMemoryStore) UpdateUserContext(userID string, delta core.ContextDelta) bool {
	now := time.Now()

	s.mu.Lock()
	sess, user, ok := s.userLocked(userID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	user.Context = delta.Apply(user.Context)
	user.LastActive = now
	sess.LastActivity = now
	snapshot := user.Context.Clone()
	sessionID := sess.ID
	s.mu.Unlock()

	s.publish(core.NewContextChangedEvent(sessionID, userID, snapshot))
	return true
}

// CleanupInactiveSessions evicts every session whose last activity is older
// than timeout and whose user map is empty. Sessions with present users,
// online or offline, are never evicted by this path. Returns the number of
// evicted sessions.
func (s *InMemoryStore) CleanupInactiveSessions(timeout time.Duration) int {
	cutoff := time.Now().Add(-timeout)

	s.mu.Lock()
	var evicted []string
	for id, sess := range s.sessions {
		if len(sess.Users) == 0 && sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	for _, id := range evicted {
		s.logger.Info("session evicted", "session_id", id)
		s.publish(core.NewSessionCleanedEvent(id))
	}
	return len(evicted)
}

// userLocked resolves a user and its session via the reverse index. Caller
// must hold the lock.
func (s *InMemoryStore) userLocked(userID string) (*core.Session, *core.User, bool) {
	sessionID, ok := s.userSessions[userID]
	if !ok {
		return nil, nil, false
	}
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, false
	}
	user, ok := sess.Users[userID]
	if !ok {
		return nil, nil, false
	}
	return sess, user, true
}
