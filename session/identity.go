package session

import "github.com/sessionmesh/sessionmesh/core"

// LinkExternalIdentity maps an opaque external channel identifier (phone
// number, chat handle, etc.) to an internal user id. The identifier is never
// validated or interpreted beyond map-key use. Empty arguments are silently
// ignored. Linking may happen before the user record exists; the back
// reference on the user is filled in as soon as both sides are present.
func (s *InMemoryStore) LinkExternalIdentity(externalID, userID string) bool {
	if externalID == "" || userID == "" {
		return false
	}

	s.mu.Lock()
	s.identities[externalID] = userID
	if _, user, ok := s.userLocked(userID); ok {
		user.ExternalID = externalID
	}
	s.mu.Unlock()

	s.logger.Debug("identity linked", "external_id", externalID, "user_id", userID)
	return true
}

// UserByExternalIdentity resolves an external identifier through the identity
// map and then the reverse session index. Either hop failing reports not
// found.
func (s *InMemoryStore) UserByExternalIdentity(externalID string) (*core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.identities[externalID]
	if !ok {
		return nil, false
	}
	_, user, ok := s.userLocked(userID)
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

// SyncContextByExternalIdentity composes the identity lookup with
// UpdateUserContext, silently doing nothing when no user is linked. This lets
// channel adapters push context updates before an internal user record
// necessarily exists.
func (s *InMemoryStore) SyncContextByExternalIdentity(externalID string, delta core.ContextDelta) bool {
	s.mu.RLock()
	userID, ok := s.identities[externalID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return s.UpdateUserContext(userID, delta)
}
