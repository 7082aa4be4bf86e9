package session

import (
	"time"

	"github.com/sessionmesh/sessionmesh/core"
)

// CreateGroup registers a new group in an existing session. The session must
// pre-exist; otherwise core.ErrSessionNotFound is returned. Settings defaults
// are overridden field by field from data.Settings. Seed members and admins
// are taken from data for users present in the session (admin ids imply
// membership), respecting the capacity limit.
func (s *InMemoryStore) CreateGroup(sessionID string, data core.GroupData) (*core.Group, error) {
	now := time.Now()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, core.ErrSessionNotFound
	}

	groupType := data.Type
	if groupType == "" {
		groupType = core.GroupTeam
	}
	group := &core.Group{
		ID:           core.NewID(),
		Name:         data.Name,
		Type:         groupType,
		Settings:     data.Settings.Apply(core.DefaultGroupSettings()),
		CreatedAt:    now,
		LastActivity: now,
	}

	seed := append(append([]string(nil), data.Members...), data.Admins...)
	for _, memberID := range seed {
		user, present := sess.Users[memberID]
		if !present || group.HasMember(memberID) {
			continue
		}
		if len(group.Members) >= group.Settings.MaxMembers {
			break
		}
		group.Members = append(group.Members, memberID)
		user.GroupIDs = append(user.GroupIDs, group.ID)
	}
	for _, adminID := range data.Admins {
		if group.HasMember(adminID) && !group.HasAdmin(adminID) {
			group.Admins = append(group.Admins, adminID)
		}
	}

	sess.Groups[group.ID] = group
	sess.LastActivity = now
	clone := group.Clone()
	s.mu.Unlock()

	s.logger.Debug("group created", "group_id", clone.ID, "session_id", sessionID, "type", groupType)
	s.publish(core.NewGroupCreatedEvent(sessionID, clone.Clone()))
	return clone, nil
}

// Group resolves a group id across all sessions and returns a clone.
func (s *InMemoryStore) Group(groupID string) (*core.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, group, ok := s.groupLocked(groupID)
	if !ok {
		return nil, false
	}
	return group.Clone(), true
}

// AddUserToGroup adds the user to the group with the given role (defaulting
// to member). Lookup failures and duplicate membership return (false, nil);
// a full group returns a *core.CapacityError and leaves membership unchanged.
// Admin-level roles are also recorded in the group's admin list.
func (s *InMemoryStore) AddUserToGroup(userID, groupID string, role core.Role) (bool, error) {
	if role == "" {
		role = core.RoleMember
	}
	now := time.Now()

	s.mu.Lock()
	sess, user, ok := s.userLocked(userID)
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	group, ok := sess.Groups[groupID]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	if group.HasMember(userID) {
		s.mu.Unlock()
		return false, nil
	}
	if len(group.Members) >= group.Settings.MaxMembers {
		max := group.Settings.MaxMembers
		s.mu.Unlock()
		return false, &core.CapacityError{GroupID: groupID, MaxMembers: max}
	}

	group.Members = append(group.Members, userID)
	if role.AtLeast(core.RoleAdmin) {
		group.Admins = append(group.Admins, userID)
	}
	user.GroupIDs = append(user.GroupIDs, groupID)
	user.LastActive = now
	group.LastActivity = now
	sess.LastActivity = now
	sessionID := sess.ID
	s.mu.Unlock()

	s.publish(core.NewUserAddedToGroupEvent(sessionID, userID, groupID, role))
	return true, nil
}

// RemoveUserFromGroup removes the user from the group's member and admin
// lists and the group id from the user's membership list. Returns false if
// any lookup fails. The membership invariant holds afterwards regardless of
// which side initiated the removal.
func (s *InMemoryStore) RemoveUserFromGroup(userID, groupID string) bool {
	s.mu.Lock()
	sess, user, ok := s.userLocked(userID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	if !s.removeFromGroupLocked(sess, user, groupID) {
		s.mu.Unlock()
		return false
	}
	sess.Touch()
	sessionID := sess.ID
	s.mu.Unlock()

	s.publish(core.NewUserRemovedFromGroupEvent(sessionID, userID, groupID))
	return true
}

// UpdateSharedContext merges the delta into the group's fused context on the
// owning session. Only available while the group's SharedContext setting is
// enabled.
func (s *InMemoryStore) UpdateSharedContext(groupID string, delta core.ContextDelta) bool {
	now := time.Now()

	s.mu.Lock()
	sess, group, ok := s.groupLocked(groupID)
	if !ok || !group.Settings.SharedContext {
		s.mu.Unlock()
		return false
	}
	merged := delta.Apply(sess.ActiveContexts[groupID])
	sess.ActiveContexts[groupID] = merged
	group.LastActivity = now
	sess.LastActivity = now
	snapshot := merged.Clone()
	sessionID := sess.ID
	s.mu.Unlock()

	s.publish(core.NewSharedContextUpdatedEvent(sessionID, groupID, snapshot))
	return true
}

// SharedContext returns a snapshot of the group's fused context. Groups with
// context sharing disabled report not found.
func (s *InMemoryStore) SharedContext(groupID string) (core.UserContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, group, ok := s.groupLocked(groupID)
	if !ok || !group.Settings.SharedContext {
		return core.UserContext{}, false
	}
	return sess.ActiveContexts[groupID].Clone(), true
}

// groupLocked scans sessions for the group id. Caller must hold the lock.
func (s *InMemoryStore) groupLocked(groupID string) (*core.Session, *core.Group, bool) {
	for _, sess := range s.sessions {
		if group, ok := sess.Groups[groupID]; ok {
			return sess, group, true
		}
	}
	return nil, nil, false
}

// removeFromGroupLocked performs the symmetric removal from members, admins
// and the user's group list. Caller must hold the lock.
func (s *InMemoryStore) removeFromGroupLocked(sess *core.Session, user *core.User, groupID string) bool {
	group, ok := sess.Groups[groupID]
	if !ok || !group.HasMember(user.ID) {
		return false
	}
	group.Members = removeString(group.Members, user.ID)
	group.Admins = removeString(group.Admins, user.ID)
	user.GroupIDs = removeString(user.GroupIDs, groupID)
	group.LastActivity = time.Now()
	return true
}

// removeString removes the first occurrence of v preserving order.
func removeString(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i], values[i+1:]...)
		}
	}
	return values
}
