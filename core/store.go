package core

import "time"

// GroupContext is one group's slice of a relationship bundle: the group, its
// member snapshots and their fused context.
type GroupContext struct {
	GroupID string      `json:"group_id"`
	Group   *Group      `json:"group"`
	Users   []*User     `json:"users"`
	Context UserContext `json:"context"`
	AIMode  AIMode      `json:"ai_mode"`
}

// RelationshipContext is the bundle handed to the inference engine. Type is
// the tag: RelationshipIndividual fills Users and Context,
// RelationshipGroup fills User and Groups. AIMode is resolved in both cases.
type RelationshipContext struct {
	Type    RelationshipType `json:"type"`
	Users   []*User          `json:"users,omitempty"`
	User    *User            `json:"user,omitempty"`
	Groups  []GroupContext   `json:"groups,omitempty"`
	Context UserContext      `json:"context"`
	AIMode  AIMode           `json:"ai_mode"`
}

// Store owns every session, user and group of one process plus the external
// identity map. All methods are atomic with respect to the cross-map
// invariants (user.GroupIDs vs group.Members); implementations must be safe
// for concurrent use. Entity return values are clones detached from store
// state.
type Store interface {
	// CreateSession registers an empty session under id. Creation is
	// idempotent: an existing session is returned untouched.
	CreateSession(id string) *Session

	// Session returns the session registered under id.
	Session(id string) (*Session, bool)

	// JoinSession registers a user in a session, creating the session
	// lazily. Defaults are merged under explicit UserData fields.
	// Re-joining an existing user id updates the record in place and marks
	// it online; group memberships survive.
	JoinSession(userID, sessionID string, data UserData) *User

	// LeaveSession marks the user offline and removes it from every group
	// it belongs to. The user record itself is retained. Returns false for
	// unknown users.
	LeaveSession(userID string) bool

	// User resolves a user id through the reverse session index.
	User(userID string) (*User, bool)

	// UpdateUserContext shallow-merges the delta onto the user's context
	// and stamps activity on both user and session.
	UpdateUserContext(userID string, delta ContextDelta) bool

	// CleanupInactiveSessions evicts sessions whose last activity is older
	// than timeout and whose user map is empty. Returns the eviction count.
	CleanupInactiveSessions(timeout time.Duration) int

	// CreateGroup registers a group in an existing session. Fails with
	// ErrSessionNotFound when the session is absent.
	CreateGroup(sessionID string, data GroupData) (*Group, error)

	// Group resolves a group id across sessions.
	Group(groupID string) (*Group, bool)

	// AddUserToGroup adds the user to the group with the given role.
	// Returns (false, nil) when the session, user or group cannot be
	// resolved or the user is already a member; a *CapacityError when the
	// group is full.
	AddUserToGroup(userID, groupID string, role Role) (bool, error)

	// RemoveUserFromGroup removes the user from members, admins and the
	// user's group list. Returns false if any lookup fails.
	RemoveUserFromGroup(userID, groupID string) bool

	// UpdateSharedContext merges the delta into the group's fused context.
	// Only available while the group's SharedContext setting is enabled.
	UpdateSharedContext(groupID string, delta ContextDelta) bool

	// SharedContext returns the group's fused context snapshot.
	SharedContext(groupID string) (UserContext, bool)

	// LinkExternalIdentity maps an opaque external channel identifier to an
	// internal user id. Empty arguments are silently ignored (false).
	LinkExternalIdentity(externalID, userID string) bool

	// UserByExternalIdentity resolves an external identifier to its linked
	// user through the identity map and the reverse session index.
	UserByExternalIdentity(externalID string) (*User, bool)

	// SyncContextByExternalIdentity composes UserByExternalIdentity with
	// UpdateUserContext, silently doing nothing when no user is linked.
	SyncContextByExternalIdentity(externalID string, delta ContextDelta) bool

	// RelationshipContext produces the fused bundle for the inference
	// engine. A non-empty targetUserID selects the pairwise (individual)
	// bundle; an empty one the group bundle.
	RelationshipContext(userID, targetUserID string) (*RelationshipContext, bool)
}
