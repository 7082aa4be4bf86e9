package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a lifecycle notification kind. The values are part of
// the subscriber boundary contract and must stay stable.
type EventType string

const (
	// EventSessionCreated fires when a session is first registered.
	EventSessionCreated EventType = "sessionCreated"
	// EventUserJoined fires when a user joins (or re-joins) a session.
	EventUserJoined EventType = "userJoined"
	// EventUserLeft fires when a user leaves a session.
	EventUserLeft EventType = "userLeft"
	// EventGroupCreated fires when a group is registered.
	EventGroupCreated EventType = "groupCreated"
	// EventUserAddedToGroup fires when a user gains group membership.
	EventUserAddedToGroup EventType = "userAddedToGroup"
	// EventUserRemovedFromGroup fires when a user loses group membership.
	EventUserRemovedFromGroup EventType = "userRemovedFromGroup"
	// EventContextChanged fires when a user's working context is updated.
	EventContextChanged EventType = "contextChanged"
	// EventSharedContextUpdated fires when a group's fused context changes.
	EventSharedContextUpdated EventType = "sharedContextUpdated"
	// EventSessionCleaned fires when the reaper evicts a stale session.
	EventSessionCleaned EventType = "sessionCleaned"
)

// Event is an immutable lifecycle notification record. After emission it must
// be treated as read-only; entity payloads are clones detached from store
// state. Fields not applicable to the event type are zero.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	SessionID string       `json:"session_id,omitempty"`
	UserID    string       `json:"user_id,omitempty"`
	GroupID   string       `json:"group_id,omitempty"`
	Role      Role         `json:"role,omitempty"`
	User      *User        `json:"user,omitempty"`
	Group     *Group       `json:"group,omitempty"`
	Context   *UserContext `json:"context,omitempty"`
}

// NewEvent creates a bare event of the given type bound to a session.
// Prefer the per-kind constructors below.
func NewEvent(t EventType, sessionID string) Event {
	return Event{
		ID:        NewID(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
	}
}

// NewSessionCreatedEvent records the registration of a new session.
func NewSessionCreatedEvent(sessionID string) Event {
	return NewEvent(EventSessionCreated, sessionID)
}

// NewUserJoinedEvent records a user joining a session. The user payload is a
// clone detached from store state.
func NewUserJoinedEvent(user *User) Event {
	e := NewEvent(EventUserJoined, user.SessionID)
	e.UserID = user.ID
	e.User = user
	return e
}

// NewUserLeftEvent records a user leaving a session.
func NewUserLeftEvent(user *User) Event {
	e := NewEvent(EventUserLeft, user.SessionID)
	e.UserID = user.ID
	e.User = user
	return e
}

// NewGroupCreatedEvent records the registration of a new group.
func NewGroupCreatedEvent(sessionID string, group *Group) Event {
	e := NewEvent(EventGroupCreated, sessionID)
	e.GroupID = group.ID
	e.Group = group
	return e
}

// NewUserAddedToGroupEvent records a membership addition.
func NewUserAddedToGroupEvent(sessionID, userID, groupID string, role Role) Event {
	e := NewEvent(EventUserAddedToGroup, sessionID)
	e.UserID = userID
	e.GroupID = groupID
	e.Role = role
	return e
}

// NewUserRemovedFromGroupEvent records a membership removal.
func NewUserRemovedFromGroupEvent(sessionID, userID, groupID string) Event {
	e := NewEvent(EventUserRemovedFromGroup, sessionID)
	e.UserID = userID
	e.GroupID = groupID
	return e
}

// NewContextChangedEvent records a user context update with the resulting
// context snapshot.
func NewContextChangedEvent(sessionID, userID string, ctx UserContext) Event {
	e := NewEvent(EventContextChanged, sessionID)
	e.UserID = userID
	e.Context = &ctx
	return e
}

// NewSharedContextUpdatedEvent records a group shared-context update.
func NewSharedContextUpdatedEvent(sessionID, groupID string, ctx UserContext) Event {
	e := NewEvent(EventSharedContextUpdated, sessionID)
	e.GroupID = groupID
	e.Context = &ctx
	return e
}

// NewSessionCleanedEvent records the eviction of a stale session.
func NewSessionCleanedEvent(sessionID string) Event {
	return NewEvent(EventSessionCleaned, sessionID)
}

// NewID generates a new unique identifier for events and groups.
func NewID() string { return uuid.NewString() }

// Publisher delivers events to external collaborators. Implementations must
// not block the caller; dispatch is fire-and-forget.
type Publisher interface {
	Publish(Event)
}
