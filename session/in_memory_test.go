package session

import (
	"testing"
	"time"

	"github.com/sessionmesh/sessionmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.Store = (*InMemoryStore)(nil)

func TestInMemoryStore_CreateSessionIdempotent(t *testing.T) {
	s := NewInMemoryStore()

	first := s.CreateSession("s1")
	require.NotNil(t, first)
	assert.Equal(t, "s1", first.ID)

	s.JoinSession("u1", "s1", core.UserData{})
	again := s.CreateSession("s1")
	assert.Len(t, again.Users, 1, "re-creating must not discard existing users")
}

func TestInMemoryStore_JoinSessionDefaults(t *testing.T) {
	s := NewInMemoryStore()

	user := s.JoinSession("u1", "s1", core.UserData{})
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1", user.Name, "name falls back to the user id")
	assert.Equal(t, core.RoleMember, user.Role)
	assert.Equal(t, "s1", user.SessionID)
	assert.True(t, user.Online)
	assert.Equal(t, core.AIModeAssistant, user.Context.AIMode)
	assert.Equal(t, core.DefaultPreferences(), user.Preferences)

	_, ok := s.Session("s1")
	assert.True(t, ok, "session is created lazily on join")
}

func TestInMemoryStore_JoinSessionExplicitFieldsWin(t *testing.T) {
	s := NewInMemoryStore()

	prefs := core.UserPreferences{
		Theme:           "dark",
		Language:        "es",
		Timezone:        "America/New_York",
		AIResponseStyle: "detailed",
	}
	user := s.JoinSession("u1", "s1", core.UserData{
		Name:        "Test User",
		Email:       "test@example.com",
		Role:        "user", // legacy role name
		Preferences: &prefs,
	})

	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, core.RoleMember, user.Role)
	assert.Equal(t, "dark", user.Preferences.Theme)
	assert.Equal(t, "es", user.Preferences.Language)
	assert.Equal(t, "America/New_York", user.Preferences.Timezone)
	assert.Equal(t, "detailed", user.Preferences.AIResponseStyle)
}

func TestInMemoryStore_RejoinUpsertsInPlace(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{Name: "Before"})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)
	ok, err := s.AddUserToGroup("u1", group.ID, core.RoleMember)
	require.NoError(t, err)
	require.True(t, ok)
	s.LeaveSession("u1")

	rejoined := s.JoinSession("u1", "s1", core.UserData{Name: "After"})
	assert.Equal(t, "After", rejoined.Name)
	assert.True(t, rejoined.Online)
	assert.Empty(t, rejoined.GroupIDs, "leave removed the membership; rejoin must not resurrect it")

	ok, err = s.AddUserToGroup("u1", group.ID, core.RoleMember)
	require.NoError(t, err)
	assert.True(t, ok)
	fresh, found := s.User("u1")
	require.True(t, found)
	assert.Equal(t, []string{group.ID}, fresh.GroupIDs)
}

func TestInMemoryStore_LeaveSessionRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	s.JoinSession("u2", "s1", core.UserData{})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)
	_, err = s.AddUserToGroup("u1", group.ID, core.RoleMember)
	require.NoError(t, err)

	assert.True(t, s.LeaveSession("u1"))

	sess, ok := s.Session("s1")
	require.True(t, ok, "session stays while other users remain")
	assert.Len(t, sess.Users, 2, "leaving marks offline, does not delete")

	user, ok := s.User("u1")
	require.True(t, ok)
	assert.False(t, user.Online)
	assert.Empty(t, user.GroupIDs)

	updated, ok := s.Group(group.ID)
	require.True(t, ok)
	assert.NotContains(t, updated.Members, "u1")
}

func TestInMemoryStore_LeaveSessionUnknownUser(t *testing.T) {
	s := NewInMemoryStore()
	assert.False(t, s.LeaveSession("ghost"))
}

func TestInMemoryStore_UpdateUserContext(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})

	project := "Test Project"
	mode := core.AIModeCollaborator
	rel := core.RelationshipGroup
	ok := s.UpdateUserContext("u1", core.ContextDelta{
		CurrentProject:   &project,
		AIMode:           &mode,
		RelationshipType: &rel,
	})
	require.True(t, ok)

	user, found := s.User("u1")
	require.True(t, found)
	assert.Equal(t, "Test Project", user.Context.CurrentProject)
	assert.Equal(t, core.AIModeCollaborator, user.Context.AIMode)
	assert.Equal(t, core.RelationshipGroup, user.Context.RelationshipType)

	task := "T"
	require.True(t, s.UpdateUserContext("u1", core.ContextDelta{CurrentTask: &task}))
	user, _ = s.User("u1")
	assert.Equal(t, "Test Project", user.Context.CurrentProject, "absent fields preserved")
	assert.Equal(t, "T", user.Context.CurrentTask)

	assert.False(t, s.UpdateUserContext("ghost", core.ContextDelta{}))
}

func TestInMemoryStore_CleanupInactiveSessions(t *testing.T) {
	s := NewInMemoryStore()

	s.CreateSession("stale-empty")
	s.mu.Lock()
	s.sessions["stale-empty"].LastActivity = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	evicted := s.CleanupInactiveSessions(time.Hour)
	assert.Equal(t, 1, evicted)
	_, ok := s.Session("stale-empty")
	assert.False(t, ok)
}

func TestInMemoryStore_CleanupRetainsSessionsWithUsers(t *testing.T) {
	s := NewInMemoryStore()

	s.JoinSession("u1", "occupied", core.UserData{})
	s.mu.Lock()
	s.sessions["occupied"].LastActivity = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	assert.Equal(t, 0, s.CleanupInactiveSessions(time.Hour))
	_, ok := s.Session("occupied")
	assert.True(t, ok, "sessions with users are never evicted, regardless of age")

	// Even an offline user keeps the session alive.
	s.LeaveSession("u1")
	s.mu.Lock()
	s.sessions["occupied"].LastActivity = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()
	assert.Equal(t, 0, s.CleanupInactiveSessions(time.Hour))
}

func TestInMemoryStore_CleanupRetainsFreshSessions(t *testing.T) {
	s := NewInMemoryStore()
	s.CreateSession("fresh")
	assert.Equal(t, 0, s.CleanupInactiveSessions(time.Hour))
}

func TestInMemoryStore_ClonesDetachState(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{Name: "Original"})

	user, _ := s.User("u1")
	user.Name = "mutated"
	user.GroupIDs = append(user.GroupIDs, "bogus")

	fresh, _ := s.User("u1")
	assert.Equal(t, "Original", fresh.Name)
	assert.Empty(t, fresh.GroupIDs)
}
