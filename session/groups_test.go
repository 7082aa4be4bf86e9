package session

import (
	"errors"
	"testing"

	"github.com/sessionmesh/sessionmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup_SessionMustExist(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.CreateGroup("missing", core.GroupData{Name: "G"})
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestCreateGroup_DefaultsAndSeeding(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})

	group, err := s.CreateGroup("s1", core.GroupData{
		Name:    "Test Group",
		Type:    core.GroupTeam,
		Members: []string{"u1", "stranger"},
		Admins:  []string{"u1"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Test Group", group.Name)
	assert.Equal(t, core.GroupTeam, group.Type)
	assert.Equal(t, []string{"u1"}, group.Members, "only users present in the session are seeded")
	assert.Equal(t, []string{"u1"}, group.Admins)
	assert.Equal(t, 50, group.Settings.MaxMembers)
	assert.True(t, group.Settings.SharedContext)
	assert.Equal(t, core.AIModeShared, group.Settings.AIMode)

	user, _ := s.User("u1")
	assert.Equal(t, []string{group.ID}, user.GroupIDs)
}

func TestCreateGroup_SettingsOverride(t *testing.T) {
	s := NewInMemoryStore()
	s.CreateSession("s1")

	max := 2
	group, err := s.CreateGroup("s1", core.GroupData{
		Name:     "Small Group",
		Settings: core.SettingsDelta{MaxMembers: &max},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, group.Settings.MaxMembers)
	assert.True(t, group.Settings.SharedContext, "unspecified settings keep defaults")
}

func TestAddUserToGroup_CapacityExceeded(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	s.JoinSession("u2", "s1", core.UserData{})
	s.JoinSession("u3", "s1", core.UserData{})

	max := 2
	group, err := s.CreateGroup("s1", core.GroupData{
		Name:     "Small Group",
		Settings: core.SettingsDelta{MaxMembers: &max},
	})
	require.NoError(t, err)

	for _, id := range []string{"u1", "u2"} {
		ok, err := s.AddUserToGroup(id, group.ID, core.RoleMember)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := s.AddUserToGroup("u3", group.ID, core.RoleMember)
	assert.False(t, ok)
	var capErr *core.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, group.ID, capErr.GroupID)
	assert.Equal(t, 2, capErr.MaxMembers)

	updated, _ := s.Group(group.ID)
	assert.Equal(t, []string{"u1", "u2"}, updated.Members, "membership unchanged after capacity error")

	u3, _ := s.User("u3")
	assert.Empty(t, u3.GroupIDs)
}

func TestAddUserToGroup_LookupFailuresAreSilent(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)

	ok, err := s.AddUserToGroup("ghost", group.ID, core.RoleMember)
	assert.False(t, ok)
	assert.NoError(t, err)

	ok, err = s.AddUserToGroup("u1", "no-such-group", core.RoleMember)
	assert.False(t, ok)
	assert.NoError(t, err)

	// Duplicate membership is silent too.
	ok, err = s.AddUserToGroup("u1", group.ID, core.RoleMember)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.AddUserToGroup("u1", group.ID, core.RoleMember)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestAddUserToGroup_AdminRole(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)

	ok, err := s.AddUserToGroup("u1", group.ID, core.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)

	updated, _ := s.Group(group.ID)
	assert.Contains(t, updated.Members, "u1")
	assert.Contains(t, updated.Admins, "u1")
}

func TestRemoveUserFromGroup(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)
	_, err = s.AddUserToGroup("u1", group.ID, core.RoleAdmin)
	require.NoError(t, err)

	assert.True(t, s.RemoveUserFromGroup("u1", group.ID))

	updated, _ := s.Group(group.ID)
	assert.NotContains(t, updated.Members, "u1")
	assert.NotContains(t, updated.Admins, "u1")
	user, _ := s.User("u1")
	assert.Empty(t, user.GroupIDs)

	assert.False(t, s.RemoveUserFromGroup("u1", group.ID), "second removal fails")
	assert.False(t, s.RemoveUserFromGroup("ghost", group.ID))
}

// The membership invariant must hold in both directions after any sequence of
// add/remove operations.
func TestMembershipInvariant(t *testing.T) {
	s := NewInMemoryStore()
	users := []string{"u1", "u2", "u3"}
	for _, id := range users {
		s.JoinSession(id, "s1", core.UserData{})
	}
	g1, err := s.CreateGroup("s1", core.GroupData{Name: "G1"})
	require.NoError(t, err)
	g2, err := s.CreateGroup("s1", core.GroupData{Name: "G2"})
	require.NoError(t, err)

	mustAdd := func(userID, groupID string, role core.Role) {
		t.Helper()
		ok, err := s.AddUserToGroup(userID, groupID, role)
		require.NoError(t, err)
		require.True(t, ok)
	}
	mustAdd("u1", g1.ID, core.RoleAdmin)
	mustAdd("u2", g1.ID, core.RoleMember)
	mustAdd("u2", g2.ID, core.RoleMember)
	mustAdd("u3", g2.ID, core.RoleAdmin)
	s.RemoveUserFromGroup("u2", g1.ID)
	s.LeaveSession("u3")

	checkInvariant(t, s, "s1")
}

func checkInvariant(t *testing.T, s *InMemoryStore, sessionID string) {
	t.Helper()
	sess, ok := s.Session(sessionID)
	require.True(t, ok)

	for _, group := range sess.Groups {
		for _, memberID := range group.Members {
			user, ok := sess.Users[memberID]
			require.True(t, ok, "member %s of group %s must exist", memberID, group.ID)
			assert.Contains(t, user.GroupIDs, group.ID)
		}
		for _, adminID := range group.Admins {
			assert.Contains(t, group.Members, adminID, "admins must be a subset of members")
		}
		assert.LessOrEqual(t, len(group.Members), group.Settings.MaxMembers)
	}
	for _, user := range sess.Users {
		for _, groupID := range user.GroupIDs {
			group, ok := sess.Groups[groupID]
			require.True(t, ok)
			assert.Contains(t, group.Members, user.ID)
		}
	}
}

func TestSharedContext(t *testing.T) {
	s := NewInMemoryStore()
	s.JoinSession("u1", "s1", core.UserData{})
	group, err := s.CreateGroup("s1", core.GroupData{Name: "G"})
	require.NoError(t, err)

	project := "Shared Project"
	require.True(t, s.UpdateSharedContext(group.ID, core.ContextDelta{
		CurrentProject: &project,
		RecentFiles:    []string{"file1.py", "file2.py"},
	}))

	ctx, ok := s.SharedContext(group.ID)
	require.True(t, ok)
	assert.Equal(t, "Shared Project", ctx.CurrentProject)
	assert.Equal(t, []string{"file1.py", "file2.py"}, ctx.RecentFiles)

	task := "T"
	require.True(t, s.UpdateSharedContext(group.ID, core.ContextDelta{CurrentTask: &task}))
	ctx, _ = s.SharedContext(group.ID)
	assert.Equal(t, "Shared Project", ctx.CurrentProject, "updates merge, not replace")
	assert.Equal(t, "T", ctx.CurrentTask)
}

func TestSharedContext_DisabledGroup(t *testing.T) {
	s := NewInMemoryStore()
	s.CreateSession("s1")

	shared := false
	group, err := s.CreateGroup("s1", core.GroupData{
		Name:     "Private",
		Settings: core.SettingsDelta{SharedContext: &shared},
	})
	require.NoError(t, err)

	project := "X"
	assert.False(t, s.UpdateSharedContext(group.ID, core.ContextDelta{CurrentProject: &project}))
	_, ok := s.SharedContext(group.ID)
	assert.False(t, ok)

	assert.False(t, s.UpdateSharedContext("no-such-group", core.ContextDelta{}))
}
