package sessionmesh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sessionmesh/sessionmesh/config"
	"github.com/sessionmesh/sessionmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMesh_EndToEnd(t *testing.T) {
	mesh := New()

	var wg sync.WaitGroup
	wg.Add(2) // userJoined + groupCreated
	var mu sync.Mutex
	var received []core.EventType
	record := func(ev core.Event) {
		mu.Lock()
		received = append(received, ev.Type)
		mu.Unlock()
		wg.Done()
	}
	mesh.Subscribe(core.EventUserJoined, record)
	mesh.Subscribe(core.EventGroupCreated, record)

	mesh.Start(context.Background())
	defer mesh.Stop()

	user := mesh.JoinSession("u1", "s1", core.UserData{Name: "Test User"})
	require.NotNil(t, user)

	group, err := mesh.CreateGroup("s1", core.GroupData{Name: "Test Group"})
	require.NoError(t, err)
	ok, err := mesh.AddUserToGroup("u1", group.ID, core.RoleMember)
	require.NoError(t, err)
	require.True(t, ok)

	rc, found := mesh.RelationshipContext("u1", "")
	require.True(t, found)
	assert.Equal(t, core.RelationshipGroup, rc.Type)
	require.Len(t, rc.Groups, 1)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for events")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []core.EventType{core.EventUserJoined, core.EventGroupCreated}, received)
}

func TestSessionMesh_WithConfig(t *testing.T) {
	cfg := config.Config{
		SessionTimeout: 30 * time.Minute,
		ReapInterval:   time.Minute,
		LogLevel:       "debug",
		LogFormat:      "text",
	}
	mesh := New(WithConfig(cfg))
	require.NotNil(t, mesh)

	// Start/Stop cycle must be clean.
	mesh.Start(context.Background())
	mesh.Stop()
}
