package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendToUnconnectedUser(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.SendToUser("nobody", map[string]string{"event": "ping"}))
}

func TestIsConnectedAndList(t *testing.T) {
	m := NewManager()
	assert.False(t, m.IsConnected("alice"))
	assert.Empty(t, m.List())

	m.Register("alice", nil)
	assert.True(t, m.IsConnected("alice"))
	assert.Equal(t, []string{"alice"}, m.List())

	m.Unregister("alice")
	assert.False(t, m.IsConnected("alice"))
}
