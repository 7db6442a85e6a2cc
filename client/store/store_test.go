package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSetGet(t *testing.T) {
	st := newTestStore(t)

	type profile struct {
		Name string `json:"name"`
		XP   int    `json:"xp"`
	}

	require.NoError(t, st.Set("profile", profile{Name: "alice", XP: 120}))

	var got profile
	require.True(t, st.Get("profile", &got))
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, 120, got.XP)
}

func TestGetMissingLeavesOutUntouched(t *testing.T) {
	st := newTestStore(t)

	value := 42
	assert.False(t, st.Get("nope", &value))
	assert.Equal(t, 42, value)
}

func TestSetOverwrites(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Set("counter", 1))
	require.NoError(t, st.Set("counter", 2))

	var n int
	require.True(t, st.Get("counter", &n))
	assert.Equal(t, 2, n)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Set("key", "value"))
	require.NoError(t, st.Delete("key"))

	var s string
	assert.False(t, st.Get("key", &s))

	// deleting again is not an error
	assert.NoError(t, st.Delete("key"))
}

func TestDeletePrefixAndKeys(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Set("history:food", []string{"a"}))
	require.NoError(t, st.Set("history:water", []string{"b"}))
	require.NoError(t, st.Set("profile", "keep"))

	assert.Equal(t, []string{"history:food", "history:water"}, st.Keys("history:"))

	require.NoError(t, st.DeletePrefix("history:"))
	assert.Empty(t, st.Keys("history:"))

	var kept string
	assert.True(t, st.Get("profile", &kept))
}
