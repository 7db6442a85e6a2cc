package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vita-server/entities"
	"vita-server/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "alice", r.URL.Query().Get("username"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": AllData{
				Profile: &entities.UserProfile{Username: "alice", XP: 120, Level: 2},
				History: map[string][]entities.HistoryEntry{
					"food": {{ID: "e1", Username: "alice", Category: "food"}},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	all := c.FetchAll(context.Background(), "alice")
	require.NotNil(t, all)
	assert.Equal(t, 120, all.Profile.XP)
	assert.Len(t, all.History["food"], 1)
}

func TestFetchAllDegradesToNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>purgatory</html>"))
		}},
		{"error envelope", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "no"})
		}},
		{"data not matching schema", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","data":"a string"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := New(srv.URL, logger.NewNop())
			assert.Nil(t, c.FetchAll(context.Background(), "alice"))
		})
	}
}

func TestFetchAllUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", logger.NewNop())
	assert.Nil(t, c.FetchAll(context.Background(), "alice"))
}

func TestSaveHistory(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": map[string]string{}})
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	ok := c.SaveHistory(context.Background(), "alice", "water", json.RawMessage(`{"ml":250}`), "2026-03-14T09:00:00Z", "")
	assert.True(t, ok)
	assert.Equal(t, "saveHistory", got["action"])
	assert.Equal(t, "water", got["category"])
}

func TestSavesDegradeToFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "duplicate image content"})
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	assert.False(t, c.SaveHistory(context.Background(), "alice", "food", nil, "", "abc"))
	assert.False(t, c.SaveProfile(context.Background(), &entities.UserProfile{Username: "alice"}))
	assert.False(t, c.Clear(context.Background(), "food", "alice"))
	assert.False(t, c.SaveGoal(context.Background(), &entities.Goal{Username: "alice"}))
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   entities.User{Username: "alice", Role: entities.RoleUser},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	user := c.Login(context.Background(), "alice", "secret")
	require.NotNil(t, user)
	assert.Equal(t, entities.RoleUser, user.Role)

	assert.Nil(t, c.Login(context.Background(), "alice", "wrong"))
}

func TestSocialLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"user":  entities.User{Username: "line:u123", Provider: entities.ProviderLine},
				"token": "jwt-token",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	user, token := c.SocialLogin(context.Background(), "line", "u123", "Alice", "")
	require.NotNil(t, user)
	assert.Equal(t, "line:u123", user.Username)
	assert.Equal(t, "jwt-token", token)
}

func TestGroupCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		switch body["action"] {
		case "createGroup", "joinGroup":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "success",
				"data":   entities.HealthGroup{Name: "runners", JoinCode: "XK42PQ"},
			})
		case "myGroups":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "success",
				"data":   []entities.HealthGroup{{Name: "runners"}},
			})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": map[string]string{}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, logger.NewNop())
	group := c.CreateGroup(context.Background(), "runners", "alice")
	require.NotNil(t, group)
	assert.Equal(t, "XK42PQ", group.JoinCode)

	joined := c.JoinGroup(context.Background(), "XK42PQ", "bob")
	require.NotNil(t, joined)

	groups := c.MyGroups(context.Background(), "alice")
	assert.Len(t, groups, 1)

	assert.True(t, c.LeaveGroup(context.Background(), "g1", "alice"))
}
