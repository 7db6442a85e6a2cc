package httpHandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vita-server/db"
	"vita-server/entities"
	"vita-server/logger"
	"vita-server/repositories"
	"vita-server/services"
	"vita-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&entities.User{},
		&entities.UserProfile{},
		&entities.HistoryEntry{},
		&entities.Goal{},
		&entities.HealthGroup{},
		&entities.GroupMember{},
		&entities.Reward{},
		&entities.RedemptionEntry{},
	))
	database := &db.GormDatabase{DB: gdb}

	log := logger.NewNop()
	users := repositories.NewUserPgRepository(database)
	profiles := repositories.NewProfilePgRepository(database)
	history := repositories.NewHistoryPgRepository(database)
	goals := repositories.NewGoalPgRepository(database)
	groups := repositories.NewGroupPgRepository(database)
	rewards := repositories.NewRewardPgRepository(database)

	leaderboardSvc := services.NewLeaderboardService("", profiles, log)

	h := NewSyncHandler(
		usecases.NewSyncUseCase(profiles, history, goals, groups, leaderboardSvc, nil),
		usecases.NewAccountUseCase(users, profiles, "test-secret"),
		usecases.NewGroupUseCase(groups),
		usecases.NewRewardUseCase(rewards, profiles, leaderboardSvc),
		usecases.NewLeaderboardUseCase(leaderboardSvc, users, profiles, groups),
		usecases.NewAdminUseCase(users, profiles, history),
		log,
	)

	r := gin.New()
	r.POST("/api/v1/sync", h.HandleAction)
	r.GET("/api/v1/sync", h.HandleFetchAll)
	return r
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doAction(t *testing.T, r *gin.Engine, body map[string]interface{}) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestUnknownAction(t *testing.T) {
	r := newTestRouter(t)

	code, env := doAction(t, r, map[string]interface{}{"action": "teleport"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "unknown action")
}

func TestInvalidBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	code, env := doAction(t, r, map[string]interface{}{
		"action": "register", "username": "alice", "password": "secret", "display_name": "Alice",
	})
	assert.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", env.Status)

	var user entities.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, entities.RoleUser, user.Role)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "login", "username": "alice", "password": "secret",
	})
	assert.Equal(t, "success", env.Status)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "login", "username": "alice", "password": "wrong",
	})
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "invalid username or password", env.Message)
}

func TestGuestAction(t *testing.T) {
	r := newTestRouter(t)

	_, env := doAction(t, r, map[string]interface{}{"action": "guest"})
	require.Equal(t, "success", env.Status)

	var user entities.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, entities.RoleGuest, user.Role)
	assert.Contains(t, user.Username, "guest:")
}

func TestSaveAndFetchRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	_, env := doAction(t, r, map[string]interface{}{
		"action": "saveProfile", "username": "alice",
		"profile": entities.UserProfile{Username: "alice", WeightKg: 70, HeightCm: 175, XP: 40, Level: 1},
	})
	require.Equal(t, "success", env.Status)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "saveHistory", "username": "alice", "category": "water",
		"payload": map[string]int{"ml": 250}, "timestamp": "2026-03-14T09:00:00Z",
	})
	require.Equal(t, "success", env.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync?username=alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fetchEnv envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetchEnv))
	require.Equal(t, "success", fetchEnv.Status)

	var all usecases.AllData
	require.NoError(t, json.Unmarshal(fetchEnv.Data, &all))
	require.NotNil(t, all.Profile)
	assert.Equal(t, 40, all.Profile.XP)
	assert.Len(t, all.History["water"], 1)
	assert.Empty(t, all.History["food"])
}

func TestFetchAllRequiresUsername(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateImageMessage(t *testing.T) {
	r := newTestRouter(t)

	body := map[string]interface{}{
		"action": "saveHistory", "username": "alice", "category": "food",
		"payload": map[string]int{"kcal": 500}, "timestamp": "2026-03-14T09:00:00Z",
		"image_hash": "abc123",
	}
	_, env := doAction(t, r, body)
	require.Equal(t, "success", env.Status)

	_, env = doAction(t, r, body)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "duplicate image content", env.Message)
}

func TestGoalActions(t *testing.T) {
	r := newTestRouter(t)

	_, env := doAction(t, r, map[string]interface{}{
		"action": "saveGoals", "username": "alice",
		"goal": entities.Goal{Type: "weight", Target: 65},
	})
	require.Equal(t, "success", env.Status)

	var goal entities.Goal
	require.NoError(t, json.Unmarshal(env.Data, &goal))
	require.NotEmpty(t, goal.ID)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "deleteGoal", "goal_id": goal.ID,
	})
	assert.Equal(t, "success", env.Status)
}

func TestGroupActions(t *testing.T) {
	r := newTestRouter(t)

	_, env := doAction(t, r, map[string]interface{}{
		"action": "createGroup", "group_name": "runners", "username": "alice",
	})
	require.Equal(t, "success", env.Status)

	var group entities.HealthGroup
	require.NoError(t, json.Unmarshal(env.Data, &group))
	require.Len(t, group.JoinCode, 6)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "joinGroup", "join_code": group.JoinCode, "username": "bob",
	})
	require.Equal(t, "success", env.Status)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "groupMembers", "group_id": group.ID, "username": "bob",
	})
	require.Equal(t, "success", env.Status)
	var members []entities.GroupMember
	require.NoError(t, json.Unmarshal(env.Data, &members))
	assert.Len(t, members, 2)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "groupMembers", "group_id": group.ID, "username": "stranger",
	})
	assert.Equal(t, "error", env.Status)

	_, env = doAction(t, r, map[string]interface{}{
		"action": "leaveGroup", "group_id": group.ID, "username": "bob",
	})
	assert.Equal(t, "success", env.Status)
}

func TestLeaderboardAction(t *testing.T) {
	r := newTestRouter(t)

	for _, p := range []entities.UserProfile{
		{Username: "alice", XP: 300, Level: 3},
		{Username: "bob", XP: 150, Level: 2},
	} {
		profile := p
		_, env := doAction(t, r, map[string]interface{}{
			"action": "saveProfile", "username": profile.Username, "profile": profile,
		})
		require.Equal(t, "success", env.Status)
	}

	_, env := doAction(t, r, map[string]interface{}{"action": "leaderboard", "limit": 10})
	require.Equal(t, "success", env.Status)

	var rows []usecases.LeaderboardRow
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "bob", rows[1].Username)
}

func TestAdminDashboardRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	code, env := doAction(t, r, map[string]interface{}{"action": "adminDashboard", "token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "error", env.Status)
}

func TestRewardActions(t *testing.T) {
	r := newTestRouter(t)

	_, env := doAction(t, r, map[string]interface{}{
		"action": "saveProfile", "username": "alice",
		"profile": entities.UserProfile{Username: "alice", XP: 50, Level: 1},
	})
	require.Equal(t, "success", env.Status)

	_, env = doAction(t, r, map[string]interface{}{"action": "listRewards"})
	require.Equal(t, "success", env.Status)
	var rewards []entities.Reward
	require.NoError(t, json.Unmarshal(env.Data, &rewards))
	assert.Empty(t, rewards, "catalog starts empty until seeded")

	_, env = doAction(t, r, map[string]interface{}{
		"action": "redeemReward", "username": "alice", "reward_id": "missing",
	})
	assert.Equal(t, "error", env.Status)
}
