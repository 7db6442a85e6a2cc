package httpHandler

import (
	"encoding/json"
	"errors"

	"vita-server/entities"
	"vita-server/logger"
	"vita-server/usecases"

	"github.com/gin-gonic/gin"
)

// ActionRequest is the single-endpoint request body. Every action reads
// the fields it needs and ignores the rest.
type ActionRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Token    string `json:"token"`

	// auth
	Password    string `json:"password"`
	Provider    string `json:"provider"`
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`

	// history
	Category  string          `json:"category"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp string          `json:"timestamp"`
	ImageHash string          `json:"image_hash"`

	// profile / goals
	Profile *entities.UserProfile `json:"profile"`
	Goal    *entities.Goal        `json:"goal"`
	GoalID  string                `json:"goal_id"`

	// groups
	GroupName string `json:"group_name"`
	JoinCode  string `json:"join_code"`
	GroupID   string `json:"group_id"`

	// rewards / leaderboard
	RewardID string `json:"reward_id"`
	Limit    int    `json:"limit"`
}

type actionFunc func(c *gin.Context, req *ActionRequest)

// SyncHandler serves the action endpoint and the bulk fetch.
type SyncHandler struct {
	sync        *usecases.SyncUseCase
	accounts    *usecases.AccountUseCase
	groups      *usecases.GroupUseCase
	rewards     *usecases.RewardUseCase
	leaderboard *usecases.LeaderboardUseCase
	admin       *usecases.AdminUseCase
	log         *logger.Logger

	actions map[string]actionFunc
}

func NewSyncHandler(
	sync *usecases.SyncUseCase,
	accounts *usecases.AccountUseCase,
	groups *usecases.GroupUseCase,
	rewards *usecases.RewardUseCase,
	leaderboard *usecases.LeaderboardUseCase,
	admin *usecases.AdminUseCase,
	log *logger.Logger,
) *SyncHandler {
	h := &SyncHandler{
		sync:        sync,
		accounts:    accounts,
		groups:      groups,
		rewards:     rewards,
		leaderboard: leaderboard,
		admin:       admin,
		log:         log,
	}
	h.actions = map[string]actionFunc{
		"login":             h.login,
		"register":          h.register,
		"guest":             h.guest,
		"socialLogin":       h.socialLogin,
		"adminLogin":        h.adminLogin,
		"adminDashboard":    h.adminDashboard,
		"saveProfile":       h.saveProfile,
		"saveHistory":       h.saveHistory,
		"clearHistory":      h.clearHistory,
		"saveGoals":         h.saveGoal,
		"deleteGoal":        h.deleteGoal,
		"leaderboard":       h.leaderboardTop,
		"groupLeaderboard":  h.groupLeaderboard,
		"createGroup":       h.createGroup,
		"joinGroup":         h.joinGroup,
		"leaveGroup":        h.leaveGroup,
		"myGroups":          h.myGroups,
		"groupMembers":      h.groupMembers,
		"listRewards":       h.listRewards,
		"redeemReward":      h.redeemReward,
		"redemptionHistory": h.redemptionHistory,
	}
	return h
}

// HandleAction dispatches POST /api/v1/sync by action name.
func (h *SyncHandler) HandleAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	fn, ok := h.actions[req.Action]
	if !ok {
		respondError(c, "unknown action: "+req.Action)
		return
	}
	fn(c, &req)
}

// HandleFetchAll serves GET /api/v1/sync?username=U, the bulk fetch the
// client runs once per login session.
func (h *SyncHandler) HandleFetchAll(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondBadRequest(c, "username query parameter is required")
		return
	}
	all, err := h.sync.FetchAll(username)
	if err != nil {
		h.log.Warn("fetch-all failed", "username", username, "error", err)
		respondError(c, "could not load data")
		return
	}
	respondSuccess(c, all)
}

// ---- profile / history / goal actions ----

func (h *SyncHandler) saveProfile(c *gin.Context, req *ActionRequest) {
	if req.Profile == nil {
		respondError(c, "profile is required")
		return
	}
	if req.Profile.Username == "" {
		req.Profile.Username = req.Username
	}
	if err := h.sync.SaveProfile(req.Profile); err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, req.Profile)
}

func (h *SyncHandler) saveHistory(c *gin.Context, req *ActionRequest) {
	entry := &entities.HistoryEntry{
		Username:  req.Username,
		Category:  req.Category,
		Timestamp: req.Timestamp,
		Payload:   string(req.Payload),
		ImageHash: req.ImageHash,
	}
	if err := h.sync.SaveHistory(entry); err != nil {
		if errors.Is(err, usecases.ErrDuplicateImage) {
			// specific message so the client can tell this apart
			respondError(c, "duplicate image content")
			return
		}
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, entry)
}

func (h *SyncHandler) clearHistory(c *gin.Context, req *ActionRequest) {
	if err := h.sync.ClearHistory(req.Username, req.Category); err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, gin.H{"cleared": req.Category})
}

func (h *SyncHandler) saveGoal(c *gin.Context, req *ActionRequest) {
	if req.Goal == nil {
		respondError(c, "goal is required")
		return
	}
	if req.Goal.Username == "" {
		req.Goal.Username = req.Username
	}
	if err := h.sync.SaveGoal(req.Goal); err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, req.Goal)
}

func (h *SyncHandler) deleteGoal(c *gin.Context, req *ActionRequest) {
	if err := h.sync.DeleteGoal(req.GoalID); err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, gin.H{"deleted": req.GoalID})
}

// ---- leaderboard actions ----

func (h *SyncHandler) leaderboardTop(c *gin.Context, req *ActionRequest) {
	rows, err := h.leaderboard.Top(req.Limit)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, rows)
}

func (h *SyncHandler) groupLeaderboard(c *gin.Context, req *ActionRequest) {
	rows, err := h.leaderboard.GroupTop(req.GroupID, req.Username, req.Limit)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, rows)
}
