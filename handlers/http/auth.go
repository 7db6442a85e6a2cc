package httpHandler

import (
	"vita-server/entities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// login authenticates a password account.
func (h *SyncHandler) login(c *gin.Context, req *ActionRequest) {
	user, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, "invalid username or password")
		return
	}
	respondSuccess(c, user)
}

func (h *SyncHandler) register(c *gin.Context, req *ActionRequest) {
	user, err := h.accounts.Register(req.Username, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, user)
}

// guest hands out an ephemeral identity. Nothing is persisted; guest
// sessions never sync.
func (h *SyncHandler) guest(c *gin.Context, req *ActionRequest) {
	name := req.DisplayName
	if name == "" {
		name = "Guest"
	}
	user := &entities.User{
		ID:          uuid.New().String(),
		Username:    "guest:" + uuid.New().String()[:8],
		DisplayName: name,
		Role:        entities.RoleGuest,
		Provider:    entities.ProviderGuest,
	}
	respondSuccess(c, user)
}

// socialLogin exchanges a LINE/Telegram identity for a local user + token.
func (h *SyncHandler) socialLogin(c *gin.Context, req *ActionRequest) {
	user, token, err := h.accounts.SocialLogin(req.Provider, req.ExternalID, req.DisplayName, req.AvatarURL)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, gin.H{"user": user, "token": token})
}

func (h *SyncHandler) adminLogin(c *gin.Context, req *ActionRequest) {
	token, err := h.accounts.AdminLogin(req.Username, req.Password)
	if err != nil {
		respondError(c, "invalid admin credentials")
		return
	}
	respondSuccess(c, gin.H{"token": token})
}

// adminDashboard requires a valid admin token in the request body.
func (h *SyncHandler) adminDashboard(c *gin.Context, req *ActionRequest) {
	username, role, err := h.accounts.VerifyToken(req.Token)
	if err != nil || role != entities.RoleAdmin {
		respondUnauthorized(c, "admin token required")
		return
	}
	rows, err := h.admin.Dashboard()
	if err != nil {
		h.log.Warn("admin dashboard failed", "admin", username, "error", err)
		respondError(c, "could not load dashboard")
		return
	}
	respondSuccess(c, rows)
}
