package httpHandler

import (
	"encoding/base64"
	"net/http"

	"vita-server/aiclient"
	"vita-server/logger"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the generative analyses. All AI failures surface as
// one generic message; clients never see the underlying cause.
type AIHandler struct {
	ai  *aiclient.Client
	log *logger.Logger
}

func NewAIHandler(ai *aiclient.Client, log *logger.Logger) *AIHandler {
	return &AIHandler{ai: ai, log: log}
}

const aiFailureMessage = "ไม่สามารถวิเคราะห์ได้ กรุณาลองใหม่อีกครั้ง"

type foodImageRequest struct {
	ImageBase64  string `json:"image_base64" binding:"required"`
	MimeType     string `json:"mime_type" binding:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

// AnalyzeFoodImage handles POST /api/v1/ai/food-image. The response
// carries the image hash the client must attach to the history entry so
// the duplicate guard can catch resubmissions.
func (h *AIHandler) AnalyzeFoodImage(c *gin.Context) {
	var req foodImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "image_base64 and mime_type are required")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		respondBadRequest(c, "image_base64 is not valid base64")
		return
	}
	estimate, err := h.ai.AnalyzeFoodImage(c.Request.Context(), image, req.MimeType, req.CustomPrompt)
	if err != nil {
		respondError(c, aiFailureMessage)
		return
	}
	respondSuccess(c, gin.H{
		"estimate":   estimate,
		"image_hash": aiclient.ImageHash(image),
	})
}

type foodTextRequest struct {
	Description  string `json:"description" binding:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

// AnalyzeFoodText handles POST /api/v1/ai/food-text.
func (h *AIHandler) AnalyzeFoodText(c *gin.Context) {
	var req foodTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "description is required")
		return
	}
	estimate, err := h.ai.AnalyzeFoodText(c.Request.Context(), req.Description, req.CustomPrompt)
	if err != nil {
		respondError(c, aiFailureMessage)
		return
	}
	respondSuccess(c, gin.H{"estimate": estimate})
}

type activityRequest struct {
	Description string `json:"description" binding:"required"`
}

// ExtractActivity handles POST /api/v1/ai/activity.
func (h *AIHandler) ExtractActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "description is required")
		return
	}
	extraction, err := h.ai.ExtractActivity(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, aiFailureMessage)
		return
	}
	respondSuccess(c, gin.H{"activity": extraction})
}

type coachingRequest struct {
	Summary string `json:"summary" binding:"required"`
}

// CoachingAdvice handles POST /api/v1/ai/coaching.
func (h *AIHandler) CoachingAdvice(c *gin.Context) {
	var req coachingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "summary is required")
		return
	}
	advice, err := h.ai.CoachingAdvice(c.Request.Context(), req.Summary)
	if err != nil {
		respondError(c, aiFailureMessage)
		return
	}
	respondSuccess(c, gin.H{"advice": advice})
}

type mealPlanRequest struct {
	ProfileSummary string  `json:"profile_summary" binding:"required"`
	TargetKcal     float64 `json:"target_kcal"`
}

// MealPlan handles POST /api/v1/ai/meal-plan.
func (h *AIHandler) MealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "profile_summary is required")
		return
	}
	plan, err := h.ai.MealPlan(c.Request.Context(), req.ProfileSummary, req.TargetKcal)
	if err != nil {
		respondError(c, aiFailureMessage)
		return
	}
	respondSuccess(c, gin.H{"plan": plan})
}

// Unavailable answers every AI route when no API key is configured.
func AIUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "error",
		"message": aiFailureMessage,
	})
}
