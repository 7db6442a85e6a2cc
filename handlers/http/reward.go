package httpHandler

import (
	"errors"

	"vita-server/usecases"

	"github.com/gin-gonic/gin"
)

func (h *SyncHandler) listRewards(c *gin.Context, req *ActionRequest) {
	rewards, err := h.rewards.List()
	if err != nil {
		respondError(c, "could not load rewards")
		return
	}
	respondSuccess(c, rewards)
}

func (h *SyncHandler) redeemReward(c *gin.Context, req *ActionRequest) {
	entry, err := h.rewards.Redeem(req.Username, req.RewardID)
	if err != nil {
		if errors.Is(err, usecases.ErrInsufficientXP) {
			respondError(c, "not enough XP for this reward")
			return
		}
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, entry)
}

func (h *SyncHandler) redemptionHistory(c *gin.Context, req *ActionRequest) {
	entries, err := h.rewards.History(req.Username)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, entries)
}
