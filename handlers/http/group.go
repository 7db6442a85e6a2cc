package httpHandler

import "github.com/gin-gonic/gin"

func (h *SyncHandler) createGroup(c *gin.Context, req *ActionRequest) {
	group, err := h.groups.Create(req.GroupName, req.Username)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, group)
}

func (h *SyncHandler) joinGroup(c *gin.Context, req *ActionRequest) {
	group, err := h.groups.Join(req.JoinCode, req.Username)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, group)
}

func (h *SyncHandler) leaveGroup(c *gin.Context, req *ActionRequest) {
	if err := h.groups.Leave(req.GroupID, req.Username); err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, gin.H{"left": req.GroupID})
}

func (h *SyncHandler) myGroups(c *gin.Context, req *ActionRequest) {
	groups, err := h.groups.MyGroups(req.Username)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, groups)
}

func (h *SyncHandler) groupMembers(c *gin.Context, req *ActionRequest) {
	members, err := h.groups.Members(req.GroupID, req.Username)
	if err != nil {
		respondError(c, err.Error())
		return
	}
	respondSuccess(c, members)
}
