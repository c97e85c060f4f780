package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialcore/pkg/response"
)

// SendInvite 向目标用户发出邀请
// @Summary 发送邀请
// @Tags Invites
// @Produce json
// @Param invitee_id path string true "被邀请人ID"
// @Success 200 {object} response.Response{data=model.Invitation}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/invites/{invitee_id} [post]
func (h *Handler) SendInvite(c *gin.Context) {
	inv, err := h.inviteSvc.SendInvite(c.Request.Context(), currentUserID(c), c.Param("invitee_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, inv)
}

// AcceptInvite 接受邀请（仅被邀请人可操作）
// @Summary 接受邀请
// @Tags Invites
// @Produce json
// @Param invite_id path string true "邀请ID"
// @Success 200 {object} response.Response{data=model.Invitation}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/invites/{invite_id}/accept [put]
func (h *Handler) AcceptInvite(c *gin.Context) {
	inv, err := h.inviteSvc.AcceptInvite(c.Request.Context(), c.Param("invite_id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, inv)
}

// RejectInvite 拒绝邀请（仅被邀请人可操作）
// @Summary 拒绝邀请
// @Tags Invites
// @Produce json
// @Param invite_id path string true "邀请ID"
// @Success 200 {object} response.Response{data=model.Invitation}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/invites/{invite_id}/reject [put]
func (h *Handler) RejectInvite(c *gin.Context) {
	inv, err := h.inviteSvc.RejectInvite(c.Request.Context(), c.Param("invite_id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, inv)
}

// GetUserInvites 我发出与收到的全部邀请
// @Summary 邀请列表
// @Tags Invites
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/invites [get]
func (h *Handler) GetUserInvites(c *gin.Context) {
	sent, received, err := h.inviteSvc.GetUserInvites(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": sent, "received": received})
}

// GetAcceptedConnections 已建立连接的对端用户
// @Summary 已接受的连接
// @Tags Invites
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/invites/accepted [get]
func (h *Handler) GetAcceptedConnections(c *gin.Context) {
	acceptedSent, acceptedReceived, err := h.inviteSvc.GetAcceptedConnections(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"accepted_sent": acceptedSent, "accepted_received": acceptedReceived})
}
