package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialcore/internal/service"
	"github.com/d60-Lab/socialcore/pkg/response"
)

type Handler struct {
	feedSvc   service.FeedService
	inviteSvc service.InviteService
}

func NewHandler(feedSvc service.FeedService, inviteSvc service.InviteService) *Handler {
	return &Handler{feedSvc: feedSvc, inviteSvc: inviteSvc}
}

// respondError service 错误分类 → HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// currentUserID 取认证中间件写入的用户 ID
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
