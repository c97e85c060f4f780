package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialcore/pkg/response"
)

// GetFeed 拉取候选 feed（排除自己与已划走的用户）
// @Summary 获取候选 feed
// @Tags Feed
// @Produce json
// @Param offset query int false "偏移" default(0)
// @Param limit query int false "数量" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 500 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1"))
	users, total, emptyFeed, err := h.feedSvc.GetFeed(c.Request.Context(), currentUserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"available_users_count": total,
		"empty_feed":            emptyFeed,
		"users":                 users,
	})
}

// GetBookmarked 查看我收藏的用户
// @Summary 收藏列表
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/feed/bookmarks [get]
func (h *Handler) GetBookmarked(c *gin.Context) {
	users, err := h.feedSvc.GetBookmarked(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// GetPassedBy 查看我划走的用户
// @Summary 划走列表
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/feed/passed-by [get]
func (h *Handler) GetPassedBy(c *gin.Context) {
	users, err := h.feedSvc.GetPassedBy(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// Bookmark 收藏目标用户（不影响其出现在 feed 中）
// @Summary 收藏用户
// @Tags Feed
// @Produce json
// @Param target_id path string true "目标用户ID"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/feed/{target_id}/bookmark [put]
func (h *Handler) Bookmark(c *gin.Context) {
	interaction, err := h.feedSvc.Bookmark(c.Request.Context(), currentUserID(c), c.Param("target_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, interaction)
}

// PassBy 划走目标用户（永久移出我的 feed）
// @Summary 划走用户
// @Tags Feed
// @Produce json
// @Param target_id path string true "目标用户ID"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/feed/{target_id}/pass-by [put]
func (h *Handler) PassBy(c *gin.Context) {
	interaction, err := h.feedSvc.PassBy(c.Request.Context(), currentUserID(c), c.Param("target_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, interaction)
}
