package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/socialcore/config"
	"github.com/d60-Lab/socialcore/internal/api/handler"
	"github.com/d60-Lab/socialcore/internal/api/middleware"
	"github.com/d60-Lab/socialcore/pkg/response"
)

const serviceName = "socialcore"

// NewRouter 组装路由与中间件链
func NewRouter(cfg config.Config, h *handler.Handler) *gin.Engine {
	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		sentrygin.New(sentrygin.Options{Repanic: true}),
		otelgin.Middleware(serviceName),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))

	feed := v1.Group("/feed")
	{
		feed.GET("", h.GetFeed)
		feed.GET("/bookmarks", h.GetBookmarked)
		feed.GET("/passed-by", h.GetPassedBy)
		feed.PUT("/:target_id/bookmark", h.Bookmark)
		feed.PUT("/:target_id/pass-by", h.PassBy)
	}

	invites := v1.Group("/invites")
	{
		invites.GET("", h.GetUserInvites)
		invites.GET("/accepted", h.GetAcceptedConnections)
		invites.POST("/:invitee_id", h.SendInvite)
		invites.PUT("/:invite_id/accept", h.AcceptInvite)
		invites.PUT("/:invite_id/reject", h.RejectInvite)
	}

	return r
}
