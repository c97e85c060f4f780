package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/socialcore/pkg/response"
)

const bearerPrefix = "Bearer "

// JWTAuth 解析 Bearer token，将 sub 写入上下文 user_id
// 核心层信任该 ID，不再二次校验
func JWTAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		token, err := jwt.Parse(strings.TrimPrefix(header, bearerPrefix),
			func(t *jwt.Token) (interface{}, error) { return key, nil },
			jwt.WithValidMethods([]string{"HS256"}),
		)
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Unauthorized(c, "invalid claims")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Unauthorized(c, "missing subject")
			return
		}
		c.Set("user_id", sub)
		c.Next()
	}
}
