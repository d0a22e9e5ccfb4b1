package jwt

import (
	"strings"

	"EDT/internal/config"
	"EDT/pkg/back"
	"EDT/pkg/util/myjwt"
	"EDT/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	CtxUserID       = "uuid"
	CtxEmail        = "email"
	CtxSessionToken = "session_token"
)

// SessionHeader 令牌未携带 session_id 时由客户端显式传入
const SessionHeader = "X-Session-Token"

func Auth(conf config.JwtConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(conf, tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		sessionToken := claims.SessionID
		if sessionToken == "" {
			sessionToken = strings.TrimSpace(c.GetHeader(SessionHeader))
		}

		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxSessionToken, sessionToken)
		c.Next()
	}
}

// CurrentUser 读取鉴权中间件写入的用户 ID，缺失时直接返回 401
func CurrentUser(c *gin.Context) (string, bool) {
	uuid := strings.TrimSpace(c.GetString(CtxUserID))
	if uuid == "" {
		back.Error(c, xerr.Unauthorized, "authentication required")
		return "", false
	}
	return uuid, true
}

// SessionToken 调用方当前会话令牌，可能为空
func SessionToken(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetString(CtxSessionToken)); v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}
