package middleware

import (
	"net/http"
	"strings"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/pkg/authz"
	"github.com/Xushengqwer/blog_service/utils"
)

// RequireSession 校验会话令牌并把调用方写入请求 context。
// 令牌优先取 Authorization: Bearer，其次取会话 Cookie。
func RequireSession(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "未登录，请先登录")
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "会话无效或已过期")
			return
		}
		userID, err := claims.UserID()
		if err != nil || userID == 0 {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "会话无效或已过期")
			return
		}

		c.Request = c.Request.WithContext(authz.WithPrincipal(c.Request.Context(), authz.Principal{UserID: userID}))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(constant.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
