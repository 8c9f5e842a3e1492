package middleware

import (
	"SkinProtocol_Backend/internal/auth"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
)

const SessionIDKey = "sessionID"

// AuthMiddleware requires a session token from the Authorization header, or
// the "token" query parameter for WebSocket upgrades. A nil issuer disables
// the check.
func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if issuer == nil {
			c.Next()
			return
		}

		// 브라우저 WebSocket은 헤더를 못 붙이므로 업그레이드 요청만 쿼리 토큰 허용
		var tokenString string
		if websocket.IsWebSocketUpgrade(c.Request) {
			tokenString = c.Query("token")
		}
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
				return
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session token required"})
			return
		}

		claims, err := issuer.Validate(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(SessionIDKey, claims.SessionID)
		c.Next()
	}
}
