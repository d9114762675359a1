package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-app/internal/handlers"
	"todo-app/internal/services"
)

// AuthMiddleware はBearerトークンを検証し、識別情報をコンテキストに設定するミドルウェアです。
// トークンが無い・不正・期限切れの場合はハンドラー本体に到達する前に401で中断します。
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		// "Bearer " プレフィックスを削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}
		tokenString = tokenString[len("Bearer "):]

		user, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(handlers.ContextUserKey, user)
		c.Next()
	}
}
