// Package handlers はHTTPリクエストを処理するハンドラーを提供します。
package handlers

import (
	"github.com/gin-gonic/gin"

	"todo-app/internal/models"
)

// ContextUserKey は認証ミドルウェアが識別情報を格納するGinコンテキストのキーです。
const ContextUserKey = "current_user"

// CurrentUser はGinコンテキストから認証済みユーザーを取り出します。
// ミドルウェアを通っていない場合はnilを返します。
func CurrentUser(c *gin.Context) *models.AuthUser {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*models.AuthUser)
	if !ok {
		return nil
	}
	return user
}
