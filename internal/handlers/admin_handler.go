package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"todo-app/internal/services"
)

// AdminHandler は管理者向けエンドポイントの拡張ポイントです。
// 依存関係の配線のみで、現時点では操作を持ちません。
type AdminHandler struct {
	db          *sql.DB
	todoService *services.TodoService
	userService *services.UserService
}

// NewAdminHandler は新しいAdminHandlerを作成します。
func NewAdminHandler(db *sql.DB, todoService *services.TodoService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{db: db, todoService: todoService, userService: userService}
}

// Register は管理者向けルートを登録します。
// グループは認証ミドルウェアの配下にあり、追加のエンドポイントはここに足します。
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	_ = rg
}
