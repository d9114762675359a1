// Package routesはroutingを行います。
package routes

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo-app/internal/config"
	"todo-app/internal/handlers"
	"todo-app/internal/repositories"
	"todo-app/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)
	userService := services.NewUserService(userRepo)
	tokenService := services.NewTokenService(cfg)

	// ハンドラー
	userHandler := handlers.NewUserHandler(userService, tokenService)
	todoHandler := handlers.NewTodoHandler(todoService)
	adminHandler := handlers.NewAdminHandler(db, todoService, userService)

	// 認証不要のルート
	r.POST("/auth/register", userHandler.RegisterHandler)
	r.POST("/auth/login", userHandler.LoginHandler)

	// 認証必須のルート
	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(tokenService))
	{
		authorized.GET("/todos/", todoHandler.ListTodosHandler)
		authorized.GET("/todos/todo/:id", todoHandler.GetTodoByIDHandler)
		authorized.POST("/todos/todo", todoHandler.CreateTodoHandler)
		authorized.PUT("/todos/todo/:id", todoHandler.UpdateTodoHandler)
		authorized.DELETE("/todos/todo/:id", todoHandler.DeleteTodoHandler)

		authorized.GET("/user/", userHandler.GetUserHandler)
		authorized.PUT("/user/change_password", userHandler.ChangePasswordHandler)

		adminHandler.Register(authorized.Group("/admin"))
	}

	return r
}
