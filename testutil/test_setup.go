// Package testutil は統合テスト用のセットアップヘルパーを提供します。
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"todo-app/internal/config"
	"todo-app/internal/database"
	"todo-app/internal/models"
	"todo-app/internal/repositories"
	"todo-app/internal/routes"
)

// TestConfig はテスト用の設定を返します。JWT_SECRETが未設定でも動くようにします。
func TestConfig() *config.Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-key"
	}
	return &config.Config{
		JWTSecret:    secret,
		JWTAlgorithm: "HS256",
		JWTTTL:       time.Hour,
		CORSOrigins:  []string{"http://localhost:3000"},
	}
}

// SetupTestDB はテスト用のデータベース接続を確立し、テーブルを再作成し、テストデータを投入します。
// TEST_DB_* が設定されていない環境ではテストをスキップします。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.TodoRepository, *repositories.UserRepository) {
	t.Helper()

	_ = godotenv.Load("../../.env")

	dbUser := os.Getenv("TEST_DB_USER")
	dbPass := os.Getenv("TEST_DB_PASS")
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbName := os.Getenv("TEST_DB_NAME")

	if dbHost == "" {
		t.Skip("TEST_DB_HOST not set; skipping integration test")
	}
	if dbPort == "" {
		dbPort = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database unreachable: %v", err)
	}

	// 毎回クリーンな状態にするため、FKの子テーブルから順に削除して作り直す
	if _, err := db.Exec("DROP TABLE IF EXISTS todos"); err != nil {
		t.Fatalf("Failed to drop todos table: %v", err)
	}
	if _, err := db.Exec("DROP TABLE IF EXISTS users"); err != nil {
		t.Fatalf("Failed to drop users table: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	// テストユーザーの挿入
	userRepo := repositories.NewUserRepository(db)
	CreateTestUser(t, userRepo, "normal_user", "normal_user@example.com", "password123", "user")
	CreateTestUser(t, userRepo, "admin_user", "admin@example.com", "adminpass", "admin")

	// Ginルーターのセットアップ
	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(db, TestConfig())
	todoRepo := repositories.NewTodoRepository(db)

	return db, router, todoRepo, userRepo
}

// CreateTestUser はテスト用のユーザーを作成し、データベースに保存します。
func CreateTestUser(t *testing.T, userRepo *repositories.UserRepository, username, email, password, role string) *models.User {
	t.Helper()

	hashedPassword, err := repositories.HashPassword(password)
	require.NoError(t, err)

	newUser := models.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hashedPassword,
		IsActive:     true,
		Role:         role,
	}

	createdUser, err := userRepo.Create(&newUser)
	require.NoError(t, err)
	require.NotNil(t, createdUser)
	require.NotEqual(t, 0, createdUser.ID)
	return createdUser
}

// CreateTestTodo はテスト用のTODOをAPI経由で作成します。
func CreateTestTodo(t *testing.T, router *gin.Engine, token, title, description string, priority int, complete bool) *models.Todo {
	t.Helper()

	todoPayload := map[string]interface{}{
		"title":       title,
		"description": description,
		"priority":    priority,
		"complete":    complete,
	}
	body, _ := json.Marshal(todoPayload)

	req, _ := http.NewRequest(http.MethodPost, "/todos/todo", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo models.Todo
	err := json.Unmarshal(resp.Body.Bytes(), &createdTodo)
	require.NoError(t, err)
	return &createdTodo
}

// LoginAndGetToken はログインAPIを呼び、発行されたトークンを返します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, username, password string) (string, error) {
	t.Helper()

	loginPayload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(loginPayload)

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &loginRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	token, ok := loginRes["token"].(string)
	if !ok {
		return "", errors.New("token not found or not a string in login response")
	}
	return token, nil
}
