// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用

	"todo-app/internal/models"
)

// UserRepository はusersテーブルの操作を行うための構造体です。
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var (
	ErrDuplicateUser = errors.New("duplicate username or email")
	ErrUserNotFound  = errors.New("user not found")
)

// Create は新しいユーザーをデータベースに挿入します。
// email/usernameの一意制約違反はErrDuplicateUserとして返します。
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	query := "INSERT INTO users (email, username, first_name, last_name, password_hash, is_active, role) VALUES (?, ?, ?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.IsActive, u.Role)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateUser
		}
		log.Printf("Failed to insert user: %v", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)

	return u, nil
}

// FindByID はIDでユーザーを検索します。
func (r *UserRepository) FindByID(id int) (*models.User, error) {
	query := "SELECT id, email, username, first_name, last_name, password_hash, is_active, role FROM users WHERE id = ?"
	return r.scanOne(r.DB.QueryRow(query, id))
}

// FindByUsername はユーザー名でユーザーを検索します。
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	query := "SELECT id, email, username, first_name, last_name, password_hash, is_active, role FROM users WHERE username = ?"
	return r.scanOne(r.DB.QueryRow(query, username))
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.IsActive,
		&u.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to query user: %v", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}

// UpdatePassword はユーザーのパスワードハッシュを置き換えます。
func (r *UserRepository) UpdatePassword(userID int, newHash string) error {
	res, err := r.DB.Exec("UPDATE users SET password_hash = ? WHERE id = ?", newHash, userID)
	if err != nil {
		log.Printf("Failed to update password: %v", err)
		return fmt.Errorf("could not update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
