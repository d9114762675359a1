package services

import (
	"errors"
	"fmt"
	"log"

	"todo-app/internal/models"
	"todo-app/internal/repositories"
)

var (
	// ErrInvalidCredentials はログイン失敗 (ユーザー不在またはパスワード不一致) を表します。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWrongPassword はパスワード変更時に旧パスワードが一致しない場合のエラーです。
	ErrWrongPassword = errors.New("wrong password")
	// ErrPasswordMismatch は新パスワードと確認用が一致しない場合のエラーです。
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterUser はユーザーを登録します。roleが空の場合は"user"になります。
func (s *UserService) RegisterUser(req models.UserRegisterRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	newUser := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		IsActive:     true,
		Role:         role,
	}

	createdUser, err := s.userRepo.Create(newUser)
	if err != nil {
		return nil, err
	}
	createdUser.PasswordHash = "" // レスポンスにパスワードを含めない
	return createdUser, nil
}

// AuthenticateUser はユーザーを認証し、成功したらユーザーを返します。
func (s *UserService) AuthenticateUser(req models.UserLoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := repositories.VerifyPassword(foundUser.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return foundUser, nil
}

// GetProfile は呼び出し元ユーザーのプロフィールを返します。
// password_hashはレスポンス型に含まれません。
func (s *UserService) GetProfile(userID int) (*models.UserResponse, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &models.UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}, nil
}

// ChangePassword はパスワードを変更します。
// 手順: ユーザー解決 → 旧パスワード検証 → 確認用一致チェック → 再ハッシュして保存。
// 新旧パスワードが同じでも拒否しません。
func (s *UserService) ChangePassword(userID int, req models.ChangePasswordRequest) error {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := repositories.VerifyPassword(u.PasswordHash, req.OldPassword); err != nil {
		return ErrWrongPassword
	}

	if req.NewPassword != req.NewPasswordConfirm {
		return ErrPasswordMismatch
	}

	newHash, err := repositories.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(userID, newHash)
}
