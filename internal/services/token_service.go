// Package services はアプリケーションのビジネスロジックを提供します。
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todo-app/internal/config"
	"todo-app/internal/models"
)

// TokenService はJWTトークンの生成と検証を扱います。
// シークレットとアルゴリズムは起動時の設定から渡され、グローバル変数は持ちません。
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	alg    string
	ttl    time.Duration
}

// Claims はトークンに埋め込むクレームの構造体です。
// sub=ユーザー名、id、roleを運びます。
type Claims struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenService は設定からTokenServiceを作成します。
// アルゴリズム名はconfig.Loadで検証済みであることを前提とします。
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		method: jwt.GetSigningMethod(cfg.JWTAlgorithm),
		alg:    cfg.JWTAlgorithm,
		ttl:    cfg.JWTTTL,
	}
}

// GenerateToken は認証済みユーザーのJWTトークンを生成します。
func (s *TokenService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:   user.ID,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken はJWTトークンを検証し、呼び出し元の識別情報を返します。
// 署名と有効期限のみで判定します (失効リストなし)。
func (s *TokenService) ValidateToken(tokenString string) (*models.AuthUser, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.alg {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.alg}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.ID <= 0 {
		return nil, errors.New("invalid token claims")
	}

	return &models.AuthUser{
		ID:       claims.ID,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}
