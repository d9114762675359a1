// Package configはアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はプロセス全体の設定を保持します。
// 起動時に一度だけ Load() で構築し、各コンポーネントに明示的に渡します。
type Config struct {
	Port         string
	DBUser       string
	DBPass       string
	DBHost       string
	DBPort       string
	DBName       string
	JWTSecret    string
	JWTAlgorithm string
	JWTTTL       time.Duration
	CORSOrigins  []string
}

// サポートするJWT署名アルゴリズム (HMAC系のみ)
var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load は環境変数から設定を読み込み、必須項目を検証します。
// JWT_SECRET と JWT_ALGORITHM が無い場合はエラーを返し、起動を中止させます。
func Load() (*Config, error) {
	cfg := &Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       fallback(os.Getenv("DB_HOST"), "127.0.0.1"),
		DBPort:       fallback(os.Getenv("DB_PORT"), "3306"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAlgorithm: fallback(os.Getenv("JWT_ALGORITHM"), ""),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "http://localhost:3000")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "20")
	if ttl, err := strconv.Atoi(minutes); err == nil && ttl > 0 {
		cfg.JWTTTL = time.Duration(ttl) * time.Minute
	} else {
		cfg.JWTTTL = 20 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	if cfg.JWTAlgorithm == "" {
		return nil, errors.New("JWT_ALGORITHM environment variable not set")
	}
	if !supportedAlgorithms[cfg.JWTAlgorithm] {
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.JWTAlgorithm)
	}

	return cfg, nil
}

// DSN はMySQL接続文字列を組み立てます。
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// HTTPAddress はHTTPサーバーがbindするアドレスを返します。
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
