package models

// User はユーザーのデータベース構造体を表します。
// JSONタグ: クライアントとの通信用
type User struct {
	ID           int    `json:"id,omitempty"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"` // JSONに出さない
	IsActive     bool   `json:"is_active"`
	Role         string `json:"role"`
}

// AuthUser は認証境界で一度だけ検証される呼び出し元の識別情報です。
// トークンのクレームから復元され、ハンドラーはこの形のみを参照します。
type AuthUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserRegisterRequest はユーザー登録のリクエストボディです。
type UserRegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"` // 生パスワード
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

// UserLoginRequest はログインのリクエストボディです。
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse はプロフィール取得のレスポンスです。password_hashは含めません。
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// ChangePasswordRequest はパスワード変更のリクエストボディです。各フィールド6文字以上。
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required,min=6"`
	NewPassword        string `json:"new_password" binding:"required,min=6"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required,min=6"`
}
