package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/testutil"
)

func TestRegister_Success(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	payload := `{"email":"new_user@example.com","username":"new_user","first_name":"New","last_name":"User","password":"secret123"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "new_user", body["username"])
	assert.Equal(t, "user", body["role"]) // roleは省略時userになる
	assert.NotContains(t, w.Body.String(), "password")

	// 登録したユーザーでログインできること
	_, err := testutil.LoginAndGetToken(t, router, "new_user", "secret123")
	require.NoError(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	// normal_user はセットアップ時に作成済み
	payload := `{"email":"normal_user@example.com","username":"normal_user","first_name":"Dup","last_name":"User","password":"secret123"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	cases := []string{
		`{"username":"normal_user","password":"wrongpass"}`,
		`{"username":"no_such_user","password":"password123"}`,
	}
	for _, payload := range cases {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code, "payload: %s", payload)
	}
}

func TestGetProfile(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/user/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "normal_user", profile["username"])
	assert.Equal(t, "normal_user@example.com", profile["email"])
	assert.Equal(t, "Test", profile["first_name"])
	assert.Equal(t, "User", profile["last_name"])
	assert.Equal(t, "user", profile["role"])

	// パスワードハッシュは決して返さない
	assert.NotContains(t, profile, "password_hash")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	req, _ := http.NewRequest(http.MethodGet, "/user/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile_DeletedAccount(t *testing.T) {
	db, router, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	// トークン発行後にアカウントが消えた場合は404
	caller, err := userRepo.FindByUsername("normal_user")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM users WHERE id = ?", caller.ID)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/user/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func changePassword(t *testing.T, router http.Handler, token, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPut, "/user/change_password", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChangePassword_Success(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	w := changePassword(t, router, token, `{"old_password":"password123","new_password":"newsecret1","new_password_confirm":"newsecret1"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 旧パスワードではログインできず、新パスワードでログインできる
	_, err = testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.Error(t, err)
	_, err = testutil.LoginAndGetToken(t, router, "normal_user", "newsecret1")
	require.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	w := changePassword(t, router, token, `{"old_password":"wrongpass1","new_password":"newsecret1","new_password_confirm":"newsecret1"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong password")

	// ハッシュは変更されていない
	_, err = testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)
}

func TestChangePassword_ConfirmMismatch(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	w := changePassword(t, router, token, `{"old_password":"password123","new_password":"newsecret1","new_password_confirm":"different1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")

	// ハッシュは変更されていない
	_, err = testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)
}

func TestChangePassword_TooShort(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	w := changePassword(t, router, token, `{"old_password":"password123","new_password":"12345","new_password_confirm":"12345"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword_SameAsOldIsAllowed(t *testing.T) {
	db, router, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)

	// 新旧同一パスワードは拒否しない
	w := changePassword(t, router, token, `{"old_password":"password123","new_password":"password123","new_password_confirm":"password123"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = testutil.LoginAndGetToken(t, router, "normal_user", "password123")
	require.NoError(t, err)
}
