// Package modelsはTodoを定義します。
package models

import "errors"

// Todo はToDoタスクのデータベース構造体を表します。
type Todo struct {
	ID          int    `json:"id,omitempty"` // 主キー
	Title       string `json:"title"`        // タスクのタイトル
	Description string `json:"description"`  // タスクの説明
	Priority    int    `json:"priority"`     // 優先度 (1〜5)
	Complete    bool   `json:"complete"`     // 完了状態
	OwnerID     int    `json:"owner_id"`     // 所有ユーザーのID
}

// TodoCreateRequest は新規作成のリクエストボディです。
// bindingタグ: Ginでのリクエストバリデーション用
type TodoCreateRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=3,max=100"`
	Priority    int    `json:"priority" binding:"required,min=1,max=5"`
	Complete    bool   `json:"complete"`
}

// TodoUpdateRequest は部分更新のリクエストボディです。
// nilのフィールドは「変更なし」を意味します。
type TodoUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3"`
	Description *string `json:"description" binding:"omitempty,min=3,max=100"`
	Priority    *int    `json:"priority" binding:"omitempty,min=1,max=5"`
	Complete    *bool   `json:"complete"`
}

// Validate はbindingタグのomitemptyが素通しするゼロ値 ("" や 0) を弾きます。
// nilは「変更なし」なので対象外です。
func (r *TodoUpdateRequest) Validate() error {
	if r.Title != nil && len(*r.Title) < 3 {
		return errors.New("title must be at least 3 characters")
	}
	if r.Description != nil && len(*r.Description) < 3 {
		return errors.New("description must be at least 3 characters")
	}
	if r.Priority != nil && (*r.Priority < 1 || *r.Priority > 5) {
		return errors.New("priority must be between 1 and 5")
	}
	return nil
}
