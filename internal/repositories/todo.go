package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"todo-app/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
// 他人のTODOへのアクセスも同じエラーになります (存在の有無を隠すため)。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はtodosテーブルの操作を行うための構造体です。
// すべてのクエリはowner_idで絞り込まれます。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create は新しいTodoタスクをデータベースに挿入します。
func (r *TodoRepository) Create(t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (title, description, priority, complete, owner_id) VALUES (?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, t.Title, t.Description, t.Priority, t.Complete, t.OwnerID)
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)

	return t, nil
}

// FindByOwner は指定ユーザーが所有するTodoをすべて取得します。
// 並び順は保証しません (ORDER BYなし)。
func (r *TodoRepository) FindByOwner(ownerID int) ([]*models.Todo, error) {
	query := "SELECT id, title, description, priority, complete, owner_id FROM todos WHERE owner_id = ?"

	rows, err := r.DB.Query(query, ownerID)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID); err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// FindByIDAndOwner は指定されたIDのTodoを所有者チェック付きで取得します。
func (r *TodoRepository) FindByIDAndOwner(id, ownerID int) (*models.Todo, error) {
	query := "SELECT id, title, description, priority, complete, owner_id FROM todos WHERE id = ? AND owner_id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id, ownerID).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

// Update は指定されたIDのTodoを部分更新します。
// patchのnilフィールドはSET句に含めず、現在の値を保持します。
func (r *TodoRepository) Update(id, ownerID int, patch *models.TodoUpdateRequest) error {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Complete != nil {
		sets = append(sets, "complete = ?")
		args = append(args, *patch.Complete)
	}

	// すべてnilなら更新対象なし。存在確認はサービス層が済ませている。
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
	args = append(args, id, ownerID)

	if _, err := r.DB.Exec(query, args...); err != nil {
		log.Printf("Failed to update todo: %v", err)
		return fmt.Errorf("could not update todo: %w", err)
	}
	return nil
}

// Delete は指定されたIDのTodoを所有者チェック付きで削除します。
func (r *TodoRepository) Delete(id, ownerID int) error {
	result, err := r.DB.Exec("DELETE FROM todos WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
