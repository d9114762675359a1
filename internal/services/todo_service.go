package services

import (
	"todo-app/internal/models"
	"todo-app/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
// すべての操作は呼び出し元ユーザーの所有範囲に限定されます。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。所有者は常に呼び出し元です。
func (s *TodoService) CreateTodo(req models.TodoCreateRequest, ownerID int) (*models.Todo, error) {
	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     ownerID,
	}
	return s.todoRepo.Create(todo)
}

// ListTodos は呼び出し元が所有するTodoをすべて取得します。
func (s *TodoService) ListTodos(ownerID int) ([]*models.Todo, error) {
	return s.todoRepo.FindByOwner(ownerID)
}

// GetTodo は指定IDのTodoを取得します。
// 他人のTodoは存在しないものとして扱われます (ErrTodoNotFound)。
func (s *TodoService) GetTodo(id, ownerID int) (*models.Todo, error) {
	return s.todoRepo.FindByIDAndOwner(id, ownerID)
}

// UpdateTodo はTodoを部分更新します。nilのフィールドは変更されません。
func (s *TodoService) UpdateTodo(id, ownerID int, patch *models.TodoUpdateRequest) error {
	// 存在と所有の確認。見つからなければErrTodoNotFound。
	if _, err := s.todoRepo.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}
	return s.todoRepo.Update(id, ownerID, patch)
}

// DeleteTodo はTodoを削除します。所有者でなければErrTodoNotFound。
func (s *TodoService) DeleteTodo(id, ownerID int) error {
	return s.todoRepo.Delete(id, ownerID)
}
