package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Tomlord1122/todo-server/internal/domain"
	"github.com/Tomlord1122/todo-server/internal/repository"
)

var (
	// ErrTodoNotFound is returned when no todo has the requested ID.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrTextRequired is returned when a create request carries no text field.
	ErrTextRequired = errors.New("text is required")
)

// Input/Output Structs (Data Transfer Objects - DTOs)

// CreateTodoRequest holds the data needed to create a new todo.
// Text is a pointer so a missing field can be told apart from an empty one.
type CreateTodoRequest struct {
	Text *string `json:"text"`
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Nil fields are left unchanged.
type UpdateTodoRequest struct {
	Text  *string           `json:"text"`
	State *domain.TodoState `json:"state"`
}

// TodoResponse is the representation of a Todo returned by the service.
type TodoResponse struct {
	ID    uuid.UUID        `json:"id"`
	Text  string           `json:"text"`
	State domain.TodoState `json:"state"`
}

// TodoService defines the operations for managing todos.
type TodoService interface {
	// CreateTodo stores a new todo in the New state.
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)

	// GetTodoByID retrieves a single todo item by its ID.
	GetTodoByID(ctx context.Context, id uuid.UUID) (*TodoResponse, error)

	// GetAllTodos retrieves every todo, in no particular order.
	GetAllTodos(ctx context.Context) ([]TodoResponse, error)

	// UpdateTodo applies the provided fields to an existing todo.
	UpdateTodo(ctx context.Context, id uuid.UUID, req UpdateTodoRequest) (*TodoResponse, error)

	// DeleteTodo removes a todo item by its ID.
	DeleteTodo(ctx context.Context, id uuid.UUID) error

	// CountTodos reports how many todos are currently stored.
	CountTodos(ctx context.Context) int
}

type todoService struct {
	repo   repository.TodoRepository
	logger *log.Logger
}

// NewTodoService creates a TodoService backed by repo.
func NewTodoService(repo repository.TodoRepository, logger *log.Logger) TodoService {
	return &todoService{
		repo:   repo,
		logger: logger.WithPrefix("todos"),
	}
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	if req.Text == nil {
		return nil, ErrTextRequired
	}

	todo := domain.Todo{
		ID:    uuid.New(),
		Text:  *req.Text,
		State: domain.StateNew,
	}
	s.repo.Insert(todo)
	s.logger.Debug("created todo", "id", todo.ID)

	return toResponse(todo), nil
}

func (s *todoService) GetTodoByID(ctx context.Context, id uuid.UUID) (*TodoResponse, error) {
	todo, ok := s.repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("todo with ID %s: %w", id, ErrTodoNotFound)
	}
	return toResponse(todo), nil
}

func (s *todoService) GetAllTodos(ctx context.Context) ([]TodoResponse, error) {
	todos := s.repo.List()

	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, *toResponse(todo))
	}
	return responses, nil
}

// UpdateTodo reads, modifies and writes back the todo. Only the final
// write holds the exclusive lock, so concurrent updates of the same ID
// are last-writer-wins.
func (s *todoService) UpdateTodo(ctx context.Context, id uuid.UUID, req UpdateTodoRequest) (*TodoResponse, error) {
	todo, ok := s.repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("todo with ID %s not found for update: %w", id, ErrTodoNotFound)
	}

	if req.Text != nil {
		todo.Text = *req.Text
	}
	if req.State != nil {
		todo.State = *req.State
	}

	s.repo.Insert(todo)
	s.logger.Debug("updated todo", "id", id, "state", todo.State)

	return toResponse(todo), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	if !s.repo.Remove(id) {
		return fmt.Errorf("todo with ID %s not found for deletion: %w", id, ErrTodoNotFound)
	}
	s.logger.Debug("deleted todo", "id", id)
	return nil
}

func (s *todoService) CountTodos(ctx context.Context) int {
	return s.repo.Len()
}

func toResponse(todo domain.Todo) *TodoResponse {
	return &TodoResponse{
		ID:    todo.ID,
		Text:  todo.Text,
		State: todo.State,
	}
}
