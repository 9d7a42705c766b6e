package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Tomlord1122/todo-server/internal/domain"
)

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	Insert(todo domain.Todo)
	Get(id uuid.UUID) (domain.Todo, bool)
	Remove(id uuid.UUID) bool
	List() []domain.Todo
	Len() int
}

// memoryTodoRepository implements TodoRepository with a map guarded by a single RWMutex
type memoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]domain.Todo
}

// NewMemoryTodoRepository creates an empty in-memory todo repository
func NewMemoryTodoRepository() TodoRepository {
	return &memoryTodoRepository{todos: make(map[uuid.UUID]domain.Todo)}
}

// Insert adds the todo, replacing any entry with the same ID
func (r *memoryTodoRepository) Insert(todo domain.Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos[todo.ID] = todo
}

// Get returns a copy of the todo with the given ID
func (r *memoryTodoRepository) Get(id uuid.UUID) (domain.Todo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	todo, ok := r.todos[id]
	return todo, ok
}

// Remove deletes the todo and reports whether it was present
func (r *memoryTodoRepository) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return false
	}
	delete(r.todos, id)
	return true
}

// List returns a snapshot of all todos in map iteration order
func (r *memoryTodoRepository) List() []domain.Todo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	todos := make([]domain.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		todos = append(todos, todo)
	}
	return todos
}

func (r *memoryTodoRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.todos)
}
