// Package memorystore holds the todo collection in process memory.
package memorystore

import (
	"strings"
	"sync"

	"todo-backend/internal/ids"
	"todo-backend/internal/model"
)

type Option func(*TodoStore)

// WithIDFunc replaces the id generator. The store retries on ids that
// collide with a live item, so fn only needs to be mostly unique.
func WithIDFunc(fn func() string) Option {
	return func(s *TodoStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// TodoStore is an insertion-ordered map of todos keyed by id. All
// operations are serialized by mu.
type TodoStore struct {
	baseURL string
	newID   func() string

	mu    sync.RWMutex
	order []string
	todos map[string]*model.Todo
}

func NewTodoStore(baseURL string, opts ...Option) *TodoStore {
	s := &TodoStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		newID:   ids.NewID,
		todos:   make(map[string]*model.Todo),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TodoStore) Find(id string) (model.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return model.Todo{}, false
	}
	return *t, true
}

func (s *TodoStore) All() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Save creates a todo when id is empty and merges in onto the existing
// todo otherwise. Updating an unknown id returns model.ErrNotFound.
func (s *TodoStore) Save(id string, in model.TodoPatch) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return s.createLocked(in), nil
	}

	t, ok := s.todos[id]
	if !ok {
		return model.Todo{}, model.ErrNotFound
	}
	in.Apply(t)
	return *t, nil
}

func (s *TodoStore) createLocked(in model.TodoPatch) model.Todo {
	id := s.newID()
	for {
		if _, taken := s.todos[id]; !taken && id != "" {
			break
		}
		id = s.newID()
	}

	t := &model.Todo{
		ID:  id,
		URL: s.baseURL + "/" + id,
	}
	in.Apply(t)

	s.todos[id] = t
	s.order = append(s.order, id)
	return *t
}

func (s *TodoStore) Delete(id string) (model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return model.Todo{}, false
	}
	delete(s.todos, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return *t, true
}

// Clear empties the collection and returns what was removed.
func (s *TodoStore) Clear() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.snapshotLocked()
	s.order = nil
	s.todos = make(map[string]*model.Todo)
	return removed
}

func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *TodoStore) snapshotLocked() []model.Todo {
	out := make([]model.Todo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.todos[id])
	}
	return out
}
