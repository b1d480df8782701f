// Package memory keeps users and tasks in process memory. Data is lost on
// restart; it backs local runs and end-to-end tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// Store holds every record behind one lock and hands out the user and task
// repositories that share it.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by username
	tasks []domain.Task          // insertion order
}

func NewStore() *Store {
	return &Store{users: make(map[string]domain.User)}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	user.ID = uuid.NewString()
	r.s.users[user.Username] = *user
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task.ID = uuid.NewString()
	r.s.tasks = append(r.s.tasks, cloneTask(*task))
	return nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Task{}
	for _, t := range r.s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.index(id, ""); i >= 0 {
		t := cloneTask(r.s.tasks[i])
		return &t, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(task.ID, task.OwnerID)
	if i < 0 {
		return domain.ErrTaskNotFound
	}
	updated := cloneTask(*task)
	updated.CreatedAt = r.s.tasks[i].CreatedAt
	r.s.tasks[i] = updated
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(id, ownerID)
	if i < 0 {
		return domain.ErrTaskNotFound
	}
	r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
	return nil
}

// index finds a task by ID, and by owner when ownerID is set. Callers hold the lock.
func (r *TaskRepository) index(id, ownerID string) int {
	for i := range r.s.tasks {
		t := &r.s.tasks[i]
		if t.ID == id && (ownerID == "" || t.OwnerID == ownerID) {
			return i
		}
	}
	return -1
}

// cloneTask copies the due date so callers never share the stored pointer.
func cloneTask(t domain.Task) domain.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
