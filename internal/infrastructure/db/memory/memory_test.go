package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	u := &domain.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Username: "alice"}))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Username: "alice"}), domain.ErrConflict)
}

func TestUserRepository_ConcurrentRegistrationSingleWinner(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if users.Create(ctx, &domain.User{Username: "alice"}) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestTaskRepository_Lifecycle(t *testing.T) {
	tasks := NewStore().Tasks()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := domain.NewTask("alice", "first", "", "", "", nil, now)
	b := domain.NewTask("bob", "other", "", "", "", nil, now)
	c := domain.NewTask("alice", "second", "", "", "", nil, now)
	for _, task := range []*domain.Task{a, b, c} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	list, err := tasks.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)

	a.Title = "renamed"
	require.NoError(t, tasks.Update(ctx, a))
	got, err := tasks.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	// writes are scoped by owner
	hijack := *a
	hijack.OwnerID = "bob"
	assert.ErrorIs(t, tasks.Update(ctx, &hijack), domain.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, "bob", a.ID), domain.ErrTaskNotFound)

	require.NoError(t, tasks.Delete(ctx, "alice", a.ID))
	_, err = tasks.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty, err := tasks.ListByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTaskRepository_ReturnsCopies(t *testing.T) {
	tasks := NewStore().Tasks()
	ctx := context.Background()
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	task := domain.NewTask("alice", "x", "", "", "", &due, time.Now())
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	*got.DueDate = got.DueDate.AddDate(1, 0, 0)
	got.Title = "mutated"

	again, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", again.Title)
	assert.True(t, due.Equal(*again.DueDate))
}
