package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := gormConfig()
	cfg.Logger = logger.Discard
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	require.NoError(t, err)

	return NewStore(db), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestUserRepository_Create(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`INSERT INTO "users"`)).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &domain.User{Username: "alice", PasswordHash: "hash", CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(context.Background(), u))
	assert.Len(t, u.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.Users().Create(context.Background(), &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`INSERT INTO "users"`)).WillReturnError(errors.New("db down"))

	err := store.Users().Create(context.Background(), &domain.User{Username: "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert user")
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

func TestUserRepository_FindByUsername(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow("u-1", "alice", "hash", created)
	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(rows)

	u, err := store.Users().FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, created.Equal(u.CreatedAt))
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	_, err := store.Users().FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func taskColumns() []string {
	return []string{"id", "user_id", "title", "description", "status", "priority", "due_date", "created_at", "updated_at"}
}

func TestTaskRepository_Create(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`INSERT INTO "tasks"`)).WillReturnResult(sqlmock.NewResult(0, 1))

	task := domain.NewTask("u-1", "Buy milk", "", "", "", nil, time.Now())
	require.NoError(t, store.Tasks().Create(context.Background(), task))
	assert.Len(t, task.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	store, mock := newStoreWithMock(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 3)

	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-1", "u-1", "a", "", "todo", "high", due, now, now).
		AddRow("t-2", "u-1", "b", "desc", "done", "low", nil, now, now)
	mock.ExpectQuery(q(`SELECT * FROM "tasks" WHERE user_id = $1 ORDER BY created_at, id`)).
		WithArgs("u-1").
		WillReturnRows(rows)

	tasks, err := store.Tasks().ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t-1", tasks[0].ID)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, due.Equal(*tasks[0].DueDate))
	assert.Nil(t, tasks[1].DueDate)
	assert.Equal(t, domain.StatusDone, tasks[1].Status)
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(q(`SELECT * FROM "tasks" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	_, err := store.Tasks().FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_Update_ScopedByOwner(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`UPDATE "tasks" SET`)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Tasks().Update(context.Background(), &domain.Task{ID: "t-1", OwnerID: "intruder", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`UPDATE "tasks" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Tasks().Update(context.Background(), &domain.Task{ID: "t-1", OwnerID: "u-1", Title: "x"})
	assert.NoError(t, err)
}

func TestTaskRepository_Delete(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(q(`DELETE FROM "tasks" WHERE id = $1 AND user_id = $2`)).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM "tasks" WHERE id = $1 AND user_id = $2`)).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := store.Tasks()
	assert.NoError(t, repo.Delete(context.Background(), "u-1", "t-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u-1", "t-1"), domain.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
