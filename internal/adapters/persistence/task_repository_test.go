package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/go-backend/internal/adapters/persistence"
	"taskboard/go-backend/internal/domain/task"
	"taskboard/go-backend/test/helpers"
)

func newTask(projectID, name string) *task.Task {
	return &task.Task{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		Status:    task.StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)
	created := newTask("project-1", "write the report")
	created.Description = "quarterly report"

	// Act
	err := repo.Create(context.Background(), created)

	// Assert
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.ProjectID, found.ProjectID)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, created.Description, found.Description)
	assert.Equal(t, task.StatusOpen, found.Status)
	assert.Nil(t, found.CompletedAt)
}

func TestTaskRepository_FindMissingIsTypedError(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	_, err := repo.FindByID(context.Background(), "no-such-task")

	var notFound *task.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-task", notFound.ID)
}

func TestTaskRepository_Update(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)
	created := newTask("project-1", "flaky test")
	require.NoError(t, repo.Create(context.Background(), created))

	require.NoError(t, created.Complete(time.Now().UTC()))
	require.NoError(t, repo.Update(context.Background(), created))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, found.Status)
	require.NotNil(t, found.CompletedAt)
}

func TestTaskRepository_FindByProjectFiltersAndPages(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), newTask("project-a", "task")))
	}
	completed := newTask("project-a", "done task")
	require.NoError(t, completed.Complete(time.Now().UTC()))
	require.NoError(t, repo.Create(context.Background(), completed))
	require.NoError(t, repo.Create(context.Background(), newTask("project-b", "other project")))

	all, err := repo.FindByProject(context.Background(), "project-a", task.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	open, err := repo.FindByProject(context.Background(), "project-a", task.QueryOptions{Status: task.StatusOpen})
	require.NoError(t, err)
	assert.Len(t, open, 3)

	paged, err := repo.FindByProject(context.Background(), "project-a", task.QueryOptions{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTaskRepository(db)
	created := newTask("project-1", "short lived")
	require.NoError(t, repo.Create(context.Background(), created))

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	_, err := repo.FindByID(context.Background(), created.ID)
	var notFound *task.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestTaskAlreadyCompletedIsConflict(t *testing.T) {
	created := newTask("project-1", "done twice")
	require.NoError(t, created.Complete(time.Now().UTC()))

	err := created.Complete(time.Now().UTC())

	var conflict *task.ErrAlreadyCompleted
	assert.ErrorAs(t, err, &conflict)
}
