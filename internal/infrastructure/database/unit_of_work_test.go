package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/go-backend/internal/adapters/persistence"
	"taskboard/go-backend/internal/domain/project"
	"taskboard/go-backend/internal/infrastructure/config"
	"taskboard/go-backend/internal/infrastructure/database"
	"taskboard/go-backend/test/helpers"
)

func newFactory(t *testing.T) (*database.UnitOfWorkFactory, *persistence.GormProjectRepository) {
	db := helpers.NewTestDB(t)
	factory := database.NewUnitOfWorkFactory(db, config.TransactionConfig{
		MaxWait:     5 * time.Second,
		MaxDuration: 30 * time.Second,
	})
	return factory, persistence.NewGormProjectRepository(db)
}

func newProject(name string) *project.Project {
	return &project.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func TestExecute_CommitsOnSuccessAndReturnsValue(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("alpha")

	result, err := uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return "committed", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "committed", result)
	assert.False(t, uow.InTransaction())

	// Fresh read outside any transaction sees the write
	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alpha", found.Name)
}

func TestExecute_RollsBackOnErrorAndPreservesIdentity(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("doomed")
	boom := errors.New("boom")

	_, err := uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return nil, boom
	})

	// The operation's error comes back unchanged, after rollback
	require.ErrorIs(t, err, boom)
	assert.False(t, uow.InTransaction())

	// The write was not persisted
	_, err = repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestExecute_RollsBackOnPanic(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("panicky")

	require.Panics(t, func() {
		_, _ = uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
			if err := repo.Create(txCtx, p); err != nil {
				return nil, err
			}
			panic("handler blew up")
		})
	})

	assert.False(t, uow.InTransaction())

	_, err := repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestExecute_InTransactionDuringOperation(t *testing.T) {
	factory, _ := newFactory(t)
	uow := factory.New()

	_, err := uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
		assert.True(t, uow.InTransaction())
		return nil, nil
	})

	require.NoError(t, err)
	assert.False(t, uow.InTransaction())
}

func TestExecute_NestedCallReusesHandle(t *testing.T) {
	factory, _ := newFactory(t)
	uow := factory.New()

	_, err := uow.Execute(context.Background(), func(outerCtx context.Context) (interface{}, error) {
		outerTx, ok := database.TxFromContext(outerCtx)
		require.True(t, ok)

		// Re-entering through the context-bearing path
		_, err := uow.Execute(outerCtx, func(innerCtx context.Context) (interface{}, error) {
			innerTx, ok := database.TxFromContext(innerCtx)
			require.True(t, ok)
			assert.Same(t, outerTx, innerTx)
			return nil, nil
		})
		require.NoError(t, err)

		// Re-entering with a bare context still finds the active handle
		_, err = uow.Execute(context.Background(), func(innerCtx context.Context) (interface{}, error) {
			innerTx, ok := database.TxFromContext(innerCtx)
			require.True(t, ok)
			assert.Same(t, outerTx, innerTx)
			return nil, nil
		})
		return nil, err
	})

	require.NoError(t, err)
	assert.False(t, uow.InTransaction())
}

func TestExecute_NestedErrorDoesNotFinalize(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("survives-nested-error")
	boom := errors.New("inner failure")

	_, err := uow.Execute(context.Background(), func(outerCtx context.Context) (interface{}, error) {
		if err := repo.Create(outerCtx, p); err != nil {
			return nil, err
		}

		// The inner failure propagates, but only the outermost call
		// finalizes; the outer operation chooses to swallow it.
		_, innerErr := uow.Execute(outerCtx, func(innerCtx context.Context) (interface{}, error) {
			return nil, boom
		})
		assert.ErrorIs(t, innerErr, boom)
		assert.True(t, uow.InTransaction())

		return nil, nil
	})

	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func TestExecuteManual_StaysActiveUntilCommit(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("manual")

	result, err := uow.ExecuteManual(context.Background(), func(txCtx context.Context) (interface{}, error) {
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return p.ID, nil
	})

	require.NoError(t, err)
	assert.Equal(t, p.ID, result)
	assert.True(t, uow.InTransaction())

	// Not visible outside the transaction before commit
	_, err = repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, uow.Commit())
	assert.False(t, uow.InTransaction())

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "manual", found.Name)
}

func TestExecuteManual_RollbackDiscards(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("discarded")

	_, err := uow.ExecuteManual(context.Background(), func(txCtx context.Context) (interface{}, error) {
		return nil, repo.Create(txCtx, p)
	})
	require.NoError(t, err)

	require.NoError(t, uow.Rollback())
	assert.False(t, uow.InTransaction())

	_, err = repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestExecuteManual_ErrorStillRollsBack(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()
	p := newProject("failed-manual")
	boom := errors.New("manual failure")

	_, err := uow.ExecuteManual(context.Background(), func(txCtx context.Context) (interface{}, error) {
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, uow.InTransaction())

	_, err = repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestExecute_CommitsAfterOperationOutlivesAcquireWait(t *testing.T) {
	db := helpers.NewTestDB(t)
	factory := database.NewUnitOfWorkFactory(db, config.TransactionConfig{
		MaxWait:     50 * time.Millisecond,
		MaxDuration: 30 * time.Second,
	})
	repo := persistence.NewGormProjectRepository(db)
	uow := factory.New()
	p := newProject("slow-but-fine")

	// The acquire-wait bound covers pool checkout only: an operation that
	// runs longer than it must still write and commit normally.
	result, err := uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
		time.Sleep(200 * time.Millisecond)
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		return "committed", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "committed", result)
	assert.False(t, uow.InTransaction())

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "slow-but-fine", found.Name)
}

func TestExecute_MaxDurationExpiryIsTimeoutErrorAfterRollback(t *testing.T) {
	db := helpers.NewTestDB(t)
	factory := database.NewUnitOfWorkFactory(db, config.TransactionConfig{
		MaxWait:     5 * time.Second,
		MaxDuration: 50 * time.Millisecond,
	})
	repo := persistence.NewGormProjectRepository(db)
	uow := factory.New()
	p := newProject("too-slow")

	_, err := uow.Execute(context.Background(), func(txCtx context.Context) (interface{}, error) {
		if err := repo.Create(txCtx, p); err != nil {
			return nil, err
		}
		time.Sleep(200 * time.Millisecond)
		return "late", nil
	})

	var txErr *database.TxError
	require.ErrorAs(t, err, &txErr)
	assert.True(t, txErr.Timeout)
	assert.False(t, uow.InTransaction())

	// The write from before the deadline was rolled back with the transaction
	_, err = repo.FindByID(context.Background(), p.ID)
	var notFound *project.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestCommitAndRollbackAreIdempotent(t *testing.T) {
	factory, repo := newFactory(t)
	uow := factory.New()

	// Idle: both are no-ops
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())

	_, err := uow.ExecuteManual(context.Background(), func(txCtx context.Context) (interface{}, error) {
		return nil, repo.Create(txCtx, newProject("idempotent"))
	})
	require.NoError(t, err)

	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())
	assert.False(t, uow.InTransaction())
}
