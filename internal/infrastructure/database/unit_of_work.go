package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"taskboard/go-backend/internal/infrastructure/config"
)

// TxError is a transaction-side failure (begin, commit, rollback, timeout).
// It is surfaced only after the rollback side-effect has completed, and it
// never replaces an error raised by the wrapped operation itself.
type TxError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *TxError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transaction %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// UnitOfWork coordinates one database transaction per logical call chain.
// It is two-state: Idle (no handle) and Active (handle bound). Re-entrant
// transactional calls observe Active and reuse the existing handle; only the
// outermost call finalizes. Transactions never nest in the underlying store.
//
// Each inbound request gets its own UnitOfWork instance; it must not be
// shared across concurrent call chains.
type UnitOfWork struct {
	db          *gorm.DB
	maxWait     time.Duration
	maxDuration time.Duration

	mu     sync.Mutex
	tx     *gorm.DB
	txCtx  context.Context
	cancel context.CancelFunc
}

// UnitOfWorkFactory builds one UnitOfWork per call chain
type UnitOfWorkFactory struct {
	db  *gorm.DB
	cfg config.TransactionConfig
}

// NewUnitOfWorkFactory creates a factory bound to a connection and the
// configured transaction limits
func NewUnitOfWorkFactory(db *gorm.DB, cfg config.TransactionConfig) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, cfg: cfg}
}

// New creates a fresh Idle unit of work
func (f *UnitOfWorkFactory) New() *UnitOfWork {
	return &UnitOfWork{
		db:          f.db,
		maxWait:     f.cfg.MaxWait,
		maxDuration: f.cfg.MaxDuration,
	}
}

// Execute runs op inside a transaction in automatic mode: commit when op
// returns nil error, rollback and re-raise otherwise. The original error's
// identity is preserved; rollback always happens before it propagates. If a
// transaction is already active on this unit of work or on the context, op
// reuses it and finalization stays with the outermost call.
func (u *UnitOfWork) Execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if opCtx, nested := u.reenter(ctx); nested {
		return op(opCtx)
	}

	opCtx, err := u.begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback()
			panic(r)
		}
	}()

	result, opErr := op(opCtx)
	if opErr != nil {
		_ = u.Rollback()
		return nil, opErr
	}

	if err := u.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteManual runs op inside a transaction but does NOT commit: the caller
// must invoke Commit for the changes to persist, or Rollback to discard them.
// Without an explicit Commit the transaction stays open until the configured
// max-duration bound forces it down. An error or panic inside op still rolls
// back, so the unit of work is never left Active across a failed call.
func (u *UnitOfWork) ExecuteManual(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if opCtx, nested := u.reenter(ctx); nested {
		return op(opCtx)
	}

	opCtx, err := u.begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback()
			panic(r)
		}
	}()

	result, opErr := op(opCtx)
	if opErr != nil {
		_ = u.Rollback()
		return nil, opErr
	}
	return result, nil
}

// Commit finalizes the active transaction. Calling it while Idle is a no-op,
// so committing twice is safe.
func (u *UnitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return nil
	}

	timedOut := u.txCtx.Err() != nil
	err := u.tx.Commit().Error
	// A failed commit never leaves a live transaction: database/sql has
	// already terminated it, so the coordinator clears to Idle either way.
	u.clearLocked()

	if err != nil {
		return &TxError{Op: "commit", Timeout: timedOut || errors.Is(err, context.DeadlineExceeded), Err: err}
	}
	return nil
}

// Rollback discards the active transaction. Calling it while Idle is a no-op,
// so rolling back twice is safe.
func (u *UnitOfWork) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return nil
	}

	timedOut := u.txCtx.Err() != nil
	err := u.tx.Rollback().Error
	u.clearLocked()

	if err != nil && !timedOut {
		return &TxError{Op: "rollback", Err: err}
	}
	return nil
}

// InTransaction reports whether a transaction handle is currently bound
func (u *UnitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx != nil
}

// reenter detects an already-active transaction, either on this unit of work
// or carried by the context, and returns a context bound to that handle.
// Re-entry is a no-op with respect to the state machine.
func (u *UnitOfWork) reenter(ctx context.Context) (context.Context, bool) {
	if _, ok := TxFromContext(ctx); ok {
		return ctx, true
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return WithTx(ctx, u.tx), true
	}
	return ctx, false
}

// begin opens a read-committed transaction, bounded by the configured
// acquire-wait and max-duration limits. The returned context carries the
// transaction handle and expires with it.
func (u *UnitOfWork) begin(ctx context.Context) (context.Context, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return WithTx(ctx, u.tx), nil
	}

	// The acquire-wait bound applies to pool checkout only. It cannot be a
	// deadline on the context the transaction is begun with: database/sql
	// ties the transaction's lifetime to that context and rolls it back the
	// moment the context ends.
	sqlDB, err := u.db.DB()
	if err != nil {
		return nil, &TxError{Op: "begin", Err: err}
	}
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, u.maxWait)
	conn, err := sqlDB.Conn(acquireCtx)
	cancelAcquire()
	if err != nil {
		return nil, &TxError{
			Op:      "begin",
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	_ = conn.Close()

	// Every statement issued through the handle, and the operation itself,
	// dies with the transaction deadline. The cancel stays held until
	// finalization clears the handle.
	txCtx, cancel := context.WithTimeout(ctx, u.maxDuration)

	// Fixed isolation for every transaction this coordinator opens. SQLite
	// transactions are serializable already and its driver rejects weaker
	// levels, so it keeps the default.
	isolation := sql.LevelReadCommitted
	if u.db.Dialector.Name() == "sqlite" {
		isolation = sql.LevelDefault
	}

	tx := u.db.WithContext(txCtx).Begin(&sql.TxOptions{
		Isolation: isolation,
	})
	if tx.Error != nil {
		cancel()
		return nil, &TxError{
			Op:      "begin",
			Timeout: errors.Is(tx.Error, context.DeadlineExceeded),
			Err:     tx.Error,
		}
	}

	u.tx = tx
	u.txCtx = txCtx
	u.cancel = cancel

	return WithTx(txCtx, tx), nil
}

// clearLocked resets to Idle. Caller holds u.mu.
func (u *UnitOfWork) clearLocked() {
	if u.cancel != nil {
		u.cancel()
	}
	u.tx = nil
	u.txCtx = nil
	u.cancel = nil
}
