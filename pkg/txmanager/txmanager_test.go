package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/metrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	commitErrs []error
	txs        []*fakeTx
	opts       []*sql.TxOptions
	beginErr   error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{}
	if len(f.txs) < len(f.commitErrs) {
		tx.commitErr = f.commitErrs[len(f.txs)]
	}
	f.txs = append(f.txs, tx)
	f.opts = append(f.opts, opts)
	return tx, nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestDoSerializable_Commits(t *testing.T) {
	db := &fakeBeginner{}
	mgr := New(db, WithBackoff(0))

	var sawTx bool
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr()}}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	mgr := New(db, WithBackoff(0), WithMaxRetries(3), WithMetrics(m))

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, db.txs, 3)
	assert.True(t, db.txs[2].committed)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.DBTxRetriesTotal))
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	mgr := New(db, WithBackoff(0), WithMaxRetries(2), WithMetrics(m))

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, IsSerializationFailure(err))
	assert.Len(t, db.txs, 3)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBTxRetriesExceeded))
}

func TestDoSerializable_FnErrorRollsBackWithoutRetry(t *testing.T) {
	db := &fakeBeginner{}
	mgr := New(db, WithBackoff(0))
	errBusiness := errors.New("rejected")

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, calls)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDoSerializable_NestedRunsInOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	mgr := New(db, WithBackoff(0))

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDo_BeginError(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("connection refused")}
	mgr := New(db)

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDoSerializable_ContextCancelledDuringBackoff(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationErr()}}
	mgr := New(db, WithMaxRetries(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mgr.DoSerializable(ctx, func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Len(t, db.txs, 1)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
}
