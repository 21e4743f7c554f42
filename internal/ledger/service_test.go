package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func newTestService(t *testing.T) (*Service, *MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	store := NewMemoryStore()
	svc := NewService(store, zap.New(core))
	svc.SetClock(func() time.Time { return testMeta.At })
	return svc, store, logs
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, logs := newTestService(t)

	tb, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Zero(t, tb.Version)

	tb, err = svc.Import(ctx, tb.ID, "alice", sampleAccounts(), nil, "tb.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Version)

	tb, err = svc.UpdateMapping(ctx, tb.ID, "alice", "L1", model.StatementLiabilities, model.LineLongTermBorrowings)
	require.NoError(t, err)
	tb, err = svc.ApplyAdjustment(ctx, tb.ID, "bob", "A1", dec("100"), dec("0"), "")
	require.NoError(t, err)
	assert.Equal(t, 3, tb.Version)

	loaded, err := svc.Get(ctx, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Version)
	rec, _ := loaded.LastEdit()
	assert.Equal(t, "bob", rec.UserID)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Accounts)

	updates := logs.FilterMessage("ledger updated").All()
	require.Len(t, updates, 3)
	assert.Equal(t, "A1", updates[2].ContextMap()["account_id"])
}

func TestServiceUnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	tb, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Import(ctx, tb.ID, "alice", sampleAccounts(), nil, "")
	require.NoError(t, err)

	_, err = svc.ResetAdjustment(ctx, tb.ID, "alice", "NOPE")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	loaded, err := svc.Get(ctx, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
}

func TestServiceRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	svc, store, logs := newTestService(t)
	tb, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Import(ctx, tb.ID, "alice", sampleAccounts(), nil, "")
	require.NoError(t, err)

	calls := 0
	got, err := svc.Update(ctx, tb.ID, "alice", func(cur *TrialBalance, meta Meta) (*TrialBalance, error) {
		calls++
		if calls == 1 {
			// Another writer lands first.
			other, err := cur.ApplyAdjustment("A2", dec("1"), dec("0"), "concurrent", meta)
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, other, cur.Version))
		}
		return cur.ApplyAdjustment("A1", dec("5"), dec("0"), "mine", meta)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, got.Version)
	a2, _ := got.Account("A2")
	assert.True(t, a2.AdjustmentDebit.Equal(dec("1")), "concurrent write is preserved")
	assert.Equal(t, 1, logs.FilterMessage("version conflict, retrying").Len())
}

func TestServiceGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	svc.SetRetries(1)
	tb, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, tb.ID, "alice", func(cur *TrialBalance, meta Meta) (*TrialBalance, error) {
		bumped := cur.clone()
		bumped.Version++
		require.NoError(t, store.Save(ctx, bumped, cur.Version))
		return cur.Import(sampleAccounts(), nil, "", meta)
	})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestMemoryStoreRejectsStaleWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tb := New("tb-1")
	require.NoError(t, store.Save(ctx, tb, 0))

	next, err := tb.Import(sampleAccounts(), nil, "", testMeta)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, next, 0))

	assert.ErrorIs(t, store.Save(ctx, next, 0), ErrVersionConflict)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrLedgerNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tb, err := New("tb-1").Import(sampleAccounts(), nil, "", testMeta)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, tb, 0))

	loaded, err := store.Load(ctx, "tb-1")
	require.NoError(t, err)
	loaded.Accounts[0].AccountName = "mutated"

	again, err := store.Load(ctx, "tb-1")
	require.NoError(t, err)
	assert.Equal(t, "Cash at Bank", again.Accounts[0].AccountName)
}
