package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/ledger"
	"github.com/Stev1000/storefront/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedProduct(t *testing.T, s *store.Store, id, name string, stock int) {
	t.Helper()

	err := s.InsertProduct(context.Background(), &catalog.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(100),
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func stockOf(t *testing.T, s *store.Store, id string) int {
	t.Helper()

	p, err := s.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestApply_ReserveAndRelease(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedProduct(t, s, "p1", "Laptop", 5)
	seedProduct(t, s, "p2", "Phone", 3)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Reserve([]string{"p1", "p2"}))
	})
	require.NoError(t, err)
	assert.Equal(t, 4, stockOf(t, s, "p1"))
	assert.Equal(t, 2, stockOf(t, s, "p2"))

	err = s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Release([]string{"p1", "p2"}))
	})
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, s, "p1"))
	assert.Equal(t, 3, stockOf(t, s, "p2"))
}

func TestApply_AllOrNothing(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedProduct(t, s, "p1", "Laptop", 5)
	seedProduct(t, s, "p2", "Phone", 0)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Reserve([]string{"p1", "p2"}))
	})
	require.Error(t, err)
	assert.True(t, catalog.IsStockError(err))

	// The in-stock product must be untouched.
	assert.Equal(t, 5, stockOf(t, s, "p1"))
	assert.Equal(t, 0, stockOf(t, s, "p2"))
}

func TestApply_ViolationsSortedByName(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedProduct(t, s, "p1", "Zebra Mug", 0)
	seedProduct(t, s, "p2", "Apple Stand", 0)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Reserve([]string{"p1", "p2"}))
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Products out of stock: Apple Stand, Zebra Mug")
}

func TestApply_MissingProduct(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedProduct(t, s, "p1", "Laptop", 5)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Reserve([]string{"p1", "ghost"}))
	})
	require.Error(t, err)
	assert.True(t, catalog.IsValidation(err))
	assert.EqualError(t, err, "Products not found: [ghost]")
	assert.Equal(t, 5, stockOf(t, s, "p1"))
}

func TestApply_EmptyBatch(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, nil)
	})
	assert.NoError(t, err)
}

func TestApply_ReleaseIgnoresPrecondition(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedProduct(t, s, "p1", "Laptop", 0)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Release([]string{"p1"}))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stockOf(t, s, "p1"))
}

func TestReserve_DuplicatesCollapse(t *testing.T) {
	deltas := ledger.Reserve([]string{"p1", "p1", "p2"})
	assert.Equal(t, map[string]int{"p1": -1, "p2": -1}, deltas)
}

func TestRebalance_KeptProductsNetZero(t *testing.T) {
	deltas := ledger.Rebalance([]string{"p1", "p2"}, []string{"p2", "p3"})
	assert.Equal(t, map[string]int{"p1": 1, "p2": 0, "p3": -1}, deltas)
}

func TestRebalance_KeptProductNeverFails(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	// p1 is kept across the replace and has zero free stock; the net-zero
	// delta must not trip the under-stock precondition.
	seedProduct(t, s, "p1", "Laptop", 0)
	seedProduct(t, s, "p2", "Phone", 1)

	err := s.WithTx(ctx, func(tx *store.Tx) error {
		return ledger.Apply(ctx, tx, ledger.Rebalance([]string{"p1"}, []string{"p1", "p2"}))
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, s, "p1"))
	assert.Equal(t, 0, stockOf(t, s, "p2"))
}
