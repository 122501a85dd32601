// Package order implements the order transaction coordinator: every
// customer, product, and order mutation runs inside a single store
// transaction, with stock movement delegated to the inventory ledger and
// failures converted to uniform results at the operation boundary.
package order

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/store"
)

// Coordinator orchestrates catalog mutations against a store handle.
//
// Two transaction strategies exist, deliberately kept as distinct methods
// rather than one generic loop:
//
//   - single-unit (CreateOrder, UpdateOrder, DeleteOrder, single-entity
//     CRUD): strictly all-or-nothing per call; the first failure rolls the
//     whole transaction back.
//   - per-item-isolated (BulkCreateCustomers, BulkCreateProducts,
//     BulkUpdateProductStock): one transaction scope for the batch, but a
//     per-item validation failure is collected as a labeled error and does
//     not abort sibling items. Only a store-level failure aborts the batch.
//
// The coordinator holds no request state and no locks: isolation comes
// entirely from the store's serialized write transactions.
type Coordinator struct {
	store  *store.Store
	ids    catalog.IDGenerator
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithIDGenerator overrides the entity id generator.
// Tests use catalog.NewFixedIDGenerator for deterministic ids.
func WithIDGenerator(g catalog.IDGenerator) Option {
	return func(c *Coordinator) { c.ids = g }
}

// WithLogger overrides the coordinator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock overrides the creation-timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// New creates a Coordinator over the given store.
// Defaults: UUIDv7 ids, discarded logs, wall clock.
func New(s *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  s,
		ids:    catalog.UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// failureMessage converts an internal error into the message surfaced by
// the uniform mutation result. Domain errors pass their message through
// verbatim; anything else is an unclassified store failure.
func failureMessage(err error) string {
	var de *catalog.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return catalog.NewTransaction(err).Message
}

// dedupe returns ids with duplicates removed, preserving first-seen order.
// Order product sets are sets; callers may still pass repeated ids.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
