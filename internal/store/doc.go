// Package store provides SQLite-backed durable storage for the storefront
// catalog: customers, products, orders, and the order_products link table.
//
// # Design
//
// The many-to-many order/product association is an explicit link table
// owned by this package, one row per order-product link (and therefore one
// stock reservation per row). The reverse index on product_id supports
// reference counting on products without an ORM-managed join.
//
// All SQL lives in this package. Entity accessors are defined once against
// the shared dbtx interface and are available both on Store (auto-commit)
// and on Tx (inside a transaction), so callers never hand-write queries.
//
// # Isolation
//
// Write transactions use BEGIN IMMEDIATE on a single-connection pool.
// Writers are serialized end to end: a stock precondition checked inside a
// transaction cannot be invalidated by another writer before the matching
// decrement commits.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
