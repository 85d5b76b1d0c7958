// Package history provides SQLite-backed storage for generation run records.
//
// Each successful generation appends one run row keyed by a time-ordered
// UUID. Rows are append-only; recording the same run twice is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package history
