// Package store provides SQLite-backed run history for alignment runs.
//
// The store keeps two tables:
//   - runs: one row per alignment run (config fingerprint, mode, input
//     sequences, best score, alignment count)
//   - alignments: the rendered alignments of each run, in output order
//
// # Ordering
//
// Every run gets a seq from a per-database counter (MAX(seq)+1, assigned
// inside the write transaction). All listings order by seq, NEVER by
// timestamps, so history is stable regardless of wall time.
//
// # Identity
//
// Run ids are UUIDv7 strings from an IDGenerator; tests use a fixed
// generator for reproducible ids.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
