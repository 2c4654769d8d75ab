// Package store provides SQLite-backed storage for preprocessed definition
// snapshots, so that code generators and debuggers can look up tags,
// layouts and relations without re-running the passes.
//
// A snapshot is stored once per fingerprint:
//   - snapshots: one row per distinct snapshot, with its canonical JSON body
//   - symbols: the tag table, keyed by (snapshot_id, tag)
//   - axioms: every ordinal and whether the axiom was retained
//   - relations: one row per (relation, source, target) edge
//
// # Deterministic Query Results
//
// Every list query orders by an explicit key (seq, tag, ordinal, or
// target COLLATE BINARY), never by rowid or insertion accident.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Fingerprints are computed by ir.Fingerprint over RFC 8785 canonical JSON.
package store
