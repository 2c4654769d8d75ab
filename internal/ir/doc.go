// Package ir provides the exported, read-only snapshot of a preprocessed
// KORE definition: tag and layout tables, axiom ordinals, derived
// relations and the hooked-sort, fresh-function and injection tables.
//
// This package contains type definitions and their canonical encoding only.
// ir imports nothing internal, so code generators, the store and the CLI
// can share it without depending on the definition package.
//
// Key design constraints:
//   - All JSON tags use snake_case
//   - No float types; header words are carried as hex strings
//   - Every list is emitted in a deterministic order so that structurally
//     identical definitions produce byte-identical snapshots
package ir
