package store

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/kore/internal/ir"
)

// Relation names as stored in the relations table.
const (
	RelationSupersorts   = "supersorts"
	RelationSubsorts     = "subsorts"
	RelationOverloads    = "overloads"
	RelationSortContains = "sort_contains"
)

// WriteSnapshot stores snap under a new id unless a snapshot with the same
// fingerprint exists, in which case the existing id is returned and created
// is false. name records where the snapshot came from, typically the
// definition file.
func (s *Store) WriteSnapshot(ctx context.Context, name string, snap *ir.Snapshot) (id string, created bool, err error) {
	fingerprint, err := ir.Fingerprint(snap)
	if err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	}
	body, err := ir.MarshalCanonical(snap)
	if err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	}
	defer tx.Rollback()

	id = uuid.NewString()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, fingerprint, name, ir_version, core_version, layout_count, injection_symbol, body, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots))
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		id,
		fingerprint,
		name,
		snap.IRVersion,
		ir.CoreVersion,
		snap.LayoutCount,
		snap.InjectionSymbol,
		string(body),
	)
	if err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	} else if n == 0 {
		info, err := s.FindByFingerprint(ctx, fingerprint)
		if err != nil {
			return "", false, fmt.Errorf("write snapshot: %w", err)
		}
		return info.ID, false, nil
	}

	if err := writeSymbols(ctx, tx, id, snap.Symbols); err != nil {
		return "", false, err
	}
	if err := writeAxioms(ctx, tx, id, snap.Axioms); err != nil {
		return "", false, err
	}
	for relation, edges := range map[string]map[string][]string{
		RelationSupersorts:   snap.Relations.Supersorts,
		RelationSubsorts:     snap.Relations.Subsorts,
		RelationOverloads:    snap.Relations.Overloads,
		RelationSortContains: snap.Relations.SortContains,
	} {
		if err := writeRelation(ctx, tx, id, relation, edges); err != nil {
			return "", false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write snapshot: %w", err)
	}
	return id, true, nil
}

func writeSymbols(ctx context.Context, tx *sql.Tx, id string, symbols []ir.SymbolEntry) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symbols (snapshot_id, tag, name, text, signature, layout, header)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write symbols: %w", err)
	}
	defer stmt.Close()

	for _, sym := range symbols {
		if _, err := stmt.ExecContext(ctx, id, sym.Tag, sym.Name, sym.Text, sym.Signature, sym.Layout, sym.Header); err != nil {
			return fmt.Errorf("write symbol %d: %w", sym.Tag, err)
		}
	}
	return nil
}

func writeAxioms(ctx context.Context, tx *sql.Tx, id string, axioms []ir.AxiomEntry) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO axioms (snapshot_id, ordinal, retained) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write axioms: %w", err)
	}
	defer stmt.Close()

	for _, ax := range axioms {
		if _, err := stmt.ExecContext(ctx, id, ax.Ordinal, ax.Retained); err != nil {
			return fmt.Errorf("write axiom %d: %w", ax.Ordinal, err)
		}
	}
	return nil
}

func writeRelation(ctx context.Context, tx *sql.Tx, id, relation string, edges map[string][]string) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO relations (snapshot_id, relation, source, target) VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write %s: %w", relation, err)
	}
	defer stmt.Close()

	for _, source := range slices.Sorted(maps.Keys(edges)) {
		for _, target := range edges[source] {
			if _, err := stmt.ExecContext(ctx, id, relation, source, target); err != nil {
				return fmt.Errorf("write %s edge %s -> %s: %w", relation, source, target, err)
			}
		}
	}
	return nil
}
