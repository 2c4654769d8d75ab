package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/kore/internal/ir"
)

// SnapshotInfo describes a stored snapshot without its tables.
type SnapshotInfo struct {
	ID          string
	Fingerprint string
	Name        string
	IRVersion   string
	CoreVersion string
	LayoutCount int
	Seq         int64
}

const snapshotColumns = `id, fingerprint, name, ir_version, core_version, layout_count, seq`

func scanSnapshotInfo(row interface{ Scan(...any) error }) (SnapshotInfo, error) {
	var info SnapshotInfo
	err := row.Scan(&info.ID, &info.Fingerprint, &info.Name, &info.IRVersion, &info.CoreVersion, &info.LayoutCount, &info.Seq)
	return info, err
}

// FindByFingerprint returns the snapshot with the given fingerprint.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (SnapshotInfo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE fingerprint = ?`, fingerprint)
	info, err := scanSnapshotInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotInfo{}, fmt.Errorf("snapshot %s: %w", fingerprint, ErrNotFound)
	}
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("find snapshot: %w", err)
	}
	return info, nil
}

// ListSnapshots returns every stored snapshot in the order it was written.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	infos := []SnapshotInfo{}
	for rows.Next() {
		info, err := scanSnapshotInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return infos, nil
}

// ReadSnapshot decodes the full snapshot stored under id.
func (s *Store) ReadSnapshot(ctx context.Context, id string) (*ir.Snapshot, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap ir.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// ReadSymbols returns the tag table of a snapshot ordered by tag.
//
// Returns an empty slice (not nil) if the snapshot has no symbols.
func (s *Store) ReadSymbols(ctx context.Context, id string) ([]ir.SymbolEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, name, text, signature, layout, header
		FROM symbols
		WHERE snapshot_id = ?
		ORDER BY tag ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	symbols := []ir.SymbolEntry{}
	for rows.Next() {
		var e ir.SymbolEntry
		if err := rows.Scan(&e.Tag, &e.Name, &e.Text, &e.Signature, &e.Layout, &e.Header); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return symbols, nil
}

// SymbolByText returns the symbol printed as text in a snapshot.
func (s *Store) SymbolByText(ctx context.Context, id, text string) (ir.SymbolEntry, error) {
	var e ir.SymbolEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT tag, name, text, signature, layout, header
		FROM symbols
		WHERE snapshot_id = ? AND text = ?
	`, id, text).Scan(&e.Tag, &e.Name, &e.Text, &e.Signature, &e.Layout, &e.Header)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.SymbolEntry{}, fmt.Errorf("symbol %s: %w", text, ErrNotFound)
	}
	if err != nil {
		return ir.SymbolEntry{}, fmt.Errorf("read symbol: %w", err)
	}
	return e, nil
}

// ReadAxioms returns the axiom ordinals of a snapshot in ascending order.
func (s *Store) ReadAxioms(ctx context.Context, id string) ([]ir.AxiomEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, retained FROM axioms WHERE snapshot_id = ? ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query axioms: %w", err)
	}
	defer rows.Close()

	axioms := []ir.AxiomEntry{}
	for rows.Next() {
		var e ir.AxiomEntry
		if err := rows.Scan(&e.Ordinal, &e.Retained); err != nil {
			return nil, fmt.Errorf("scan axiom: %w", err)
		}
		axioms = append(axioms, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate axioms: %w", err)
	}
	return axioms, nil
}

// Related returns the targets of source in one of the stored relations,
// ordered by binary collation.
//
// Returns an empty slice (not nil) if source has no edges.
func (s *Store) Related(ctx context.Context, id, relation, source string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target FROM relations
		WHERE snapshot_id = ? AND relation = ? AND source = ?
		ORDER BY target COLLATE BINARY ASC
	`, id, relation, source)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", relation, err)
	}
	defer rows.Close()

	targets := []string{}
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("scan %s: %w", relation, err)
		}
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", relation, err)
	}
	return targets, nil
}
