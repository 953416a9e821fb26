// Package store persists glossary entries in a local SQLite database, so a
// glossary built across several runs can be queried and exported without
// re-parsing the source tree.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tra-glossary/internal/glossary"
	"tra-glossary/internal/textutil"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS glossary_entries (
	hash            TEXT PRIMARY KEY,
	entry_id        TEXT NOT NULL,
	game            TEXT NOT NULL,
	english         TEXT NOT NULL,
	japanese        TEXT NOT NULL,
	japanese_male   TEXT NOT NULL DEFAULT '',
	japanese_female TEXT NOT NULL DEFAULT '',
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_glossary_entries_game ON glossary_entries (game);
`

// Record is one stored glossary row.
type Record struct {
	Hash           string `json:"hash"`
	EntryID        string `json:"entry_id"`
	Game           string `json:"game"`
	English        string `json:"english"`
	Japanese       string `json:"japanese"`
	JapaneseMale   string `json:"japanese_male,omitempty"`
	JapaneseFemale string `json:"japanese_female,omitempty"`
}

// Store is a SQLite-backed glossary store.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the store at path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, log: logger}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertEntries stores entries, deduplicating by the English/Japanese pair
// hash. Returns the number of rows written.
func (s *Store) UpsertEntries(ctx context.Context, entries []glossary.Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin store transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO glossary_entries
		(hash, entry_id, game, english, japanese, japanese_male, japanese_female)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (hash) DO UPDATE SET
			entry_id = excluded.entry_id,
			game = excluded.game,
			japanese_male = excluded.japanese_male,
			japanese_female = excluded.japanese_female,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, e := range entries {
		japanese := deref(e.Japanese.Default)
		if _, err := stmt.ExecContext(ctx,
			textutil.PairHash(e.English, japanese),
			e.ID,
			e.Metadata.Game,
			e.English,
			japanese,
			deref(e.Japanese.Male),
			deref(e.Japanese.Female),
		); err != nil {
			return written, fmt.Errorf("upsert entry %s: %w", e.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("commit store transaction: %w", err)
	}

	s.log.Info().Int("entries", written).Msg("Stored glossary entries")
	return written, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM glossary_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// GetAll retrieves all stored records ordered by entry id.
func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT hash, entry_id, game, english, japanese, japanese_male, japanese_female
		FROM glossary_entries ORDER BY entry_id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Hash, &r.EntryID, &r.Game, &r.English, &r.Japanese, &r.JapaneseMale, &r.JapaneseFemale); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return records, nil
}

// ExportTSV writes all stored records to a TSV file.
func (s *Store) ExportTSV(ctx context.Context, outputPath string) error {
	records, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "entry_id\tgame\tenglish\tjapanese\tjapanese_male\tjapanese_female")
	for _, r := range records {
		fmt.Fprintf(f, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.EntryID,
			r.Game,
			escapeTSV(r.English),
			escapeTSV(r.Japanese),
			escapeTSV(r.JapaneseMale),
			escapeTSV(r.JapaneseFemale),
		)
	}

	s.log.Info().Str("path", outputPath).Int("entries", len(records)).Msg("Exported glossary store to TSV")
	return nil
}

// ExportJSON writes all stored records to a JSON file.
func (s *Store) ExportJSON(ctx context.Context, outputPath string) error {
	records, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	s.log.Info().Str("path", outputPath).Int("entries", len(records)).Msg("Exported glossary store to JSON")
	return nil
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
