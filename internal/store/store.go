// Package store persists effect records in DuckDB for later querying.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"
)

// Row is one flattened effect record.
type Row struct {
	Chrom        string
	Pos          int64
	Ref          string
	Alt          string
	Effect       string
	Impact       string
	GeneName     string
	GeneID       string
	TranscriptID string
	Biotype      string
	ExonRank     int32
	CodonChange  string
	AaChange     string
	Warnings     string
}

// Store manages a DuckDB connection holding effect records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS variant_effects (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		effect VARCHAR,
		impact VARCHAR,
		gene_name VARCHAR,
		gene_id VARCHAR,
		transcript_id VARCHAR,
		biotype VARCHAR,
		exon_rank INTEGER,
		codon_change VARCHAR,
		aa_change VARCHAR,
		warnings VARCHAR
	)`)
	return err
}

// WriteRows batch-inserts effect rows using the Appender API.
func (s *Store) WriteRows(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "variant_effects")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range rows {
		if err := appender.AppendRow(
			r.Chrom, r.Pos, r.Ref, r.Alt, r.Effect, r.Impact,
			r.GeneName, r.GeneID, r.TranscriptID, r.Biotype,
			r.ExonRank, r.CodonChange, r.AaChange, r.Warnings,
		); err != nil {
			return fmt.Errorf("append effect row: %w", err)
		}
	}

	return appender.Flush()
}

// LookupVariant returns the stored effect rows for one variant.
func (s *Store) LookupVariant(chrom string, pos int64, ref, alt string) ([]Row, error) {
	rows, err := s.db.Query(`SELECT
		chrom, pos, ref, alt, effect, impact,
		gene_name, gene_id, transcript_id, biotype,
		exon_rank, codon_change, aa_change, warnings
		FROM variant_effects
		WHERE chrom=? AND pos=? AND ref=? AND alt=?`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.Chrom, &r.Pos, &r.Ref, &r.Alt, &r.Effect, &r.Impact,
			&r.GeneName, &r.GeneID, &r.TranscriptID, &r.Biotype,
			&r.ExonRank, &r.CodonChange, &r.AaChange, &r.Warnings,
		); err != nil {
			return nil, fmt.Errorf("scan effect row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate effect rows: %w", err)
	}
	return out, nil
}

// CountByImpact returns row counts grouped by impact level.
func (s *Store) CountByImpact() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT impact, COUNT(*) FROM variant_effects GROUP BY impact`)
	if err != nil {
		return nil, fmt.Errorf("query impact counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var impact string
		var n int64
		if err := rows.Scan(&impact, &n); err != nil {
			return nil, fmt.Errorf("scan impact count: %w", err)
		}
		counts[impact] = n
	}
	return counts, rows.Err()
}

// Clear removes all stored effect rows.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM variant_effects")
	return err
}
