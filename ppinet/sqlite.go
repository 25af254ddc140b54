package ppinet

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const interactionSchema = `
CREATE TABLE IF NOT EXISTS interactions (
	row_id INTEGER PRIMARY KEY,
	stringId_A TEXT NOT NULL,
	stringId_B TEXT NOT NULL,
	preferredName_A TEXT NOT NULL,
	preferredName_B TEXT NOT NULL,
	ncbiTaxonId TEXT NOT NULL,
	score TEXT NOT NULL,
	nscore TEXT NOT NULL,
	fscore TEXT NOT NULL,
	pscore TEXT NOT NULL,
	ascore TEXT NOT NULL,
	escore TEXT NOT NULL,
	dscore TEXT NOT NULL,
	tscore TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_names ON interactions(preferredName_A, preferredName_B);
`

// ExportSQLite stores table in the interactions table of the SQLite database at
// path, replacing its previous rows. Row order is kept in row_id.
func ExportSQLite(ctx context.Context, path string, table InteractionTable) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, interactionSchema); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM interactions`); err != nil {
		return fmt.Errorf("clear interactions: %w", err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)+1), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO interactions (row_id, %s) VALUES (%s)", strings.Join(Columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range table {
		args := make([]any, 0, len(Columns)+1)
		args = append(args, i+1)
		for _, v := range rec.Values() {
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSQLite reads the interactions table written by ExportSQLite in row order.
func LoadSQLite(ctx context.Context, path string) (InteractionTable, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM interactions ORDER BY row_id", strings.Join(Columns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var table InteractionTable
	for rows.Next() {
		fields := make([]string, len(Columns))
		dest := make([]any, len(fields))
		for i := range fields {
			dest[i] = &fields[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		rec, err := recordFromFields(fields)
		if err != nil {
			return nil, err
		}
		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return table, nil
}
