// Package sqlite stores the testimony table in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"placeviz/internal/domain"
)

// Store is a SQLite-backed testimony table.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS testimonies (
	file TEXT PRIMARY KEY,
	experience_group TEXT,
	country TEXT,
	gender TEXT
);

CREATE TABLE IF NOT EXISTS testimony_texts (
	file TEXT NOT NULL,
	category TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY(file, category, position),
	FOREIGN KEY(file) REFERENCES testimonies(file) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Load reads the whole table, rows in insertion order.
func (s *Store) Load(ctx context.Context) (*domain.Table, error) {
	if err := s.checkColumns(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, experience_group, country, gender FROM testimonies ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Testimony
	index := make(map[string]int)
	for rows.Next() {
		var file string
		var group, country, gender sql.NullString
		if err := rows.Scan(&file, &group, &country, &gender); err != nil {
			return nil, err
		}
		index[file] = len(out)
		out = append(out, domain.Testimony{
			File:            file,
			ExperienceGroup: group.String,
			Country:         country.String,
			Gender:          gender.String,
			Texts:           make(map[domain.Category][]string, len(domain.Categories)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	texts, err := s.db.QueryContext(ctx,
		`SELECT file, category, text FROM testimony_texts ORDER BY file, category, position`)
	if err != nil {
		return nil, err
	}
	defer texts.Close()
	for texts.Next() {
		var file, category, text string
		if err := texts.Scan(&file, &category, &text); err != nil {
			return nil, err
		}
		c := domain.Category(category)
		if !c.Valid() {
			return nil, &domain.SchemaError{Column: "category", Row: file, Reason: fmt.Sprintf("unknown category %q", category)}
		}
		i, ok := index[file]
		if !ok {
			return nil, &domain.SchemaError{Column: "file", Row: file, Reason: "word list for unknown testimony"}
		}
		out[i].Texts[c] = append(out[i].Texts[c], text)
	}
	if err := texts.Err(); err != nil {
		return nil, err
	}
	return domain.NewTable(out)
}

// Save replaces the stored table with rows.
func (s *Store) Save(ctx context.Context, rows []domain.Testimony) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM testimony_texts`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM testimonies`); err != nil {
		return err
	}
	insRow, err := tx.PrepareContext(ctx,
		`INSERT INTO testimonies (file, experience_group, country, gender) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insRow.Close()
	insText, err := tx.PrepareContext(ctx,
		`INSERT INTO testimony_texts (file, category, position, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insText.Close()

	for _, r := range rows {
		if _, err := insRow.ExecContext(ctx, r.File, nullString(r.ExperienceGroup), nullString(r.Country), nullString(r.Gender)); err != nil {
			return fmt.Errorf("insert %s: %w", r.File, err)
		}
		for _, c := range domain.Categories {
			for pos, text := range r.TextsFor(c) {
				if _, err := insText.ExecContext(ctx, r.File, string(c), pos, text); err != nil {
					return fmt.Errorf("insert %s/%s: %w", r.File, c, err)
				}
			}
		}
	}
	return tx.Commit()
}

func (s *Store) checkColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('testimonies')`)
	if err != nil {
		return err
	}
	defer rows.Close()
	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, col := range []string{"file", "experience_group", "country", "gender"} {
		if !have[col] {
			return &domain.SchemaError{Column: col, Reason: "missing column in testimonies table"}
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
