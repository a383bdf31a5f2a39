package lexicon

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the lexicon_names table. Execute it via
// [PostgresSource.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS lexicon_names (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DB is the database interface used by [PostgresSource]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSource is a [Source] backed by a PostgreSQL table, for
// deployments where several pipeline instances share one name lexicon.
type PostgresSource struct {
	db DB
}

var _ Source = (*PostgresSource)(nil)

// NewPostgresSource creates a [PostgresSource] using the given connection
// or pool. The caller is responsible for calling [PostgresSource.Migrate]
// to ensure the schema exists before issuing queries.
func NewPostgresSource(db DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Migrate executes the [Schema] DDL, creating the lexicon_names table if it
// does not already exist.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("lexicon: migrate: %w", err)
	}
	return nil
}

// Import inserts names into the table, skipping entries already present.
// Returns the number of rows actually inserted.
func (s *PostgresSource) Import(ctx context.Context, names []string) (int, error) {
	const query = `INSERT INTO lexicon_names (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	inserted := 0
	for _, name := range names {
		tag, err := s.db.Exec(ctx, query, name)
		if err != nil {
			return inserted, fmt.Errorf("lexicon: import %q: %w", name, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Names returns all lexicon entries in insertion order.
func (s *PostgresSource) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM lexicon_names ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("lexicon: query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("lexicon: scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: iterate names: %w", err)
	}
	return names, nil
}
