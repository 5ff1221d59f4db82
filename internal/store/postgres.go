package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airworthy/adcheck/internal/rules"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
// Directives are stored as one jsonb payload per row: the rule schema is
// authority-defined and read back whole, so per-field columns would only
// duplicate the payload.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS directives (
    id           text PRIMARY KEY,
    authority    text NOT NULL,
    payload      jsonb NOT NULL,
    extracted_at timestamptz NOT NULL
);`

// Migrate creates the directives table when it does not exist yet.
// Called once at startup.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate directives table: %w", err)
	}
	return nil
}

// ListDirectives retrieves all stored directives, ordered by ID.
func (p *PostgresStore) ListDirectives(ctx context.Context) ([]rules.Directive, error) {
	rows, err := p.pool.Query(ctx, `SELECT payload FROM directives ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var directives []rules.Directive
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var d rules.Directive
		if err := json.Unmarshal(payload, &d); err != nil {
			return nil, fmt.Errorf("decode directive payload: %w", err)
		}
		directives = append(directives, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if directives == nil {
		directives = []rules.Directive{}
	}
	return directives, nil
}

// GetDirective retrieves a single directive by its ID.
func (p *PostgresStore) GetDirective(ctx context.Context, id string) (*rules.Directive, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM directives WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var d rules.Directive
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("decode directive payload: %w", err)
	}
	return &d, nil
}

// PutDirective creates or replaces a directive in the database.
func (p *PostgresStore) PutDirective(ctx context.Context, d rules.Directive) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode directive payload: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO directives (id, authority, payload, extracted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET authority = EXCLUDED.authority,
		    payload = EXCLUDED.payload,
		    extracted_at = EXCLUDED.extracted_at`,
		d.DirectiveID, string(d.Authority), payload, d.ExtractedAt)
	return err
}

// DeleteDirective removes a directive from the database.
func (p *PostgresStore) DeleteDirective(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM directives WHERE id = $1`, id)
	return err
}

// Close closes the database connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
