package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresFactRepository reads the fun-fact catalog from the fun_facts table.
type PostgresFactRepository struct {
	DB *sql.DB
}

func NewPostgresFactRepository(db *sql.DB) *PostgresFactRepository {
	return &PostgresFactRepository{DB: db}
}

func (r *PostgresFactRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fun_facts (
			id SERIAL PRIMARY KEY,
			body TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure fun_facts schema: %w", err)
	}
	return nil
}

func (r *PostgresFactRepository) Facts(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT body FROM fun_facts
		WHERE active
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			continue
		}
		facts = append(facts, body)
	}
	return facts, rows.Err()
}
