package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Scenario struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Label     *string   `db:"label"`
	Inputs    string    `db:"inputs"`  // JSON
	Outputs   string    `db:"outputs"` // JSON
}

// CreateScenario stores a scenario under a new id and returns the stored row.
func (db *DB) CreateScenario(ctx context.Context, label *string, inputs, outputs string) (Scenario, error) {
	s := Scenario{
		ID:        uuid.NewString(),
		CreatedAt: now(),
		Label:     label,
		Inputs:    inputs,
		Outputs:   outputs,
	}

	_, err := db.GetSQLDB().ExecContext(
		ctx,
		`
			INSERT INTO scenarios (id, created_at, label, inputs, outputs)
			VALUES ($1, $2, $3, $4, $5)
		`,
		s.ID, s.CreatedAt, s.Label, s.Inputs, s.Outputs,
	)
	if err != nil {
		return Scenario{}, err
	}

	return s, nil
}

// FindScenarioByID returns ErrNotFound when no scenario has the id.
func (db *DB) FindScenarioByID(ctx context.Context, id string) (Scenario, error) {
	var s Scenario

	err := db.GetSQLDB().QueryRowContext(
		ctx,
		`
			SELECT id, created_at, label, inputs, outputs FROM scenarios WHERE id = $1
		`,
		id,
	).Scan(&s.ID, &s.CreatedAt, &s.Label, &s.Inputs, &s.Outputs)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, ErrNotFound
	}
	if err != nil {
		return Scenario{}, err
	}

	s.CreatedAt = s.CreatedAt.UTC()

	return s, nil
}
