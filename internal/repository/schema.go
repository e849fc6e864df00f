package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema invariants live in the database, not only in the service layer:
// the (schedule_id, seat_number) unique constraint is what makes concurrent
// issuance of the same seat lose cleanly, and the CHECK constraints back the
// capacity and temporal invariants.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		flight_number TEXT NOT NULL UNIQUE,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		total_seats INT NOT NULL CHECK (total_seats > 0),
		available_seats INT NOT NULL CHECK (available_seats >= 0 AND available_seats <= total_seats),
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS flight_schedules (
		id BIGSERIAL PRIMARY KEY,
		flight_id BIGINT NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		delay_minutes INT NOT NULL DEFAULT 0 CHECK (delay_minutes >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (arrival_time >= departure_time)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flight_schedules_flight_id ON flight_schedules (flight_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flight_schedules_departure ON flight_schedules (departure_time)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		schedule_id BIGINT NOT NULL REFERENCES flight_schedules(id) ON DELETE CASCADE,
		reference TEXT NOT NULL UNIQUE,
		passenger_name TEXT NOT NULL,
		passenger_email TEXT NOT NULL,
		seat_number INT NOT NULL CHECK (seat_number > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (schedule_id, seat_number)
	)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
