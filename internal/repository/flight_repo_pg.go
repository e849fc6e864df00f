package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter narrows a flight listing. Zero values mean "no constraint";
// each set field adds its own condition, so origin-only and full-route
// queries both work.
type FlightFilter struct {
	Status            *domain.FlightStatus
	Origin            string
	Destination       string
	MinAvailableSeats int
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, total_seats, available_seats, status, created_at, updated_at`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, destination, total_seats, available_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.TotalSeats, flight.AvailableSeats, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return translateErr(err, "flight number already exists")
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	return scanFlightRow(row)
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, number)
	return scanFlightRow(row)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$2, origin=$3, destination=$4, total_seats=$5, available_seats=$6, status=$7, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		flight.ID, flight.FlightNumber, flight.Origin, flight.Destination, flight.TotalSeats, flight.AvailableSeats, flight.Status).
		Scan(&flight.UpdatedAt)
	return translateErr(err, "flight number already exists")
}

// Delete removes the flight; schedules and their tickets go with it via the
// ON DELETE CASCADE foreign keys.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func buildFlightListQuery(filter FlightFilter, page Page) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		conds = append(conds, fmt.Sprintf("origin=$%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		conds = append(conds, fmt.Sprintf("destination=$%d", len(args)))
	}
	if filter.MinAvailableSeats > 0 {
		args = append(args, filter.MinAvailableSeats)
		conds = append(conds, fmt.Sprintf("available_seats >= $%d", len(args)))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY flight_number"
	if page.Limit > 0 {
		args = append(args, page.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, page.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, error) {
	query, args := buildFlightListQuery(filter, page)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.TotalSeats, &f.AvailableSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFlightRow(row rowScanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.TotalSeats, &f.AvailableSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, translateErr(err, "")
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
