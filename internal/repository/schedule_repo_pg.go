package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleFilter narrows a schedule listing. Route filters (Origin and
// Destination, applied together) join through the owning flight. DelayedOnly
// selects schedules with a recorded delay.
type ScheduleFilter struct {
	FlightID     int64
	Status       *domain.ScheduleStatus
	DepartsAfter *time.Time
	DepartsUntil *time.Time
	Origin       string
	Destination  string
	DelayedOnly  bool
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ScheduleFilter, page Page) ([]domain.Schedule, error)
}

type PGScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &PGScheduleRepository{db: db}
}

const scheduleColumns = `id, flight_id, departure_time, arrival_time, status, delay_minutes, created_at, updated_at`

func (r *PGScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flight_schedules (flight_id, departure_time, arrival_time, status, delay_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		schedule.FlightID, schedule.DepartureTime, schedule.ArrivalTime, schedule.Status, schedule.DelayMinutes).
		Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	return err
}

func (r *PGScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	row := r.db.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM flight_schedules WHERE id=$1`, id)
	var s domain.Schedule
	if err := row.Scan(&s.ID, &s.FlightID, &s.DepartureTime, &s.ArrivalTime, &s.Status, &s.DelayMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, translateErr(err, "")
	}
	return &s, nil
}

func (r *PGScheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	err := r.db.QueryRow(ctx, `UPDATE flight_schedules SET flight_id=$2, departure_time=$3, arrival_time=$4, status=$5, delay_minutes=$6, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		schedule.ID, schedule.FlightID, schedule.DepartureTime, schedule.ArrivalTime, schedule.Status, schedule.DelayMinutes).
		Scan(&schedule.UpdatedAt)
	return translateErr(err, "")
}

// Delete removes the schedule and its tickets. The owning flight's
// available-seat counter gets every cascaded seat back in the same
// transaction.
func (r *PGScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var (
		flightID    int64
		ticketCount int
	)
	err = tx.QueryRow(ctx, `SELECT flight_id, (SELECT COUNT(*) FROM tickets WHERE schedule_id=$1)
		FROM flight_schedules WHERE id=$1`, id).Scan(&flightID, &ticketCount)
	if err != nil {
		return translateErr(err, "")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_schedules WHERE id=$1`, id); err != nil {
		return err
	}

	if ticketCount > 0 {
		if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = LEAST(available_seats + $2, total_seats), updated_at = now()
			WHERE id=$1`, flightID, ticketCount); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGScheduleRepository) List(ctx context.Context, filter ScheduleFilter, page Page) ([]domain.Schedule, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.FlightID != 0 {
		args = append(args, filter.FlightID)
		conds = append(conds, fmt.Sprintf("s.flight_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("s.status=$%d", len(args)))
	}
	if filter.DepartsAfter != nil {
		args = append(args, *filter.DepartsAfter)
		conds = append(conds, fmt.Sprintf("s.departure_time > $%d", len(args)))
	}
	if filter.DepartsUntil != nil {
		args = append(args, *filter.DepartsUntil)
		conds = append(conds, fmt.Sprintf("s.departure_time <= $%d", len(args)))
	}
	if filter.DelayedOnly {
		conds = append(conds, "s.delay_minutes > 0")
	}

	query := `SELECT s.id, s.flight_id, s.departure_time, s.arrival_time, s.status, s.delay_minutes, s.created_at, s.updated_at FROM flight_schedules s`
	if filter.Origin != "" && filter.Destination != "" {
		query += ` JOIN flights f ON f.id = s.flight_id`
		args = append(args, filter.Origin)
		conds = append(conds, fmt.Sprintf("f.origin=$%d", len(args)))
		args = append(args, filter.Destination)
		conds = append(conds, fmt.Sprintf("f.destination=$%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.departure_time"
	if page.Limit > 0 {
		args = append(args, page.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, page.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.FlightID, &s.DepartureTime, &s.ArrivalTime, &s.Status, &s.DelayMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

var _ ScheduleRepository = (*PGScheduleRepository)(nil)
