package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	// Create inserts the ticket and decrements the owning flight's
	// available-seat counter in the same transaction.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByReference(ctx context.Context, reference string) (*domain.Ticket, error)
	ListBySchedule(ctx context.Context, scheduleID int64, page Page) ([]domain.Ticket, error)
	ExistsByScheduleAndSeat(ctx context.Context, scheduleID int64, seatNumber int) (bool, error)
	// Delete removes the ticket and gives the seat back to the counter.
	Delete(ctx context.Context, id int64) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `id, schedule_id, reference, passenger_name, passenger_email, seat_number, created_at, updated_at`

func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The counter decrement and the insert commit or fail together. The
	// available_seats > 0 guard makes a sold-out flight lose here; the
	// (schedule_id, seat_number) unique constraint makes the slower of two
	// racing requests for the same seat lose on the insert below.
	var available int
	err = tx.QueryRow(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now()
		WHERE id = (SELECT flight_id FROM flight_schedules WHERE id=$1) AND available_seats > 0
		RETURNING available_seats`, ticket.ScheduleID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no available seats", domain.ErrConflict)
		}
		return err
	}

	err = tx.QueryRow(ctx, `INSERT INTO tickets (schedule_id, reference, passenger_name, passenger_email, seat_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		ticket.ScheduleID, ticket.Reference, ticket.PassengerName, ticket.PassengerEmail, ticket.SeatNumber).
		Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return translateErr(err, "seat is already booked")
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
	return scanTicketRow(row)
}

func (r *PGTicketRepository) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE reference=$1`, reference)
	return scanTicketRow(row)
}

func (r *PGTicketRepository) ListBySchedule(ctx context.Context, scheduleID int64, page Page) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE schedule_id=$1 ORDER BY seat_number`
	args := []interface{}{scheduleID}
	if page.Limit > 0 {
		args = append(args, page.Limit, page.Offset)
		query += " LIMIT $2 OFFSET $3"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.ScheduleID, &t.Reference, &t.PassengerName, &t.PassengerEmail, &t.SeatNumber, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) ExistsByScheduleAndSeat(ctx context.Context, scheduleID int64, seatNumber int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE schedule_id=$1 AND seat_number=$2)`, scheduleID, seatNumber).Scan(&exists)
	return exists, err
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var scheduleID int64
	if err := tx.QueryRow(ctx, `DELETE FROM tickets WHERE id=$1 RETURNING schedule_id`, id).Scan(&scheduleID); err != nil {
		return translateErr(err, "")
	}

	// LEAST caps the counter at total capacity in case it was adjusted
	// externally between issuance and deletion.
	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = LEAST(available_seats + 1, total_seats), updated_at = now()
		WHERE id = (SELECT flight_id FROM flight_schedules WHERE id=$1)`, scheduleID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanTicketRow(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.ScheduleID, &t.Reference, &t.PassengerName, &t.PassengerEmail, &t.SeatNumber, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, translateErr(err, "")
	}
	return &t, nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
