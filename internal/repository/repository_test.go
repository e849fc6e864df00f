package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewScheduleRepository(pool))
	assert.NotNil(t, NewTicketRepository(pool))
}

func TestBuildFlightListQuery_OriginOnly(t *testing.T) {
	query, args := buildFlightListQuery(FlightFilter{Origin: "JFK"}, Page{})

	assert.Contains(t, query, "WHERE origin=$1")
	assert.Equal(t, []interface{}{"JFK"}, args)
}

func TestBuildFlightListQuery_AllFilters(t *testing.T) {
	status := domain.FlightStatusScheduled
	query, args := buildFlightListQuery(FlightFilter{
		Status:            &status,
		Origin:            "JFK",
		Destination:       "LAX",
		MinAvailableSeats: 5,
	}, Page{Limit: 10, Offset: 20})

	assert.Contains(t, query, "status=$1")
	assert.Contains(t, query, "origin=$2")
	assert.Contains(t, query, "destination=$3")
	assert.Contains(t, query, "available_seats >= $4")
	assert.Contains(t, query, "LIMIT $5 OFFSET $6")
	assert.Equal(t, []interface{}{status, "JFK", "LAX", 5, 10, 20}, args)
}

func TestBuildFlightListQuery_NoFilter(t *testing.T) {
	query, args := buildFlightListQuery(FlightFilter{}, Page{})

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestTranslateErr(t *testing.T) {
	assert.NoError(t, translateErr(nil, "dup"))

	err := translateErr(pgx.ErrNoRows, "dup")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = translateErr(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_schedule_id_seat_number_key"}, "seat is already booked")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "seat is already booked")

	// other SQL states pass through untouched
	pgErr := &pgconn.PgError{Code: "23514"}
	err = translateErr(pgErr, "dup")
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, error(pgErr), err)

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateErr(plain, "dup"))
}
