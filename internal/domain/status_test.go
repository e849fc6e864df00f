package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlightStatus(t *testing.T) {
	status, err := ParseFlightStatus("SCHEDULED")
	assert.NoError(t, err)
	assert.Equal(t, FlightStatusScheduled, status)

	_, err = ParseFlightStatus("GROUNDED")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseFlightStatus("scheduled")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseScheduleStatus(t *testing.T) {
	status, err := ParseScheduleStatus("CHECK_IN")
	assert.NoError(t, err)
	assert.Equal(t, ScheduleStatusCheckIn, status)

	_, err = ParseScheduleStatus("TAXIING")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFlightStatusTransitions(t *testing.T) {
	tests := []struct {
		from    FlightStatus
		to      FlightStatus
		allowed bool
	}{
		{FlightStatusScheduled, FlightStatusActive, true},
		{FlightStatusScheduled, FlightStatusMaintenance, true},
		{FlightStatusScheduled, FlightStatusRetired, false},
		{FlightStatusActive, FlightStatusCompleted, true},
		{FlightStatusActive, FlightStatusScheduled, false},
		{FlightStatusDelayed, FlightStatusActive, true},
		{FlightStatusCancelled, FlightStatusScheduled, true},
		{FlightStatusRetired, FlightStatusScheduled, false},
		{FlightStatusRetired, FlightStatusRetired, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestScheduleStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ScheduleStatus
		to      ScheduleStatus
		allowed bool
	}{
		{ScheduleStatusPlanned, ScheduleStatusConfirmed, true},
		{ScheduleStatusPlanned, ScheduleStatusBoarding, false},
		{ScheduleStatusConfirmed, ScheduleStatusCheckIn, true},
		{ScheduleStatusBoarding, ScheduleStatusDeparted, true},
		{ScheduleStatusDeparted, ScheduleStatusInAir, true},
		{ScheduleStatusDeparted, ScheduleStatusCancelled, false},
		{ScheduleStatusInAir, ScheduleStatusLanded, true},
		{ScheduleStatusLanded, ScheduleStatusCompleted, true},
		{ScheduleStatusDelayed, ScheduleStatusBoarding, true},
		{ScheduleStatusCancelled, ScheduleStatusPlanned, false},
		{ScheduleStatusCompleted, ScheduleStatusPlanned, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
