package domain

import "fmt"

type FlightStatus string

const (
	FlightStatusScheduled   FlightStatus = "SCHEDULED"
	FlightStatusActive      FlightStatus = "ACTIVE"
	FlightStatusDelayed     FlightStatus = "DELAYED"
	FlightStatusCancelled   FlightStatus = "CANCELLED"
	FlightStatusCompleted   FlightStatus = "COMPLETED"
	FlightStatusMaintenance FlightStatus = "MAINTENANCE"
	FlightStatusRetired     FlightStatus = "RETIRED"
)

type ScheduleStatus string

const (
	ScheduleStatusPlanned   ScheduleStatus = "PLANNED"
	ScheduleStatusConfirmed ScheduleStatus = "CONFIRMED"
	ScheduleStatusCheckIn   ScheduleStatus = "CHECK_IN"
	ScheduleStatusBoarding  ScheduleStatus = "BOARDING"
	ScheduleStatusDeparted  ScheduleStatus = "DEPARTED"
	ScheduleStatusInAir     ScheduleStatus = "IN_AIR"
	ScheduleStatusLanded    ScheduleStatus = "LANDED"
	ScheduleStatusDelayed   ScheduleStatus = "DELAYED"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
)

// flightTransitions lists the allowed successor statuses per flight status.
// RETIRED is terminal.
var flightTransitions = map[FlightStatus][]FlightStatus{
	FlightStatusScheduled:   {FlightStatusActive, FlightStatusDelayed, FlightStatusCancelled, FlightStatusMaintenance},
	FlightStatusActive:      {FlightStatusDelayed, FlightStatusCancelled, FlightStatusCompleted},
	FlightStatusDelayed:     {FlightStatusActive, FlightStatusCancelled, FlightStatusCompleted},
	FlightStatusCancelled:   {FlightStatusScheduled},
	FlightStatusCompleted:   {FlightStatusScheduled, FlightStatusMaintenance, FlightStatusRetired},
	FlightStatusMaintenance: {FlightStatusScheduled, FlightStatusRetired},
	FlightStatusRetired:     {},
}

// scheduleTransitions follows the boarding pipeline; DELAYED can rejoin it at
// any pre-departure stage. CANCELLED and COMPLETED are terminal.
var scheduleTransitions = map[ScheduleStatus][]ScheduleStatus{
	ScheduleStatusPlanned:   {ScheduleStatusConfirmed, ScheduleStatusDelayed, ScheduleStatusCancelled},
	ScheduleStatusConfirmed: {ScheduleStatusCheckIn, ScheduleStatusDelayed, ScheduleStatusCancelled},
	ScheduleStatusCheckIn:   {ScheduleStatusBoarding, ScheduleStatusDelayed, ScheduleStatusCancelled},
	ScheduleStatusBoarding:  {ScheduleStatusDeparted, ScheduleStatusDelayed, ScheduleStatusCancelled},
	ScheduleStatusDeparted:  {ScheduleStatusInAir},
	ScheduleStatusInAir:     {ScheduleStatusLanded},
	ScheduleStatusLanded:    {ScheduleStatusCompleted},
	ScheduleStatusDelayed:   {ScheduleStatusConfirmed, ScheduleStatusCheckIn, ScheduleStatusBoarding, ScheduleStatusDeparted, ScheduleStatusCancelled},
	ScheduleStatusCancelled: {},
	ScheduleStatusCompleted: {},
}

func (s FlightStatus) Valid() bool {
	_, ok := flightTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table allows moving from s
// to next. Self-transitions are allowed (idempotent status writes).
func (s FlightStatus) CanTransitionTo(next FlightStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range flightTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ScheduleStatus) Valid() bool {
	_, ok := scheduleTransitions[s]
	return ok
}

func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range scheduleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseFlightStatus(s string) (FlightStatus, error) {
	status := FlightStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown flight status %q", ErrValidation, s)
	}
	return status, nil
}

func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	status := ScheduleStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown schedule status %q", ErrValidation, s)
	}
	return status, nil
}
