package domain

import "time"

// Schedule is one concrete departure/arrival instance of a Flight. It holds a
// non-owning back-reference to its flight; the flight row is the authority on
// seat capacity.
type Schedule struct {
	ID            int64
	FlightID      int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	Status        ScheduleStatus
	DelayMinutes  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
