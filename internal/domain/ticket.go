package domain

import "time"

// Ticket is a seat claim against a Schedule. Reference is the public handle
// handed back to the passenger. Tickets are immutable after issuance except
// for deletion.
type Ticket struct {
	ID             int64
	ScheduleID     int64
	Reference      string
	PassengerName  string
	PassengerEmail string
	SeatNumber     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
