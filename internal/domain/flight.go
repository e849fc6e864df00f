package domain

import "time"

type Flight struct {
	ID             int64
	FlightNumber   string
	Origin         string
	Destination    string
	TotalSeats     int
	AvailableSeats int
	Status         FlightStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
