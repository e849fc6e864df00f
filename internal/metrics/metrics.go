package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsIssued counts successfully issued tickets.
	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tickets",
		Name:      "issued_total",
		Help:      "The total number of tickets issued",
	})

	// SeatConflicts counts issuance attempts rejected because the seat was
	// already booked or the flight was sold out.
	SeatConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tickets",
		Name:      "seat_conflicts_total",
		Help:      "The total number of issuance attempts lost to a seat conflict",
	})

	// TicketsCancelled counts deleted tickets.
	TicketsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tickets",
		Name:      "cancelled_total",
		Help:      "The total number of tickets cancelled",
	})
)
