package email

import (
	"context"

	"github.com/Domenick1991/flightinventory/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers passenger notifications. The current implementation only
// logs them; the worker feeds it from the notifications topic.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	s.log.WithFields(logrus.Fields{
		"email":     event.PassengerEmail,
		"type":      event.Type,
		"schedule":  event.ScheduleID,
		"seat":      event.SeatNumber,
		"reference": event.Reference,
	}).Info("send notification email")
	return nil
}
