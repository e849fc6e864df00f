package tickets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/kafka"
	"github.com/Domenick1991/flightinventory/internal/metrics"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

type TicketUseCase interface {
	Issue(ctx context.Context, input IssueTicketInput) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByReference(ctx context.Context, reference string) (*domain.Ticket, error)
	ListBySchedule(ctx context.Context, scheduleID int64, page repository.Page) ([]domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

// Cache sheds duplicate issuance attempts for a seat before they reach the
// database. The repository's unique constraint remains the authority.
type Cache interface {
	AcquireSeatLock(ctx context.Context, scheduleID int64, seatNumber int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, scheduleID int64, seatNumber int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketService struct {
	tickets            repository.TicketRepository
	schedules          repository.ScheduleRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	ticketTopic        string
	notificationsTopic string
	lockTTL            time.Duration
	log                logrus.FieldLogger

	// last announced delay per schedule, keyed by schedule id
	mu              sync.Mutex
	announcedDelays map[int64]int
}

type IssueTicketInput struct {
	ScheduleID     int64  `json:"schedule_id" validate:"required,gt=0"`
	PassengerName  string `json:"passenger_name" validate:"required"`
	PassengerEmail string `json:"passenger_email" validate:"required,email"`
	SeatNumber     int    `json:"seat_number" validate:"required,gt=0"`
}

type TicketServiceOption func(*TicketService)

func WithNotificationsTopic(topic string) TicketServiceOption {
	return func(s *TicketService) {
		s.notificationsTopic = topic
	}
}

func NewTicketService(
	tickets repository.TicketRepository,
	schedules repository.ScheduleRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	ticketTopic string,
	lockTTL time.Duration,
	log logrus.FieldLogger,
	opts ...TicketServiceOption,
) *TicketService {
	service := &TicketService{
		tickets:         tickets,
		schedules:       schedules,
		flights:         flights,
		cache:           cache,
		producer:        producer,
		ticketTopic:     ticketTopic,
		lockTTL:         lockTTL,
		log:             log,
		announcedDelays: make(map[int64]int),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Issue claims a seat on a schedule for a passenger. The seat number is
// bounded by the owning flight's total capacity; the insert and the
// available-seat decrement happen in one repository transaction.
func (s *TicketService) Issue(ctx context.Context, input IssueTicketInput) (*domain.Ticket, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	schedule, err := s.schedules.GetByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, schedule.FlightID)
	if err != nil {
		return nil, err
	}
	if input.SeatNumber > flight.TotalSeats {
		return nil, fmt.Errorf("%w: seat number exceeds total seats", domain.ErrValidation)
	}

	taken, err := s.tickets.ExistsByScheduleAndSeat(ctx, input.ScheduleID, input.SeatNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.SeatConflicts.Inc()
		return nil, fmt.Errorf("%w: seat is already booked", domain.ErrConflict)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, input.ScheduleID, input.SeatNumber, s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			metrics.SeatConflicts.Inc()
			return nil, fmt.Errorf("%w: seat is already booked", domain.ErrConflict)
		}
		locked = true
	}
	defer func() {
		if locked {
			if err := s.cache.ReleaseSeatLock(ctx, input.ScheduleID, input.SeatNumber); err != nil {
				s.log.WithError(err).Warn("release seat lock")
			}
		}
	}()

	ticket := &domain.Ticket{
		ScheduleID:     input.ScheduleID,
		Reference:      uuid.NewString(),
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		SeatNumber:     input.SeatNumber,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.SeatConflicts.Inc()
		}
		return nil, err
	}

	metrics.TicketsIssued.Inc()
	if err := s.publish(ctx, "ticket_issued", ticket, flight.ID); err != nil {
		s.log.WithError(err).WithField("reference", ticket.Reference).Warn("publish ticket_issued event")
	}
	return ticket, nil
}

func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *TicketService) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	return s.tickets.GetByReference(ctx, reference)
}

func (s *TicketService) ListBySchedule(ctx context.Context, scheduleID int64, page repository.Page) ([]domain.Ticket, error) {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.tickets.ListBySchedule(ctx, scheduleID, page)
}

// Delete removes the ticket and gives the seat back to the flight's counter.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var flightID int64
	if schedule, err := s.schedules.GetByID(ctx, ticket.ScheduleID); err == nil {
		flightID = schedule.FlightID
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}

	metrics.TicketsCancelled.Inc()
	if err := s.publish(ctx, "ticket_cancelled", ticket, flightID); err != nil {
		s.log.WithError(err).WithField("reference", ticket.Reference).Warn("publish ticket_cancelled event")
	}
	return nil
}

// NotifyDelayedSchedules publishes a schedule_delayed notification to every
// passenger holding a ticket on a currently delayed schedule, and returns
// the number published. A schedule is announced again only when its recorded
// delay changes, so repeated sweeps stay quiet.
func (s *TicketService) NotifyDelayedSchedules(ctx context.Context) (int, error) {
	if s.producer == nil {
		return 0, nil
	}
	delayed, err := s.schedules.List(ctx, repository.ScheduleFilter{DelayedOnly: true}, repository.Page{})
	if err != nil {
		return 0, err
	}

	topic := s.notificationsTopic
	if topic == "" {
		topic = s.ticketTopic
	}

	published := 0
	for _, schedule := range delayed {
		s.mu.Lock()
		announced := s.announcedDelays[schedule.ID] == schedule.DelayMinutes
		s.mu.Unlock()
		if announced {
			continue
		}

		issued, err := s.tickets.ListBySchedule(ctx, schedule.ID, repository.Page{})
		if err != nil {
			return published, err
		}
		for i := range issued {
			event := kafka.TicketEvent{
				Type:           "schedule_delayed",
				Reference:      issued[i].Reference,
				ScheduleID:     schedule.ID,
				FlightID:       schedule.FlightID,
				SeatNumber:     issued[i].SeatNumber,
				PassengerEmail: issued[i].PassengerEmail,
				DelayMinutes:   schedule.DelayMinutes,
				OccurredAt:     time.Now(),
			}
			if err := s.producer.Publish(ctx, topic, issued[i].Reference, event); err != nil {
				s.log.WithError(err).WithField("schedule_id", schedule.ID).Warn("publish schedule_delayed event")
				continue
			}
			published++
		}

		s.mu.Lock()
		s.announcedDelays[schedule.ID] = schedule.DelayMinutes
		s.mu.Unlock()
	}
	return published, nil
}

func (s *TicketService) publish(ctx context.Context, eventType string, ticket *domain.Ticket, flightID int64) error {
	if s.producer == nil || s.ticketTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		Reference:      ticket.Reference,
		ScheduleID:     ticket.ScheduleID,
		FlightID:       flightID,
		SeatNumber:     ticket.SeatNumber,
		PassengerEmail: ticket.PassengerEmail,
		OccurredAt:     time.Now(),
	}
	if err := s.producer.Publish(ctx, s.ticketTopic, ticket.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, ticket.Reference, event)
	}
	return nil
}

var _ TicketUseCase = (*TicketService)(nil)
