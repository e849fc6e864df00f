package schedules

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

type ScheduleUseCase interface {
	Create(ctx context.Context, input CreateScheduleInput) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, input UpdateScheduleInput) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.ScheduleFilter, page repository.Page) ([]domain.Schedule, error)
	ListUpcoming(ctx context.Context) ([]domain.Schedule, error)
	ListDelayed(ctx context.Context) ([]domain.Schedule, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) (*domain.Schedule, error)
	UpdateDelay(ctx context.Context, id int64, delayMinutes int) (*domain.Schedule, error)
}

type ScheduleService struct {
	schedules repository.ScheduleRepository
	flights   repository.FlightRepository
	tickets   repository.TicketRepository
	log       logrus.FieldLogger
	now       func() time.Time
}

type CreateScheduleInput struct {
	FlightID      int64     `json:"flight_id" validate:"required,gt=0"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
}

// UpdateScheduleInput carries a partial schedule update; nil fields keep
// their stored value. A changed FlightID reassigns the schedule to the new
// flight after it resolves; a schedule that already has issued tickets
// refuses reassignment because the seats are counted against the old flight.
type UpdateScheduleInput struct {
	FlightID      *int64     `json:"flight_id"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

func NewScheduleService(schedules repository.ScheduleRepository, flights repository.FlightRepository, tickets repository.TicketRepository, log logrus.FieldLogger) *ScheduleService {
	return &ScheduleService{schedules: schedules, flights: flights, tickets: tickets, log: log, now: time.Now}
}

// Create persists a schedule for an existing flight. Status is forced to
// PLANNED and the delay starts at zero.
func (s *ScheduleService) Create(ctx context.Context, input CreateScheduleInput) (*domain.Schedule, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if input.ArrivalTime.Before(input.DepartureTime) {
		return nil, fmt.Errorf("%w: arrival time cannot be before departure time", domain.ErrValidation)
	}
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		FlightID:      input.FlightID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Status:        domain.ScheduleStatusPlanned,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

func (s *ScheduleService) Update(ctx context.Context, id int64, input UpdateScheduleInput) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FlightID != nil && *input.FlightID != schedule.FlightID {
		issued, err := s.tickets.ListBySchedule(ctx, id, repository.Page{Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(issued) > 0 {
			return nil, fmt.Errorf("%w: schedule with issued tickets cannot move to another flight", domain.ErrConflict)
		}
		if _, err := s.flights.GetByID(ctx, *input.FlightID); err != nil {
			return nil, err
		}
		schedule.FlightID = *input.FlightID
	}
	if input.DepartureTime != nil {
		schedule.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		schedule.ArrivalTime = *input.ArrivalTime
	}
	if schedule.ArrivalTime.Before(schedule.DepartureTime) {
		return nil, fmt.Errorf("%w: arrival time cannot be before departure time", domain.ErrValidation)
	}

	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	return s.schedules.Delete(ctx, id)
}

func (s *ScheduleService) List(ctx context.Context, filter repository.ScheduleFilter, page repository.Page) ([]domain.Schedule, error) {
	return s.schedules.List(ctx, filter, page)
}

// ListUpcoming returns schedules departing after now, soonest first.
func (s *ScheduleService) ListUpcoming(ctx context.Context) ([]domain.Schedule, error) {
	now := s.now()
	return s.schedules.List(ctx, repository.ScheduleFilter{DepartsAfter: &now}, repository.Page{})
}

func (s *ScheduleService) ListDelayed(ctx context.Context) ([]domain.Schedule, error) {
	return s.schedules.List(ctx, repository.ScheduleFilter{DelayedOnly: true}, repository.Page{})
}

func (s *ScheduleService) UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) (*domain.Schedule, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown schedule status %q", domain.ErrValidation, status)
	}
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !schedule.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: schedule status cannot change from %s to %s", domain.ErrValidation, schedule.Status, status)
	}
	schedule.Status = status
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// UpdateDelay records the delay in minutes. It does not shift the departure
// or arrival times and does not touch the status; lifecycle moves stay an
// explicit UpdateStatus call.
func (s *ScheduleService) UpdateDelay(ctx context.Context, id int64, delayMinutes int) (*domain.Schedule, error) {
	if delayMinutes < 0 {
		return nil, fmt.Errorf("%w: delay minutes cannot be negative", domain.ErrValidation)
	}
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.DelayMinutes = delayMinutes
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

var _ ScheduleUseCase = (*ScheduleService)(nil)
