package flights

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	validate       = validator.New()
	flightNumberRe = regexp.MustCompile(`^[A-Z]{2}\d{4}$`)
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, error)
	ListSchedules(ctx context.Context, flightID int64, from, until *time.Time) ([]domain.Schedule, error)
	UpdateAvailableSeats(ctx context.Context, id int64, seats int) (*domain.Flight, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights   repository.FlightRepository
	schedules repository.ScheduleRepository
	cache     FlightCache
	log       logrus.FieldLogger
}

type CreateFlightInput struct {
	FlightNumber string `json:"flight_number" validate:"required"`
	Origin       string `json:"origin" validate:"required,len=3"`
	Destination  string `json:"destination" validate:"required,len=3"`
	TotalSeats   int    `json:"total_seats" validate:"required,gt=0"`
}

// UpdateFlightInput carries a partial flight update; nil fields keep their
// stored value. Status changes go through UpdateStatus so the transition
// table stays the only lifecycle gate.
type UpdateFlightInput struct {
	FlightNumber   *string `json:"flight_number"`
	Origin         *string `json:"origin"`
	Destination    *string `json:"destination"`
	TotalSeats     *int    `json:"total_seats"`
	AvailableSeats *int    `json:"available_seats"`
}

func NewFlightService(flights repository.FlightRepository, schedules repository.ScheduleRepository, cache FlightCache, log logrus.FieldLogger) *FlightService {
	return &FlightService{flights: flights, schedules: schedules, cache: cache, log: log}
}

// Create persists a new flight. Status is forced to SCHEDULED and every seat
// starts available.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !flightNumberRe.MatchString(input.FlightNumber) {
		return nil, fmt.Errorf("%w: flight number must match AA1234", domain.ErrValidation)
	}

	flight := &domain.Flight{
		FlightNumber:   input.FlightNumber,
		Origin:         input.Origin,
		Destination:    input.Destination,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		Status:         domain.FlightStatusScheduled,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	return s.flights.GetByNumber(ctx, number)
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FlightNumber != nil {
		if !flightNumberRe.MatchString(*input.FlightNumber) {
			return nil, fmt.Errorf("%w: flight number must match AA1234", domain.ErrValidation)
		}
		flight.FlightNumber = *input.FlightNumber
	}
	if input.Origin != nil {
		if len(*input.Origin) != 3 {
			return nil, fmt.Errorf("%w: origin must be a 3-character code", domain.ErrValidation)
		}
		flight.Origin = *input.Origin
	}
	if input.Destination != nil {
		if len(*input.Destination) != 3 {
			return nil, fmt.Errorf("%w: destination must be a 3-character code", domain.ErrValidation)
		}
		flight.Destination = *input.Destination
	}
	if input.TotalSeats != nil {
		flight.TotalSeats = *input.TotalSeats
	}
	if input.AvailableSeats != nil {
		flight.AvailableSeats = *input.AvailableSeats
	}

	if err := validateCapacity(flight); err != nil {
		return nil, err
	}
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter, page repository.Page) ([]domain.Flight, error) {
	// Only the unfiltered, unpaginated listing goes through the cache.
	cacheable := filter == (repository.FlightFilter{}) && page == (repository.Page{})
	if cacheable && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if cacheable && s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.WithError(err).Warn("set flights cache")
		}
	}
	return flights, nil
}

// ListSchedules returns the flight's schedules, optionally bounded to a
// departure-time window.
func (s *FlightService) ListSchedules(ctx context.Context, flightID int64, from, until *time.Time) ([]domain.Schedule, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	filter := repository.ScheduleFilter{
		FlightID:     flightID,
		DepartsAfter: from,
		DepartsUntil: until,
	}
	return s.schedules.List(ctx, filter, repository.Page{})
}

func (s *FlightService) UpdateAvailableSeats(ctx context.Context, id int64, seats int) (*domain.Flight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flight.AvailableSeats = seats
	if err := validateCapacity(flight); err != nil {
		return nil, err
	}
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown flight status %q", domain.ErrValidation, status)
	}
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !flight.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: flight status cannot change from %s to %s", domain.ErrValidation, flight.Status, status)
	}
	flight.Status = status
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func validateCapacity(flight *domain.Flight) error {
	if flight.TotalSeats <= 0 {
		return fmt.Errorf("%w: total seats must be positive", domain.ErrValidation)
	}
	if flight.AvailableSeats < 0 {
		return fmt.Errorf("%w: available seats cannot be negative", domain.ErrValidation)
	}
	if flight.AvailableSeats > flight.TotalSeats {
		return fmt.Errorf("%w: available seats cannot exceed total seats", domain.ErrValidation)
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("invalidate flights cache")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
