package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/Domenick1991/flightinventory/internal/service/schedules"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockScheduleUseCase struct {
	mock.Mock
}

func (m *MockScheduleUseCase) Create(ctx context.Context, input schedules.CreateScheduleInput) (*domain.Schedule, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) Update(ctx context.Context, id int64, input schedules.UpdateScheduleInput) (*domain.Schedule, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleUseCase) List(ctx context.Context, filter repository.ScheduleFilter, page repository.Page) ([]domain.Schedule, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) ListUpcoming(ctx context.Context) ([]domain.Schedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) ListDelayed(ctx context.Context) ([]domain.Schedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) (*domain.Schedule, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleUseCase) UpdateDelay(ctx context.Context, id int64, delayMinutes int) (*domain.Schedule, error) {
	args := m.Called(ctx, id, delayMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func TestScheduleHandler_create(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewScheduleHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	departure := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	arrival := time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(createScheduleRequest{FlightID: 1, DepartureTime: departure, ArrivalTime: arrival})
	c.Request = httptest.NewRequest("POST", "/schedules", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	schedule := &domain.Schedule{ID: 3, FlightID: 1, DepartureTime: departure, ArrivalTime: arrival, Status: domain.ScheduleStatusPlanned}
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("schedules.CreateScheduleInput")).Return(schedule, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp scheduleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PLANNED", resp.Status)
	assert.Equal(t, int64(1), resp.FlightID)
}

func TestScheduleHandler_update_TemporalViolation(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewScheduleHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	early := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(updateScheduleRequest{ArrivalTime: &early})
	c.Request = httptest.NewRequest("PUT", "/schedules/3", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	mockService.On("Update", c.Request.Context(), int64(3), mock.Anything).Return(nil, domain.ErrValidation)

	handler.update(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_updateDelay(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewScheduleHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	minutes := 30
	body, _ := json.Marshal(updateDelayRequest{DelayMinutes: &minutes})
	c.Request = httptest.NewRequest("PUT", "/schedules/3/delay", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	schedule := &domain.Schedule{ID: 3, FlightID: 1, DelayMinutes: 30, Status: domain.ScheduleStatusPlanned}
	mockService.On("UpdateDelay", c.Request.Context(), int64(3), 30).Return(schedule, nil)

	handler.updateDelay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp scheduleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.DelayMinutes)
}

func TestScheduleHandler_listUpcoming(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewScheduleHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/schedules/upcoming", nil)

	mockService.On("ListUpcoming", c.Request.Context()).Return([]domain.Schedule{{ID: 3, FlightID: 1}}, nil)

	handler.listUpcoming(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandler_get_NotFound(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	handler := NewScheduleHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/schedules/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	mockService.On("GetByID", c.Request.Context(), int64(99)).Return(nil, domain.ErrNotFound)

	handler.get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
