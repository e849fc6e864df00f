package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/Domenick1991/flightinventory/internal/service/tickets"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) Issue(ctx context.Context, input tickets.IssueTicketInput) (*domain.Ticket, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) GetByReference(ctx context.Context, reference string) (*domain.Ticket, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) ListBySchedule(ctx context.Context, scheduleID int64, page repository.Page) ([]domain.Ticket, error) {
	args := m.Called(ctx, scheduleID, page)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTicketHandler_issue(t *testing.T) {
	mockService := &MockTicketUseCase{}
	handler := NewTicketHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := tickets.IssueTicketInput{
		ScheduleID:     3,
		PassengerName:  "A. Lee",
		PassengerEmail: "a.lee@example.com",
		SeatNumber:     10,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/tickets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	ticket := &domain.Ticket{
		ID:             11,
		ScheduleID:     3,
		Reference:      "ref-1",
		PassengerName:  "A. Lee",
		PassengerEmail: "a.lee@example.com",
		SeatNumber:     10,
	}
	mockService.On("Issue", c.Request.Context(), input).Return(ticket, nil)

	handler.issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ticketResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ref-1", resp.Reference)
	assert.Equal(t, 10, resp.SeatNumber)
}

func TestTicketHandler_issue_SeatTaken(t *testing.T) {
	mockService := &MockTicketUseCase{}
	handler := NewTicketHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(tickets.IssueTicketInput{ScheduleID: 3, PassengerName: "A. Lee", PassengerEmail: "a.lee@example.com", SeatNumber: 10})
	c.Request = httptest.NewRequest("POST", "/tickets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Issue", c.Request.Context(), mock.Anything).Return(nil, domain.ErrConflict)

	handler.issue(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_issue_SeatExceedsCapacity(t *testing.T) {
	mockService := &MockTicketUseCase{}
	handler := NewTicketHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(tickets.IssueTicketInput{ScheduleID: 3, PassengerName: "A. Lee", PassengerEmail: "a.lee@example.com", SeatNumber: 151})
	c.Request = httptest.NewRequest("POST", "/tickets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Issue", c.Request.Context(), mock.Anything).Return(nil, domain.ErrValidation)

	handler.issue(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_listBySchedule_RequiresScheduleID(t *testing.T) {
	handler := NewTicketHandler(&MockTicketUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/tickets", nil)

	handler.listBySchedule(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_delete_NotFound(t *testing.T) {
	mockService := &MockTicketUseCase{}
	handler := NewTicketHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/tickets/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	mockService.On("Delete", c.Request.Context(), int64(99)).Return(domain.ErrNotFound)

	handler.delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
