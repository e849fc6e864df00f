package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/service/tickets"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

type issueTicketRequest struct {
	ScheduleID     int64  `json:"schedule_id" binding:"required"`
	PassengerName  string `json:"passenger_name" binding:"required"`
	PassengerEmail string `json:"passenger_email" binding:"required"`
	SeatNumber     int    `json:"seat_number" binding:"required"`
}

type ticketResponse struct {
	ID             int64  `json:"id"`
	ScheduleID     int64  `json:"schedule_id"`
	Reference      string `json:"reference"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	SeatNumber     int    `json:"seat_number"`
	CreatedAt      string `json:"created_at"`
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:             t.ID,
		ScheduleID:     t.ScheduleID,
		Reference:      t.Reference,
		PassengerName:  t.PassengerName,
		PassengerEmail: t.PassengerEmail,
		SeatNumber:     t.SeatNumber,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.issue)
	router.GET("/", h.listBySchedule)
	router.GET("/:id", h.get)
	router.GET("/reference/:reference", h.getByReference)
	router.DELETE("/:id", h.delete)
}

func (h *TicketHandler) issue(c *gin.Context) {
	var req issueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.Issue(c.Request.Context(), tickets.IssueTicketInput{
		ScheduleID:     req.ScheduleID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		SeatNumber:     req.SeatNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

func (h *TicketHandler) listBySchedule(c *gin.Context) {
	scheduleID, err := parsePositiveInt(c.Query("schedule_id"))
	if err != nil || scheduleID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schedule_id is required"})
		return
	}

	result, err := h.service.ListBySchedule(c.Request.Context(), int64(scheduleID), parsePage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	responses := make([]ticketResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toTicketResponse(&result[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *TicketHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ticket, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) getByReference(c *gin.Context) {
	ticket, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
