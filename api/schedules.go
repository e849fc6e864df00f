package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/Domenick1991/flightinventory/internal/service/schedules"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service schedules.ScheduleUseCase
}

type createScheduleRequest struct {
	FlightID      int64     `json:"flight_id" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}

type updateScheduleRequest struct {
	FlightID      *int64     `json:"flight_id"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
}

type updateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateDelayRequest struct {
	DelayMinutes *int `json:"delay_minutes" binding:"required"`
}

type scheduleResponse struct {
	ID            int64  `json:"id"`
	FlightID      int64  `json:"flight_id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Status        string `json:"status"`
	DelayMinutes  int    `json:"delay_minutes"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toScheduleResponse(s *domain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:            s.ID,
		FlightID:      s.FlightID,
		DepartureTime: s.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   s.ArrivalTime.Format(time.RFC3339),
		Status:        string(s.Status),
		DelayMinutes:  s.DelayMinutes,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewScheduleHandler(service schedules.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/upcoming", h.listUpcoming)
	router.GET("/delayed", h.listDelayed)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/status", h.updateStatus)
	router.PUT("/:id/delay", h.updateDelay)
}

func (h *ScheduleHandler) create(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.service.Create(c.Request.Context(), schedules.CreateScheduleInput{
		FlightID:      req.FlightID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) list(c *gin.Context) {
	var filter repository.ScheduleFilter
	if raw := c.Query("flight_id"); raw != "" {
		flightID, err := parsePositiveInt(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
			return
		}
		filter.FlightID = int64(flightID)
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseScheduleStatus(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		filter.Status = &status
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from time"})
		return
	}
	until, err := parseTimeQuery(c, "until")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid until time"})
		return
	}
	filter.DepartsAfter = from
	filter.DepartsUntil = until
	filter.Origin = c.Query("origin")
	filter.Destination = c.Query("destination")

	result, err := h.service.List(c.Request.Context(), filter, parsePage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponses(result))
}

func (h *ScheduleHandler) listUpcoming(c *gin.Context) {
	result, err := h.service.ListUpcoming(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponses(result))
}

func (h *ScheduleHandler) listDelayed(c *gin.Context) {
	result, err := h.service.ListDelayed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponses(result))
}

func (h *ScheduleHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	schedule, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.service.Update(c.Request.Context(), id, schedules.UpdateScheduleInput{
		FlightID:      req.FlightID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) delete(c *gin.Context) {
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

func (h *ScheduleHandler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := domain.ParseScheduleStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	schedule, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

func (h *ScheduleHandler) updateDelay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateDelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.service.UpdateDelay(c.Request.Context(), id, *req.DelayMinutes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

func toScheduleResponses(schedules []domain.Schedule) []scheduleResponse {
	responses := make([]scheduleResponse, 0, len(schedules))
	for i := range schedules {
		responses = append(responses, toScheduleResponse(&schedules[i]))
	}
	return responses
}
