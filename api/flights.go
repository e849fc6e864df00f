package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/repository"
	"github.com/Domenick1991/flightinventory/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNumber string `json:"flight_number" binding:"required"`
	Origin       string `json:"origin" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	TotalSeats   int    `json:"total_seats" binding:"required"`
}

type updateFlightRequest struct {
	FlightNumber   *string `json:"flight_number"`
	Origin         *string `json:"origin"`
	Destination    *string `json:"destination"`
	TotalSeats     *int    `json:"total_seats"`
	AvailableSeats *int    `json:"available_seats"`
}

type updateFlightStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateSeatsRequest struct {
	AvailableSeats *int `json:"available_seats" binding:"required"`
}

type flightResponse struct {
	ID             int64  `json:"id"`
	FlightNumber   string `json:"flight_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		Status:         string(f.Status),
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      f.UpdatedAt.Format(time.RFC3339),
	}
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/number/:number", h.getByNumber)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/status", h.updateStatus)
	router.PUT("/:id/seats", h.updateSeats)
	router.GET("/:id/schedules", h.listSchedules)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber: req.FlightNumber,
		Origin:       req.Origin,
		Destination:  req.Destination,
		TotalSeats:   req.TotalSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) list(c *gin.Context) {
	var filter repository.FlightFilter
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseFlightStatus(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		filter.Status = &status
	}
	filter.Origin = c.Query("origin")
	filter.Destination = c.Query("destination")
	if raw := c.Query("min_seats"); raw != "" {
		minSeats, err := parsePositiveInt(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_seats"})
			return
		}
		filter.MinAvailableSeats = minSeats
	}

	result, err := h.service.List(c.Request.Context(), filter, parsePage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	responses := make([]flightResponse, 0, len(result))
	for i := range result {
		responses = append(responses, toFlightResponse(&result[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) getByNumber(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, flights.UpdateFlightInput{
		FlightNumber:   req.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.AvailableSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
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

func (h *FlightHandler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateFlightStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := domain.ParseFlightStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	flight, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) updateSeats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.UpdateAvailableSeats(c.Request.Context(), id, *req.AvailableSeats)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) listSchedules(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
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

	schedules, err := h.service.ListSchedules(c.Request.Context(), id, from, until)
	if err != nil {
		writeError(c, err)
		return
	}
	responses := make([]scheduleResponse, 0, len(schedules))
	for i := range schedules {
		responses = append(responses, toScheduleResponse(&schedules[i]))
	}
	c.JSON(http.StatusOK, responses)
}
