package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/service"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
	"github.com/sica-labs/sica-api/pkg/response"
)

// ShiftHandler wires the advisor shift grid to HTTP routes.
type ShiftHandler struct {
	shifts       *service.ShiftService
	availability *service.AvailabilityService
}

// NewShiftHandler constructs a new ShiftHandler.
func NewShiftHandler(shifts *service.ShiftService, availability *service.AvailabilityService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts, availability: availability}
}

// List godoc
// @Summary List shift cells
// @Tags Shifts
// @Produce json
// @Param room query string false "Room"
// @Param day query string false "Weekday (MON..FRI)"
// @Param advisor_id query string false "Advisor ID"
// @Success 200 {object} response.Envelope
// @Router /shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	filter := models.ShiftFilter{
		Room:      strings.TrimSpace(c.Query("room")),
		DayOfWeek: strings.TrimSpace(c.Query("day")),
		AdvisorID: strings.TrimSpace(c.Query("advisor_id")),
	}
	shifts, err := h.shifts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shifts, nil)
}

// ListByAdvisor godoc
// @Summary List one advisor's shift cells
// @Tags Shifts
// @Produce json
// @Param id path string true "Advisor ID"
// @Success 200 {object} response.Envelope
// @Router /advisors/{id}/shifts [get]
func (h *ShiftHandler) ListByAdvisor(c *gin.Context) {
	shifts, err := h.shifts.List(c.Request.Context(), models.ShiftFilter{AdvisorID: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shifts, nil)
}

// CreateBlock godoc
// @Summary Place a shift block
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.CreateShiftBlockRequest true "Shift block payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shifts [post]
func (h *ShiftHandler) CreateBlock(c *gin.Context) {
	var req service.CreateShiftBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift payload"))
		return
	}
	result, err := h.shifts.CreateBlock(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.availability.InvalidateRoom(c.Request.Context(), req.Room)
	response.Created(c, result)
}

// DeleteBlock godoc
// @Summary Remove a whole shift block by one of its cells
// @Tags Shifts
// @Param id path string true "Shift cell ID"
// @Success 204
// @Router /shifts/{id} [delete]
func (h *ShiftHandler) DeleteBlock(c *gin.Context) {
	cell, err := h.shifts.DeleteBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.availability.InvalidateRoom(c.Request.Context(), cell.Room)
	response.NoContent(c)
}

// WeekView godoc
// @Summary Merged week view of a room's advisor grid
// @Tags Shifts
// @Produce json
// @Param room path string true "Room"
// @Param day query string false "Limit to one weekday"
// @Success 200 {object} response.Envelope
// @Router /rooms/{room}/shifts/week [get]
func (h *ShiftHandler) WeekView(c *gin.Context) {
	cells, err := h.shifts.WeekView(c.Request.Context(), c.Param("room"), strings.TrimSpace(c.Query("day")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, nil)
}
