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

// CourseScheduleHandler wires the course grid to HTTP routes.
type CourseScheduleHandler struct {
	courses     *service.CourseScheduleService
	defaultTerm string
}

// NewCourseScheduleHandler constructs a new CourseScheduleHandler.
func NewCourseScheduleHandler(courses *service.CourseScheduleService, defaultTerm string) *CourseScheduleHandler {
	return &CourseScheduleHandler{courses: courses, defaultTerm: defaultTerm}
}

func (h *CourseScheduleHandler) term(c *gin.Context) string {
	if term := strings.TrimSpace(c.Query("term_id")); term != "" {
		return term
	}
	return h.defaultTerm
}

// List godoc
// @Summary List course blocks
// @Tags Course Schedules
// @Produce json
// @Param term_id query string false "Term (defaults to current)"
// @Param room query string false "Room"
// @Param course query string false "Course name filter"
// @Success 200 {object} response.Envelope
// @Router /course-schedules [get]
func (h *CourseScheduleHandler) List(c *gin.Context) {
	filter := models.CourseScheduleFilter{
		TermID: h.term(c),
		Room:   strings.TrimSpace(c.Query("room")),
		Course: strings.TrimSpace(c.Query("course")),
	}
	blocks, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}

// Create godoc
// @Summary Place a course block
// @Tags Course Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseBlockRequest true "Course block payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /course-schedules [post]
func (h *CourseScheduleHandler) Create(c *gin.Context) {
	var req service.CreateCourseBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course schedule payload"))
		return
	}
	if req.TermID == "" {
		req.TermID = h.defaultTerm
	}
	block, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}

// Delete godoc
// @Summary Delete a course block
// @Tags Course Schedules
// @Param id path string true "Course block ID"
// @Success 204
// @Router /course-schedules/{id} [delete]
func (h *CourseScheduleHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Clear a room's course grid for a term
// @Tags Course Schedules
// @Produce json
// @Param room path string true "Room"
// @Param term_id query string false "Term (defaults to current)"
// @Success 200 {object} response.Envelope
// @Router /rooms/{room}/course-schedules [delete]
func (h *CourseScheduleHandler) Clear(c *gin.Context) {
	removed, err := h.courses.Clear(c.Request.Context(), c.Param("room"), h.term(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}

// WeekView godoc
// @Summary Merged week view of a room's course grid
// @Tags Course Schedules
// @Produce json
// @Param room path string true "Room"
// @Param term_id query string false "Term (defaults to current)"
// @Param day query string false "Limit to one weekday"
// @Success 200 {object} response.Envelope
// @Router /rooms/{room}/course-schedules/week [get]
func (h *CourseScheduleHandler) WeekView(c *gin.Context) {
	cells, err := h.courses.WeekView(c.Request.Context(), c.Param("room"), h.term(c), strings.TrimSpace(c.Query("day")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, nil)
}
