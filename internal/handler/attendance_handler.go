package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/service"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
	"github.com/sica-labs/sica-api/pkg/response"
)

// AttendanceHandler wires attendance tracking to HTTP routes. Check-in and
// check-out act on the authenticated account from the JWT.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs a new AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn godoc
// @Summary Record a check-in for the authenticated account
// @Tags Attendance
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	event, err := h.attendance.CheckIn(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// CheckOut godoc
// @Summary Record a check-out for the authenticated account
// @Tags Attendance
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	event, err := h.attendance.CheckOut(c.Request.Context(), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// History godoc
// @Summary Attendance history for an account
// @Tags Attendance
// @Produce json
// @Param account_id query string false "Account (defaults to the caller)"
// @Param date query string false "Calendar day (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	filter := models.AttendanceFilter{
		AccountID: strings.TrimSpace(c.Query("account_id")),
	}
	if filter.AccountID == "" {
		if claims := claimsFromContext(c); claims != nil {
			filter.AccountID = claims.AccountID
		}
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		filter.Date = &date
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	events, total, err := h.attendance.History(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, events, pagination)
}
