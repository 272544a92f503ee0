package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sica-labs/sica-api/internal/service"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
	"github.com/sica-labs/sica-api/pkg/response"
)

// AvailabilityHandler wires advisor availability queries to HTTP routes.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs a new AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Query godoc
// @Summary Advisors available in a room
// @Description Pass either slot=HH:MM-HH:MM for an exact slot lookup, or
// @Description from=HH:MM&to=HH:MM for a half-open range overlap query.
// @Tags Availability
// @Produce json
// @Param room path string true "Room"
// @Param day query string true "Weekday (MON..FRI)"
// @Param slot query string false "Slot label"
// @Param from query string false "Range start"
// @Param to query string false "Range end"
// @Success 200 {object} response.Envelope
// @Router /rooms/{room}/availability [get]
func (h *AvailabilityHandler) Query(c *gin.Context) {
	room := c.Param("room")
	day := strings.TrimSpace(c.Query("day"))
	slot := strings.TrimSpace(c.Query("slot"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	switch {
	case slot != "" && (from != "" || to != ""):
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pass either slot or from/to, not both"))
	case slot != "":
		entries, err := h.availability.FindBySlot(c.Request.Context(), room, day, slot)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, entries, nil)
	case from != "" && to != "":
		entries, err := h.availability.FindByRange(c.Request.Context(), room, day, from, to)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, entries, nil)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slot or from/to query parameters required"))
	}
}
