package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sica-labs/sica-api/internal/models"
	"github.com/sica-labs/sica-api/internal/service"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
	"github.com/sica-labs/sica-api/pkg/response"
)

// AdvisorHandler wires the advisor roster to HTTP routes.
type AdvisorHandler struct {
	advisors *service.AdvisorService
}

// NewAdvisorHandler constructs a new AdvisorHandler.
func NewAdvisorHandler(advisors *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisors: advisors}
}

// List godoc
// @Summary List advisors
// @Tags Advisors
// @Produce json
// @Param search query string false "Search by name/email/account"
// @Param active query bool false "Filter by active status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field (full_name,email,created_at)"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /advisors [get]
func (h *AdvisorHandler) List(c *gin.Context) {
	filter := models.AdvisorFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if active := c.Query("active"); active != "" {
		switch strings.ToLower(active) {
		case "true":
			val := true
			filter.Active = &val
		case "false":
			val := false
			filter.Active = &val
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	advisors, pagination, err := h.advisors.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, advisors, pagination)
}

// Get godoc
// @Summary Get advisor detail
// @Tags Advisors
// @Produce json
// @Param id path string true "Advisor ID"
// @Success 200 {object} response.Envelope
// @Router /advisors/{id} [get]
func (h *AdvisorHandler) Get(c *gin.Context) {
	advisor, err := h.advisors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, advisor, nil)
}

// Create godoc
// @Summary Register advisor
// @Tags Advisors
// @Accept json
// @Produce json
// @Param payload body service.CreateAdvisorRequest true "Advisor payload"
// @Success 201 {object} response.Envelope
// @Router /advisors [post]
func (h *AdvisorHandler) Create(c *gin.Context) {
	var req service.CreateAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid advisor payload"))
		return
	}
	advisor, err := h.advisors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, advisor)
}

// Update godoc
// @Summary Update advisor
// @Tags Advisors
// @Accept json
// @Produce json
// @Param id path string true "Advisor ID"
// @Param payload body service.UpdateAdvisorRequest true "Advisor payload"
// @Success 200 {object} response.Envelope
// @Router /advisors/{id} [put]
func (h *AdvisorHandler) Update(c *gin.Context) {
	var req service.UpdateAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid advisor payload"))
		return
	}
	advisor, err := h.advisors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, advisor, nil)
}

// Delete godoc
// @Summary Deactivate advisor
// @Tags Advisors
// @Param id path string true "Advisor ID"
// @Success 204
// @Router /advisors/{id} [delete]
func (h *AdvisorHandler) Delete(c *gin.Context) {
	if err := h.advisors.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
