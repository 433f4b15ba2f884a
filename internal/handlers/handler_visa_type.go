package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// visaTypeHandler handles HTTP requests related to the visa type catalog.
type visaTypeHandler struct {
	visaTypeService   portssvc.VisaTypeSvcFacade
	statisticsService portssvc.StatisticsSvcFacade
}

func newVisaTypeHandler(vts portssvc.VisaTypeSvcFacade, ss portssvc.StatisticsSvcFacade) *visaTypeHandler {
	return &visaTypeHandler{
		visaTypeService:   vts,
		statisticsService: ss,
	}
}

// registerVisaTypeRoutes registers routes related to the visa type catalog.
func registerVisaTypeRoutes(rg *gin.RouterGroup, vts portssvc.VisaTypeSvcFacade, ss portssvc.StatisticsSvcFacade) {
	h := newVisaTypeHandler(vts, ss)

	visaTypes := rg.Group("/visa-types")
	{
		visaTypes.POST("", h.createVisaType)
		visaTypes.GET("", h.listVisaTypes)
		visaTypes.GET("/:code", h.getVisaTypeByCode)
		visaTypes.PUT("/:code", h.updateVisaType)
		visaTypes.DELETE("/:code", h.deactivateVisaType)
		visaTypes.POST("/:code/statistics/recompute", h.recomputeStatistics)
	}
}

// createVisaType godoc
// @Summary Create a new visa type
// @Description Adds a new entry to the visa type catalog (admin operation)
// @Tags visa-types
// @Accept  json
// @Produce  json
// @Param   visaType body dto.CreateVisaTypeRequest true "Visa type details"
// @Success 201 {object} dto.VisaTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Visa type code already exists"
// @Failure 500 {object} map[string]string "Failed to create visa type"
// @Security BearerAuth
// @Router /visa-types [post]
func (h *visaTypeHandler) createVisaType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateVisaTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVisaType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.visaTypeService.CreateVisaType(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create visa type")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisaTypeResponse(created))
}

// listVisaTypes godoc
// @Summary List visa types
// @Description Retrieves catalog entries visible to the caller; applicants see only active public entries
// @Tags visa-types
// @Produce  json
// @Success 200 {array} dto.VisaTypeResponse
// @Failure 500 {object} map[string]string "Failed to list visa types"
// @Security BearerAuth
// @Router /visa-types [get]
func (h *visaTypeHandler) listVisaTypes(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	visaTypes, err := h.visaTypeService.ListVisaTypes(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list visa types")
		return
	}

	c.JSON(http.StatusOK, dto.ToListVisaTypeResponse(visaTypes))
}

// getVisaTypeByCode godoc
// @Summary Get a visa type by code
// @Tags visa-types
// @Produce  json
// @Param   code path string true "Visa type code"
// @Success 200 {object} dto.VisaTypeResponse
// @Failure 404 {object} map[string]string "Visa type not found"
// @Failure 500 {object} map[string]string "Failed to retrieve visa type"
// @Security BearerAuth
// @Router /visa-types/{code} [get]
func (h *visaTypeHandler) getVisaTypeByCode(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	visaType, err := h.visaTypeService.GetVisaTypeByCode(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve visa type")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisaTypeResponse(visaType))
}

// updateVisaType godoc
// @Summary Update a visa type
// @Description Partially updates a catalog entry (admin operation). The code is immutable; the name is locked once applications reference the entry.
// @Tags visa-types
// @Accept  json
// @Produce  json
// @Param   code path string true "Visa type code"
// @Param   visaType body dto.UpdateVisaTypeRequest true "Fields to update"
// @Success 200 {object} dto.VisaTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Visa type not found"
// @Failure 500 {object} map[string]string "Failed to update visa type"
// @Security BearerAuth
// @Router /visa-types/{code} [put]
func (h *visaTypeHandler) updateVisaType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateVisaTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVisaType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.visaTypeService.UpdateVisaType(c.Request.Context(), actor, c.Param("code"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update visa type")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisaTypeResponse(updated))
}

// deactivateVisaType godoc
// @Summary Deactivate a visa type
// @Description Hides a catalog entry from applicants; existing applications keep their snapshots (admin operation)
// @Tags visa-types
// @Produce  json
// @Param   code path string true "Visa type code"
// @Success 204 "Deactivated"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Visa type not found"
// @Failure 500 {object} map[string]string "Failed to deactivate visa type"
// @Security BearerAuth
// @Router /visa-types/{code} [delete]
func (h *visaTypeHandler) deactivateVisaType(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.visaTypeService.DeactivateVisaType(c.Request.Context(), actor, c.Param("code")); err != nil {
		respondWithError(c, err, "Failed to deactivate visa type")
		return
	}

	c.Status(http.StatusNoContent)
}

// recomputeStatistics godoc
// @Summary Recompute visa type statistics
// @Description Rebuilds the cached counters of a visa type from its application population (admin operation)
// @Tags visa-types
// @Produce  json
// @Param   code path string true "Visa type code"
// @Success 200 {object} dto.VisaTypeStatisticsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Visa type not found"
// @Failure 500 {object} map[string]string "Failed to recompute statistics"
// @Security BearerAuth
// @Router /visa-types/{code}/statistics/recompute [post]
func (h *visaTypeHandler) recomputeStatistics(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation forbidden"})
		return
	}

	stats, err := h.statisticsService.RecomputeStatistics(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to recompute statistics")
		return
	}

	c.JSON(http.StatusOK, dto.VisaTypeStatisticsResponse{
		TotalApplications: stats.TotalApplications,
		Approved:          stats.Approved,
		Rejected:          stats.Rejected,
		AvgProcessingDays: stats.AvgProcessingDays,
		LastUpdated:       stats.LastUpdated,
	})
}
