package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visaops/evisa_backend/internal/core/domain"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// applicationHandler handles HTTP requests related to visa applications and
// their lifecycle.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
	lifecycleService   portssvc.LifecycleSvcFacade
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade, ls portssvc.LifecycleSvcFacade) *applicationHandler {
	return &applicationHandler{
		applicationService: as,
		lifecycleService:   ls,
	}
}

// RegisterApplicationRoutes registers routes related to applications.
func RegisterApplicationRoutes(rg *gin.RouterGroup, as portssvc.ApplicationSvcFacade, ls portssvc.LifecycleSvcFacade) {
	h := newApplicationHandler(as, ls)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.createApplication)
		applications.GET("", h.listMyApplications)
		applications.GET("/status/:status", h.listApplicationsByStatus)
		applications.GET("/:id", h.getApplication)
		applications.PUT("/:id", h.updateApplication)
		applications.DELETE("/:id", h.deleteApplication)

		applications.POST("/:id/submit", h.submitApplication)
		applications.POST("/:id/cancel", h.cancelApplication)
		applications.POST("/:id/transition", h.transitionApplication)

		applications.POST("/:id/notes", h.addAdminNote)

		applications.POST("/:id/documents", h.attachDocument)
		applications.DELETE("/:id/documents/:documentID", h.detachDocument)
		applications.POST("/:id/documents/:documentID/verify", h.verifyDocument)
	}
}

// createApplication godoc
// @Summary Create a draft application
// @Description Opens a new draft after checking eligibility, snapshotting the fee and processing terms, and assigning the application number
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input or applicant not eligible"
// @Failure 404 {object} map[string]string "Visa type not found"
// @Failure 500 {object} map[string]string "Failed to create application"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) createApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app, actor))
}

// listMyApplications godoc
// @Summary List own applications
// @Tags applications
// @Produce  json
// @Success 200 {array} dto.ApplicationResponse
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listMyApplications(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	apps, err := h.applicationService.ListMyApplications(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListApplicationResponse(apps, actor))
}

// listApplicationsByStatus godoc
// @Summary List applications in a status
// @Description Retrieves the review queue for one status (admin operation)
// @Tags applications
// @Produce  json
// @Param   status path string true "Application status"
// @Success 200 {array} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications/status/{status} [get]
func (h *applicationHandler) listApplicationsByStatus(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	apps, err := h.applicationService.ListApplicationsByStatus(c.Request.Context(), actor, domain.ApplicationStatus(c.Param("status")))
	if err != nil {
		respondWithError(c, err, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListApplicationResponse(apps, actor))
}

// getApplication godoc
// @Summary Get an application
// @Description Retrieves an application with history, notes, and derived values; applicants may only read their own
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to retrieve application"
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.GetApplication(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// updateApplication godoc
// @Summary Update a draft application
// @Description Replaces applicant-supplied data blocks while the application is editable
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   application body dto.UpdateApplicationRequest true "Blocks to update"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 422 {object} map[string]string "Application is not editable"
// @Failure 500 {object} map[string]string "Failed to update application"
// @Security BearerAuth
// @Router /applications/{id} [put]
func (h *applicationHandler) updateApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.applicationService.UpdateApplication(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// deleteApplication godoc
// @Summary Delete a draft application
// @Description Removes a draft; submitted applications can only be cancelled, never deleted
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 422 {object} map[string]string "Application is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete application"
// @Security BearerAuth
// @Router /applications/{id} [delete]
func (h *applicationHandler) deleteApplication(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.applicationService.DeleteApplication(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete application")
		return
	}

	c.Status(http.StatusNoContent)
}

// submitApplication godoc
// @Summary Submit a draft application
// @Description Moves a draft to submitted after the mandatory document check
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Mandatory documents missing"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 422 {object} map[string]string "Invalid transition"
// @Failure 500 {object} map[string]string "Failed to submit application"
// @Security BearerAuth
// @Router /applications/{id}/submit [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.lifecycleService.Submit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to submit application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// cancelApplication godoc
// @Summary Cancel an application
// @Description Moves any non-terminal application to cancelled; owner or admin
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   body body dto.TransitionRequest false "Optional note"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 422 {object} map[string]string "Application already terminal"
// @Failure 500 {object} map[string]string "Failed to cancel application"
// @Security BearerAuth
// @Router /applications/{id}/cancel [post]
func (h *applicationHandler) cancelApplication(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransitionRequest
	_ = c.ShouldBindJSON(&req) // note is optional, an empty body is fine

	app, err := h.lifecycleService.Cancel(c.Request.Context(), actor, c.Param("id"), req.Note)
	if err != nil {
		respondWithError(c, err, "Failed to cancel application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// transitionApplication godoc
// @Summary Transition an application
// @Description Moves an application along the review state machine (admin operation); rejection requires a non-empty note
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   transition body dto.TransitionRequest true "Target status, note, and notification flag"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input or guard failure"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Concurrent status change"
// @Failure 422 {object} map[string]string "Transition not allowed from current status"
// @Failure 500 {object} map[string]string "Failed to transition application"
// @Security BearerAuth
// @Router /applications/{id}/transition [post]
func (h *applicationHandler) transitionApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.lifecycleService.Transition(c.Request.Context(), actor, c.Param("id"), domain.ApplicationStatus(req.ToStatus), req.Note, req.Notify)
	if err != nil {
		respondWithError(c, err, "Failed to transition application")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// addAdminNote godoc
// @Summary Add a staff note
// @Description Appends an annotation to an application (admin operation); allowed in any status
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   note body dto.AddAdminNoteRequest true "Note"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to add note"
// @Security BearerAuth
// @Router /applications/{id}/notes [post]
func (h *applicationHandler) addAdminNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddAdminNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddAdminNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.applicationService.AddAdminNote(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to add note")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// attachDocument godoc
// @Summary Attach a document to an application
// @Description Copies a registry document reference into the application's document list
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   document body dto.AttachDocumentRequest true "Registry document reference"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application or document not found"
// @Failure 409 {object} map[string]string "Document already attached"
// @Failure 422 {object} map[string]string "Application is not editable"
// @Failure 500 {object} map[string]string "Failed to attach document"
// @Security BearerAuth
// @Router /applications/{id}/documents [post]
func (h *applicationHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.applicationService.AttachDocument(c.Request.Context(), actor, c.Param("id"), req.DocumentID)
	if err != nil {
		respondWithError(c, err, "Failed to attach document")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// detachDocument godoc
// @Summary Detach a document from an application
// @Description Removes the reference; the registry record itself is untouched
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application or attachment not found"
// @Failure 422 {object} map[string]string "Application is not editable"
// @Failure 500 {object} map[string]string "Failed to detach document"
// @Security BearerAuth
// @Router /applications/{id}/documents/{documentID} [delete]
func (h *applicationHandler) detachDocument(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.DetachDocument(c.Request.Context(), actor, c.Param("id"), c.Param("documentID"))
	if err != nil {
		respondWithError(c, err, "Failed to detach document")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}

// verifyDocument godoc
// @Summary Verify an attached document
// @Description Marks the application's own copy of an attached document as verified (admin operation); the registry record keeps its independent status
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   documentID path string true "Document ID"
// @Param   body body dto.VerifyApplicationDocumentRequest false "Optional reviewer notes"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application or attachment not found"
// @Failure 422 {object} map[string]string "Application already terminal"
// @Failure 500 {object} map[string]string "Failed to verify document"
// @Security BearerAuth
// @Router /applications/{id}/documents/{documentID}/verify [post]
func (h *applicationHandler) verifyDocument(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VerifyApplicationDocumentRequest
	_ = c.ShouldBindJSON(&req) // notes are optional

	app, err := h.applicationService.VerifyApplicationDocument(c.Request.Context(), actor, c.Param("id"), c.Param("documentID"), req.Notes)
	if err != nil {
		respondWithError(c, err, "Failed to verify document")
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app, actor))
}
