package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// documentHandler handles HTTP requests for the document registry.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers routes related to registry documents.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(ds)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.registerDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocument)
		documents.POST("/:id/review", h.reviewDocument)
		documents.DELETE("/:id", h.deleteDocument)
	}
}

// registerDocument godoc
// @Summary Register an uploaded document
// @Description Records metadata for a stored document; the upload itself happens against the storage layer
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.RegisterDocumentRequest true "Document metadata"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown document type"
// @Failure 500 {object} map[string]string "Failed to register document"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) registerDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.RegisterDocument(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to register document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List registry documents
// @Description Lists the caller's documents; admins may pass ownerID to list another owner's
// @Tags documents
// @Produce  json
// @Param   ownerID query string false "Owner to list (admin only)"
// @Success 200 {array} dto.DocumentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ownerID := c.Query("ownerID")
	if ownerID == "" {
		ownerID = actor.ActorID
	}

	docs, err := h.documentService.ListDocumentsByOwner(c.Request.Context(), actor, ownerID)
	if err != nil {
		respondWithError(c, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// getDocument godoc
// @Summary Get a registry document
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// reviewDocument godoc
// @Summary Review a registry document
// @Description Sets the registry-level verification status (admin operation); attached application copies keep their own sub-state
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   review body dto.ReviewDocumentRequest true "Verdict"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to review document"
// @Security BearerAuth
// @Router /documents/{id}/review [post]
func (h *documentHandler) reviewDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.ReviewDocument(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to review document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a registry document
// @Description Removes the registry record and best-effort deletes the stored object
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to delete document"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete document")
		return
	}

	c.Status(http.StatusNoContent)
}
