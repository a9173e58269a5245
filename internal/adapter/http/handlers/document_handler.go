package handlers

import (
	"errors"
	"log"
	response "manifiesto_bot/internal/adapter/http/dto/response"
	"manifiesto_bot/internal/usecase"
	"manifiesto_bot/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	usecase usecase.IDocumentUseCase
}

func NewDocumentHandler(uc usecase.IDocumentUseCase) *DocumentHandler {
	return &DocumentHandler{usecase: uc}
}

// GetDocument godoc
// @Summary      Generated manifiesto with a short-lived download URL
// @Tags         documents
// @Produce      json
// @Param        document_id  path  string  true  "Document ID"
// @Success      200  {object}  response.DocumentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /documents/{document_id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	documentID := c.Param("document_id")
	view, err := h.usecase.GetByID(c.Request.Context(), documentID)
	if err != nil {
		log.Printf("[document][handler] get failed document_id=%s err=%v", documentID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDocumentView(view))
}

// ListDocumentsBySessionID godoc
// @Summary      Manifiestos generated for a session
// @Tags         documents
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {array}  response.DocumentResponse
// @Router       /sessions/{session_id}/documents [get]
func (h *DocumentHandler) ListDocumentsBySessionID(c *gin.Context) {
	sessionID := c.Param("session_id")
	docs, err := h.usecase.ListBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[document][handler] list failed session_id=%s err=%v", sessionID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDocuments(docs))
}

func mapDocumentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDocumentID), errors.Is(err, usecase.ErrInvalidSessionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDocumentNotFound):
		return pkg.NewDomainErrorSimple("DOCUMENT_NOT_FOUND", "Document not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
