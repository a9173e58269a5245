package handlers

import (
	"errors"
	"log"
	request "manifiesto_bot/internal/adapter/http/dto/request"
	response "manifiesto_bot/internal/adapter/http/dto/response"
	"manifiesto_bot/internal/usecase"
	"manifiesto_bot/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidTurnPayload = pkg.NewDomainErrorSimple("INVALID_TURN_INPUT", "Invalid turn payload", http.StatusBadRequest)
)

// ConversationHandler exposes the manifiesto lifecycle to the chat transport.
// Every endpoint is one turn of a session identified by :session_id.

type ConversationHandler struct {
	usecase usecase.ILifecycleUseCase
}

func NewConversationHandler(uc usecase.ILifecycleUseCase) *ConversationHandler {
	return &ConversationHandler{usecase: uc}
}

// PostTurn godoc
// @Summary      Process one conversation turn
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        session_id  path  string               true  "Session ID"
// @Param        turn        body  request.TurnRequest  true  "Classified user message"
// @Success      200  {object}  response.TurnResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /sessions/{session_id}/turns [post]
func (h *ConversationHandler) PostTurn(c *gin.Context) {
	sessionID := c.Param("session_id")
	var payload request.TurnRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[conversation][handler] invalid payload session_id=%s err=%v", sessionID, err)
		c.JSON(errInvalidTurnPayload.HTTPStatus, errInvalidTurnPayload.ToHTTPError())
		return
	}
	h.handleTurn(c, payload.ToTurnInput(sessionID))
}

// GetSession godoc
// @Summary      Current session snapshot
// @Tags         sessions
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  response.SessionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /sessions/{session_id} [get]
func (h *ConversationHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	s, err := h.usecase.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		appErr := mapConversationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromFormSession(s))
}

// ResetSession godoc
// @Summary      Discard the current manifiesto and start over
// @Tags         sessions
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {object}  response.TurnResponse
// @Router       /sessions/{session_id}/reset [post]
func (h *ConversationHandler) ResetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	log.Printf("[conversation][handler] reset session_id=%s", sessionID)
	res, err := h.usecase.Reset(c.Request.Context(), sessionID)
	if err != nil {
		appErr := mapConversationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTurnResult(res))
}

// ConfirmPayment godoc
// @Summary      Payment delegate: the user says the fee was paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        session_id  path  string                         true   "Session ID"
// @Param        body        body  request.PaymentConfirmRequest  false  "Origin of the confirmation"
// @Success      200  {object}  response.TurnResponse
// @Router       /sessions/{session_id}/payments/confirm [post]
func (h *ConversationHandler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Param("session_id")
	var payload request.PaymentConfirmRequest
	// The body is optional.
	_ = c.ShouldBindJSON(&payload)
	log.Printf("[payment][handler] confirm session_id=%s source=%q", sessionID, payload.Source)
	h.handleTurn(c, usecase.TurnInput{SessionID: sessionID, Event: usecase.EventPaymentConfirmed})
}

func (h *ConversationHandler) handleTurn(c *gin.Context, in usecase.TurnInput) {
	res, err := h.usecase.HandleTurn(c.Request.Context(), in)
	if err != nil {
		log.Printf("[conversation][handler] turn failed session_id=%s event=%s err=%v", in.SessionID, in.Event, err)
		appErr := mapConversationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTurnResult(res))
}

func mapConversationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSessionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Session not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
