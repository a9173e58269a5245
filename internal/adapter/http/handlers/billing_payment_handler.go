package handlers

import (
	"errors"
	"log"
	response "manifiesto_bot/internal/adapter/http/dto/response"
	"manifiesto_bot/internal/usecase"
	"manifiesto_bot/pkg"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// BillingPaymentHandler exposes the payments recorded for a session.

type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc}
}

// ListPaymentsBySessionID godoc
// @Summary      Payments recorded for a session, newest first
// @Tags         payments
// @Produce      json
// @Param        session_id  path  string  true  "Session ID"
// @Success      200  {array}   response.BillingPaymentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /sessions/{session_id}/payments [get]
func (h *BillingPaymentHandler) ListPaymentsBySessionID(c *gin.Context) {
	sessionID := c.Param("session_id")
	log.Printf("[payment][handler] list-by-session start session_id=%s", sessionID)

	payments, err := h.usecase.ListBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[payment][handler] list-by-session failed session_id=%s err=%v", sessionID, err)
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	log.Printf("[payment][handler] list-by-session success session_id=%s count=%d", sessionID, len(payments))
	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPaymentByID godoc
// @Summary      One recorded payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  response.BillingPaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *BillingPaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("payment_id")
	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapBillingPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSessionID), errors.Is(err, usecase.ErrInvalidPaymentAmount), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
