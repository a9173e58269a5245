package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentAmount           = errors.New("invalid payment amount")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

const defaultPaymentMethodID = "pse"

// IBillingPaymentUseCase records the payment a user asserted for a session.
//
// Requested behavior:
//   - Create an item in the payment table and approve it as paid. The user's
//     confirmation is trusted; the provider answer is kept for audit only.

type IBillingPaymentUseCase interface {
	RecordConfirmed(ctx context.Context, sessionID string, amount int64) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo    interfaces.IBillingPaymentRepository
	gateway interfaces.IPaymentGateway
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(repo interfaces.IBillingPaymentRepository, gateway interfaces.IPaymentGateway) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, gateway: gateway}
}

func (u *BillingPaymentUseCase) RecordConfirmed(ctx context.Context, sessionID string, amount int64) (entities.BillingPayment, error) {
	log.Printf("[payment][usecase] record-confirmed start raw_session_id=%q amount=%d", sessionID, amount)
	mockMode := isPaymentGatewayMockEnabled()
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		log.Printf("[payment][usecase] invalid session_id (empty)")
		return entities.BillingPayment{}, ErrInvalidSessionID
	}
	if amount <= 0 {
		log.Printf("[payment][usecase] invalid amount session_id=%s amount=%d", sessionID, amount)
		return entities.BillingPayment{}, ErrInvalidPaymentAmount
	}
	if u.repo == nil {
		log.Printf("[payment][usecase] payment repository not configured session_id=%s", sessionID)
		return entities.BillingPayment{}, errors.New("payment repository not configured")
	}
	if !mockMode && u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured session_id=%s", sessionID)
		return entities.BillingPayment{}, errors.New("payment gateway not configured")
	}

	mpPayload, err := buildPaymentPayload(sessionID, amount)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID := ""
	providerStatus := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway session_id=%s", sessionID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		providerStatus = "approved"
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		_ = json.Unmarshal(mpPayload, &mockResp)
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.BillingPayment{}, mErr
		}
		providerResp = b
	} else {
		log.Printf("[payment][usecase] calling payment gateway session_id=%s", sessionID)
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed session_id=%s err=%v", sessionID, err)
			return entities.BillingPayment{}, classifyGatewayError(err)
		}
	}
	log.Printf("[payment][usecase] payment gateway success session_id=%s provider_payment_id=%s provider_status=%s", sessionID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed session_id=%s err=%v", sessionID, err)
	}

	p := entities.BillingPayment{
		ID:           providerPaymentID,
		SessionID:    sessionID,
		Amount:       amount,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusAprovado,
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed session_id=%s payment_id=%s err=%v", sessionID, p.ID, err)
		return entities.BillingPayment{}, err
	}
	log.Printf("[payment][usecase] record-confirmed success session_id=%s payment_id=%s status=%s", sessionID, created.ID, created.Status)
	return created, nil
}

// buildPaymentPayload assembles the Mercado Pago request for a manifiesto fee.
// external_reference ties the provider payment back to the session.
func buildPaymentPayload(sessionID string, amount int64) (json.RawMessage, error) {
	method := strings.TrimSpace(os.Getenv("MERCADOPAGO_PAYMENT_METHOD_ID"))
	if method == "" {
		method = defaultPaymentMethodID
	}
	req := map[string]any{
		"transaction_amount": float64(amount),
		"description":        fmt.Sprintf("Manifiesto de carga %s", sessionID),
		"external_reference": sessionID,
		"payment_method_id":  method,
		"installments":       1,
	}
	ensurePayerDefaults(req)
	return json.Marshal(req)
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	if _, ok := payer["email"]; !ok {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_co@testuser.com"
		}
	}
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListBySessionID(ctx context.Context, sessionID string) ([]entities.BillingPayment, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	return u.repo.ListBySessionID(ctx, sessionID)
}
