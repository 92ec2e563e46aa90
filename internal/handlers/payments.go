package handlers

import (
	"io"
	"net/http"
	"strings"

	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/services"
	"TRAVELBUDDY_BACK-END/internal/utils"
)

// SignatureHeader carries the gateway's webhook signature
const SignatureHeader = "Stripe-Signature"

// PaymentsHandler manages subscription purchases
type PaymentsHandler struct {
	payments        *services.PaymentService
	maxWebhookBytes int64
}

func NewPaymentsHandler(payments *services.PaymentService, maxWebhookBytes int64) *PaymentsHandler {
	if maxWebhookBytes <= 0 {
		maxWebhookBytes = 65536
	}
	return &PaymentsHandler{payments: payments, maxWebhookBytes: maxWebhookBytes}
}

// CreateIntent handles POST /api/payments/intent
// @Summary Start a subscription purchase
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreatePaymentIntentRequest true "EXPLORER, MONTHLY or YEARLY"
// @Success 201 {object} dto.PaymentIntentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/payments/intent [post]
func (h *PaymentsHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req dto.CreatePaymentIntentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.payments.CreatePaymentIntent(r.Context(), userID, models.SubscriptionType(strings.TrimSpace(req.SubscriptionType)))
	if err != nil {
		writeServiceError(w, r, "creating payment intent", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.PaymentIntentResponse{
		PaymentID:        res.PaymentID.String(),
		TransactionID:    res.TransactionID,
		ClientSecret:     res.ClientSecret,
		Amount:           res.Amount,
		Currency:         res.Currency,
		SubscriptionType: string(res.SubscriptionType),
	})
}

// Confirm handles POST /api/payments/confirm
// @Summary Confirm a completed charge
// @Description Verifies the intent with the gateway and grants the subscription once
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ConfirmPaymentRequest true "Transaction"
// @Success 200 {object} dto.ConfirmPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Charge not yet succeeded"
// @Router /api/payments/confirm [post]
func (h *PaymentsHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req dto.ConfirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.payments.ConfirmPayment(r.Context(), userID, strings.TrimSpace(req.TransactionID))
	if err != nil {
		writeServiceError(w, r, "confirming payment", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ConfirmPaymentResponse{
		Payment:               toPaymentResponse(res.Payment),
		SubscriptionType:      string(res.SubscriptionType),
		SubscriptionExpiresAt: formatTimePtr(res.SubscriptionExpiresAt),
		Premium:               res.Premium,
	})
}

// List handles GET /api/payments
// @Summary List my payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaymentResponse
// @Router /api/payments [get]
func (h *PaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	payments, err := h.payments.ListMyPayments(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "listing payments", err)
		return
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Webhook handles POST /api/payments/webhook
// @Summary Gateway webhook
// @Description Signature-verified over the raw body. Unverifiable requests get 400; transient failures get 500 so the gateway retries.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} dto.WebhookAck
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/payments/webhook [post]
func (h *PaymentsHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxWebhookBytes))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Webhook body unreadable or too large")
		return
	}

	if err := h.payments.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		writeServiceError(w, r, "handling payment webhook", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.WebhookAck{Received: true})
}
