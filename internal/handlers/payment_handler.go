package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type PaymentHandler struct {
	Service *services.RazorpayService
}

func NewPaymentHandler(s *services.RazorpayService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

type createOrderRequest struct {
	InvoiceID int `json:"invoice_id"`
}

// CreateOrder starts an online payment for one of the caller's client
// invoices.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), req.InvoiceID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Status exposes the payment toggle to the frontend.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": h.Service.IsEnabled(r.Context())})
}

// Webhook receives razorpay event deliveries. Signature failures are
// rejected before the payload is trusted.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid body")
		return
	}

	if !h.Service.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		utils.Error(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var payload struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), payload.Event, payload.Payload); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
