package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/models"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

// SubmitTrainerInvoice raises the trainer's invoice for a verified
// training.
func (h *InvoiceHandler) SubmitTrainerInvoice(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.SubmitInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.Service.SubmitTrainerInvoice(r.Context(), userID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, inv)
}

// Approve approves a trainer invoice and raises the client invoice.
func (h *InvoiceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ApproveInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	clientInv, err := h.Service.ApproveTrainerInvoice(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, clientInv)
}

// MarkPaid settles either invoice leg.
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	inv, err := h.Service.MarkPaid(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var (
		invoices []models.Invoice
		err      error
	)
	switch role {
	case models.RoleTrainer:
		invoices, err = h.Service.ListForTrainer(r.Context(), userID)
	case models.RoleClient:
		invoices, err = h.Service.ListForClient(r.Context(), userID)
	default:
		invoices, err = h.Service.List(r.Context(), r.URL.Query().Get("type"))
	}
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	inv, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}
