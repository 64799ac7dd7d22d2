package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// OnlineTransactionRepository stores the gateway order records linking
// razorpay orders to client invoices.
type OnlineTransactionRepository interface {
	Create(ctx context.Context, tx *models.OnlineTransaction) error
	GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) error
}

// CreateOrderResponse carries what the frontend checkout needs.
type CreateOrderResponse struct {
	OrderID     string  `json:"order_id"`
	AmountPaise int     `json:"amount"`
	Currency    string  `json:"currency"`
	KeyID       string  `json:"key_id"`
	InvoiceID   int     `json:"invoice_id"`
	Amount      float64 `json:"invoice_amount"`
}

type RazorpayService struct {
	transactions  OnlineTransactionRepository
	invoices      *InvoiceService
	settings      *SystemSettingService
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, transactions OnlineTransactionRepository, invoices *InvoiceService, settings *SystemSettingService) *RazorpayService {
	return &RazorpayService{
		transactions:  transactions,
		invoices:      invoices,
		settings:      settings,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (s *RazorpayService) client() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// IsEnabled checks the online payment toggle.
func (s *RazorpayService) IsEnabled(ctx context.Context) bool {
	return s.settings.OnlinePaymentEnabled(ctx)
}

// CreateOrder creates a razorpay order for an unpaid client invoice owned
// by the calling client and records the pending transaction.
func (s *RazorpayService) CreateOrder(ctx context.Context, invoiceID, clientUserID int) (*CreateOrderResponse, error) {
	if !s.IsEnabled(ctx) {
		return nil, NewConflictError("online payments are currently disabled")
	}
	client := s.client()
	if client == nil {
		return nil, NewConflictError("online payments are not configured")
	}

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Type != models.InvoiceTypeClient {
		return nil, NewValidationError("only a client invoice can be paid online")
	}
	if inv.Status == models.InvoiceStatusPaid {
		return nil, NewConflictError("invoice is already paid")
	}

	owner, err := s.invoices.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	if inv.ClientID == nil || *inv.ClientID != owner.ID {
		return nil, ErrForbidden
	}

	amountPaise := int(Round2(inv.ClientAmount) * 100)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%d_%d", inv.ID, timeutil.Now().Unix()),
		"notes": map[string]interface{}{
			"invoice_id":     inv.ID,
			"invoice_number": inv.InvoiceNumber,
		},
	}
	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	tx := &models.OnlineTransaction{
		OrderID:   orderID,
		InvoiceID: inv.ID,
		Amount:    inv.ClientAmount,
		Status:    models.OnlineTxStatusCreated,
		CreatedAt: timeutil.Now(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	return &CreateOrderResponse{
		OrderID:     orderID,
		AmountPaise: amountPaise,
		Currency:    "INR",
		KeyID:       s.keyID,
		InvoiceID:   inv.ID,
		Amount:      inv.ClientAmount,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature razorpay sends
// with every webhook delivery.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles payment.captured events by settling the linked
// client invoice. Other events are acknowledged and ignored.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, paymentData map[string]interface{}) error {
	if event != "payment.captured" {
		log.Printf("[Razorpay] ignoring webhook event %s", event)
		return nil
	}

	entity := paymentData
	if wrapped, ok := paymentData["payment"].(map[string]interface{}); ok {
		entity = wrapped
	}
	if inner, ok := entity["entity"].(map[string]interface{}); ok {
		entity = inner
	}

	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("webhook payload missing order_id")
	}

	tx, err := s.transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("transaction for order %s not found: %w", orderID, err)
	}
	if tx.Status == models.OnlineTxStatusPaid {
		log.Printf("[Razorpay] order %s already settled", orderID)
		return nil
	}

	if err := s.transactions.MarkPaid(ctx, orderID, paymentID); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if _, err := s.invoices.MarkPaid(ctx, tx.InvoiceID); err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("failed to settle invoice %d: %w", tx.InvoiceID, err)
	}

	return nil
}
