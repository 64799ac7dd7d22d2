package models

import "time"

// Well-known setting keys.
const (
	SettingAdminProfitMargin    = "admin_profit_margin"    // percent, PO processing default
	SettingGuviMarginPercent    = "guvi_margin_percent"    // percent, invoice approval default
	SettingOnlinePaymentEnabled = "online_payment_enabled" // "true"/"false"
)

type SystemSetting struct {
	ID           int       `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateSettingRequest struct {
	SettingValue string `json:"setting_value"`
}
