package models

// DashboardStats is the admin overview, fully recomputed per request
// (optionally served from a short-lived cache).
type DashboardStats struct {
	PendingClients     int     `json:"pending_clients"`
	PendingTrainers    int     `json:"pending_trainers"`
	OngoingTrainings   int     `json:"ongoing_trainings"`
	CompletedTrainings int     `json:"completed_trainings"`
	PendingPOs         int     `json:"pending_pos"`
	PendingInvoices    int     `json:"pending_invoices"`
	TotalRevenue       float64 `json:"total_revenue"`
	AverageProgress    float64 `json:"average_progress"`
}
