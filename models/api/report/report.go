package reportapimodels

import (
	"time"

	"eia-backend/models"
)

// StatusCounts buckets application counts the way the contractor dashboard
// shows them: Revision Requested and Draft count towards Pending.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Disbursed int64 `json:"disbursed"`
}

type FeedItem struct {
	Building       string              `json:"building"`
	Category       string              `json:"category"`
	Status         models.RebateStatus `json:"status"`
	SubmissionDate time.Time           `json:"submission_date"`
}

type DashboardView struct {
	Counts StatusCounts `json:"counts"`
	Feed   []FeedItem   `json:"feed"`
}

type AgingRow struct {
	SopNumber      int64     `json:"sop_number"`
	Category       string    `json:"category"`
	Building       string    `json:"building"`
	DepartmentID   int64     `json:"department_id"`
	SubmissionDate time.Time `json:"submission_date"`
	DaysPending    int       `json:"days_pending"`
}

type HighValueRow struct {
	SopNumber      int64      `json:"sop_number"`
	Category       string     `json:"category"`
	DepartmentID   int64      `json:"department_id"`
	ApprovedAmount float64    `json:"approved_amount"`
	StartDate      *time.Time `json:"start_date"`
}

type CampaignMetrics struct {
	CampaignName         string  `json:"campaign_name"`
	Category             string  `json:"category"`
	TotalApplications    int64   `json:"total_applications"`
	ApprovedApplications int64   `json:"approved_applications"`
	TotalApprovedRebates float64 `json:"total_approved_rebates"`
}

type PaymentRow struct {
	SopNumber      int64               `json:"sop_number"`
	DepartmentID   int64               `json:"department_id"`
	Category       string              `json:"category"`
	Status         models.RebateStatus `json:"status"`
	PaymentDate    *time.Time          `json:"payment_date"`
	ApprovedAmount float64             `json:"approved_amount"`
}

type PaymentLedger struct {
	Payments   []PaymentRow `json:"payments"`
	GrandTotal float64      `json:"grand_total"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
}
