package dbmodels

import (
	"time"
)

// RebateApproval holds the financial side of an approved rebate. The unique
// index on SopNumber is the guard against duplicate backfills when several
// requests trigger the reconciliation sync at once.
type RebateApproval struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	SopNumber      int64      `gorm:"uniqueIndex" json:"sop_number"`
	ReviewerID     *int64     `json:"reviewer_id"`
	SponsorID      *int64     `json:"sponsor_id"`
	ApprovedAmount float64    `json:"approved_amount"`
	StartDate      *time.Time `json:"start_date"`
	DisbursedDate  *time.Time `json:"disbursed_date"`
	PaymentDate    *time.Time `json:"payment_date"`
	OfficeNotes    string     `json:"office_notes"`
}
