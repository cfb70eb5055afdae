package dbmodels

import (
	"eia-backend/models"
	"time"
)

type Rebate struct {
	SopNumber         int64               `gorm:"primaryKey;autoIncrement" json:"sop_number"`
	Category          string              `gorm:"type:varchar(100);index" json:"category"`
	Building          string              `gorm:"type:varchar(255)" json:"building"`
	Status            models.RebateStatus `gorm:"type:varchar(50);index" json:"status"`
	SubmissionDate    time.Time           `gorm:"index" json:"submission_date"`
	DepartmentID      int64               `gorm:"index" json:"department_id"`
	SponsorID         *int64              `json:"sponsor_id"`
	NumOfApplications int                 `json:"num_of_applications"`
	OfficeNotes       string              `json:"office_notes"`
}

// RebateWithApproval is the master-list read model: a rebate row with the
// approval columns folded in by a left join.
type RebateWithApproval struct {
	Rebate
	ApprovedAmount *float64   `json:"approved_amount"`
	PaymentDate    *time.Time `json:"payment_date"`
}
