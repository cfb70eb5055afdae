package rebateapimodels

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"eia-backend/models"
	dbmodels "eia-backend/models/db"
)

const descriptionMinLen = 10

type SubmitData struct {
	Category    string `json:"category"`
	Building    string `json:"building"`
	SponsorID   string `json:"sponsor_id"`
	Description string `json:"description"`
}

func (d SubmitData) Validate() error {
	if d.Category == "" {
		return errors.New("category is required")
	}
	if d.Building == "" {
		return errors.New("building is required")
	}
	if _, err := d.GetSponsorID(); err != nil {
		return err
	}
	if d.Description != "" && len(d.Description) < descriptionMinLen {
		return errors.Errorf("description must be at least %v characters", descriptionMinLen)
	}
	return nil
}

// ValidateDraft is the relaxed check for save-as-draft.
func (d SubmitData) ValidateDraft() error {
	if d.Category == "" {
		return errors.New("category is required")
	}
	if d.SponsorID != "" {
		if _, err := d.GetSponsorID(); err != nil {
			return err
		}
	}
	return nil
}

func (d SubmitData) GetSponsorID() (int64, error) {
	if d.SponsorID == "" {
		return 0, errors.New("sponsor id is required")
	}
	id, err := strconv.ParseInt(d.SponsorID, 10, 64)
	if err != nil {
		return 0, errors.New("sponsor id must be an integer")
	}
	return id, nil
}

// AssistedSubmitData is the contractor-assisted submission: the department
// comes from the form, not from the token.
type AssistedSubmitData struct {
	SubmitData
	DepartmentID string `json:"department_id"`
}

func (d AssistedSubmitData) Validate() error {
	if err := d.SubmitData.Validate(); err != nil {
		return err
	}
	if _, err := d.GetDepartmentID(); err != nil {
		return err
	}
	return nil
}

func (d AssistedSubmitData) GetDepartmentID() (int64, error) {
	if d.DepartmentID == "" {
		return 0, errors.New("department id is required")
	}
	id, err := strconv.ParseInt(d.DepartmentID, 10, 64)
	if err != nil {
		return 0, errors.New("department id must be an integer")
	}
	return id, nil
}

type DecisionData struct {
	Action         models.DecisionAction `json:"action"`
	Notes          string                `json:"notes"`
	ApprovedAmount string                `json:"approved_amount"`
}

func (d DecisionData) Validate() error {
	switch d.Action {
	case models.DecisionApprove, models.DecisionReject, models.DecisionRequestRevision:
		return nil
	}
	return errors.New("unknown decision action")
}

// GetApprovedAmount parses the amount for an Approve decision. A reject or
// revision request carries a fixed zero amount.
func (d DecisionData) GetApprovedAmount() (float64, error) {
	if d.Action != models.DecisionApprove {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(d.ApprovedAmount, 64)
	if err != nil || amount <= 0 {
		return 0, errors.New("approval requires a valid approved amount")
	}
	return amount, nil
}

type StatusUpdateData struct {
	Status models.RebateStatus `json:"status"`
	Notes  string              `json:"notes"`
}

func (d StatusUpdateData) Validate() error {
	switch d.Status {
	case models.RebateStatusDraft, models.RebateStatusPending, models.RebateStatusApproved,
		models.RebateStatusRejected, models.RebateStatusRevisionRequested, models.RebateStatusDisbursed:
		return nil
	}
	return errors.New("unknown rebate status")
}

type DisburseData struct {
	Amount float64 `json:"amount"`
}

func (d DisburseData) Validate() error {
	if d.Amount <= 0 {
		return errors.New("disbursement requires a positive amount")
	}
	return nil
}

type RebateView struct {
	SopNumber      int64               `json:"sop_number"`
	Category       string              `json:"category"`
	Building       string              `json:"building"`
	Status         models.RebateStatus `json:"status"`
	SubmissionDate time.Time           `json:"submission_date"`
	DepartmentID   int64               `json:"department_id"`
	SponsorID      *int64              `json:"sponsor_id"`
	OfficeNotes    string              `json:"office_notes"`
}

func RebateConvert(rec dbmodels.Rebate) RebateView {
	return RebateView{
		SopNumber:      rec.SopNumber,
		Category:       rec.Category,
		Building:       rec.Building,
		Status:         rec.Status,
		SubmissionDate: rec.SubmissionDate,
		DepartmentID:   rec.DepartmentID,
		SponsorID:      rec.SponsorID,
		OfficeNotes:    rec.OfficeNotes,
	}
}

type RebateListItem struct {
	RebateView
	ApprovedAmount *float64   `json:"approved_amount"`
	PaymentDate    *time.Time `json:"payment_date"`
}

type RebateListView struct {
	Applications   []RebateListItem `json:"applications"`
	TotalCount     int              `json:"total_count"`
	TotalCommitted float64          `json:"total_committed"`
	Filter         string           `json:"filter"`
}

func RebateListConvert(recs []dbmodels.RebateWithApproval, filter models.ListStatusFilter) RebateListView {
	result := RebateListView{
		Applications: make([]RebateListItem, 0, len(recs)),
		Filter:       string(filter),
	}
	for _, rec := range recs {
		result.Applications = append(result.Applications, RebateListItem{
			RebateView:     RebateConvert(rec.Rebate),
			ApprovedAmount: rec.ApprovedAmount,
			PaymentDate:    rec.PaymentDate,
		})
		if rec.ApprovedAmount != nil {
			result.TotalCommitted += *rec.ApprovedAmount
		}
	}
	result.TotalCount = len(result.Applications)
	return result
}

// ReviewView is the single-application review form payload.
type ReviewView struct {
	RebateView
	ApprovedAmount *float64   `json:"approved_amount"`
	DecisionDate   *time.Time `json:"decision_date"`
}

// SponsorApprovalView is one row of the sponsor work queue. Rebates assigned
// to the sponsor but not yet decided carry nil approval fields.
type SponsorApprovalView struct {
	SopNumber      int64               `json:"sop_number"`
	SponsorID      *int64              `json:"sponsor_id"`
	Category       string              `json:"category"`
	Building       string              `json:"building"`
	Status         models.RebateStatus `json:"status"`
	ApprovedAmount *float64            `json:"approved_amount"`
	DisbursedDate  *time.Time          `json:"disbursed_date"`
	PaymentDate    *time.Time          `json:"payment_date"`
	OfficeNotes    string              `json:"office_notes"`
}
