package reportstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"eia-backend/models"
	reportapimodels "eia-backend/models/api/report"
	dbmodels "eia-backend/models/db"
)

type Provider interface {
	ListPending() ([]dbmodels.Rebate, error)
	HighValue(minAmount float64) ([]reportapimodels.HighValueRow, error)
	CampaignRollup() ([]reportapimodels.CampaignMetrics, error)
	PaymentLedger(from, toExclusive time.Time) ([]reportapimodels.PaymentRow, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ListPending() ([]dbmodels.Rebate, error) {
	var result []dbmodels.Rebate
	err := i.db.
		Where("status = ?", models.RebateStatusPending).
		Order("submission_date ASC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending applications")
	}
	return result, nil
}

func (i impl) HighValue(minAmount float64) ([]reportapimodels.HighValueRow, error) {
	var result []reportapimodels.HighValueRow
	err := i.db.
		Model(&dbmodels.RebateApproval{}).
		Select("rebate_approvals.sop_number, r.category, r.department_id, rebate_approvals.approved_amount, rebate_approvals.start_date").
		Joins("JOIN rebates r ON r.sop_number = rebate_approvals.sop_number").
		Where("rebate_approvals.approved_amount >= ?", minAmount).
		Order("rebate_approvals.approved_amount DESC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to build high-value audit")
	}
	return result, nil
}

func (i impl) CampaignRollup() ([]reportapimodels.CampaignMetrics, error) {
	var result []reportapimodels.CampaignMetrics
	err := i.db.
		Model(&dbmodels.Campaign{}).
		Select("campaigns.campaign_name, campaigns.category, "+
			"count(r.sop_number) as total_applications, "+
			"COALESCE(SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END), 0) as approved_applications, "+
			"COALESCE(SUM(ra.approved_amount), 0) as total_approved_rebates",
			models.RebateStatusApproved).
		Joins("LEFT JOIN rebates r ON r.category = campaigns.category").
		Joins("LEFT JOIN rebate_approvals ra ON ra.sop_number = r.sop_number").
		Group("campaigns.campaign_id, campaigns.campaign_name, campaigns.category, campaigns.campaign_date").
		Order("campaigns.campaign_date DESC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to build campaign rollup")
	}
	return result, nil
}

func (i impl) PaymentLedger(from, toExclusive time.Time) ([]reportapimodels.PaymentRow, error) {
	var result []reportapimodels.PaymentRow
	err := i.db.
		Model(&dbmodels.Rebate{}).
		Select("rebates.sop_number, rebates.department_id, rebates.category, rebates.status, "+
			"ra.payment_date, COALESCE(ra.approved_amount, 0) as approved_amount").
		Joins("LEFT JOIN rebate_approvals ra ON ra.sop_number = rebates.sop_number").
		Where("rebates.status IN ?", []models.RebateStatus{models.RebateStatusApproved, models.RebateStatusDisbursed}).
		Where("(ra.payment_date >= ? AND ra.payment_date < ?) OR ra.payment_date IS NULL", from, toExclusive).
		Order("ra.payment_date DESC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to build payment ledger")
	}
	return result, nil
}
