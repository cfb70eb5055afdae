package approvalstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eia-backend/models"
	rebateapimodels "eia-backend/models/api/rebate"
	dbmodels "eia-backend/models/db"
)

type Provider interface {
	GetBySop(sopNumber int64) (*dbmodels.RebateApproval, error)
	Create(rec dbmodels.RebateApproval) error
	Upsert(rec dbmodels.RebateApproval) error
	Update(sopNumber int64, updMap map[string]interface{}) error
	InsertMissing(recs []dbmodels.RebateApproval) (int64, error)
	FindApprovedWithoutApproval() ([]dbmodels.Rebate, error)
	ListForSponsor(sponsorID int64, filter models.SponsorFilter) ([]rebateapimodels.SponsorApprovalView, error)
	Count() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetBySop(sopNumber int64) (*dbmodels.RebateApproval, error) {
	rec := dbmodels.RebateApproval{}
	err := i.db.
		Where("sop_number = ?", sopNumber).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get approval record")
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.RebateApproval) error {
	err := i.db.Create(&rec).Error
	if err != nil {
		return errors.Wrap(err, "failed to create approval record")
	}
	return nil
}

// Upsert writes the approval record keyed on sop_number, last write wins.
func (i impl) Upsert(rec dbmodels.RebateApproval) error {
	err := i.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sop_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"reviewer_id", "sponsor_id", "approved_amount",
				"start_date", "disbursed_date", "payment_date", "office_notes",
			}),
		}).
		Create(&rec).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert approval record")
	}
	return nil
}

func (i impl) Update(sopNumber int64, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.RebateApproval{}).
		Where("sop_number = ?", sopNumber).
		Updates(updMap).Error
	if err != nil {
		return errors.Wrap(err, "failed to update approval record")
	}
	return nil
}

// InsertMissing backfills approval rows, silently skipping sop numbers that
// already have one. The unique index makes this safe under concurrent syncs.
func (i impl) InsertMissing(recs []dbmodels.RebateApproval) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	tx := i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sop_number"}},
			DoNothing: true,
		}).
		Create(&recs)
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "failed to backfill approval records")
	}
	return tx.RowsAffected, nil
}

func (i impl) FindApprovedWithoutApproval() ([]dbmodels.Rebate, error) {
	var result []dbmodels.Rebate
	err := i.db.
		Model(&dbmodels.Rebate{}).
		Select("rebates.*").
		Joins("LEFT JOIN rebate_approvals ra ON ra.sop_number = rebates.sop_number").
		Where("rebates.status = ? AND ra.sop_number IS NULL", models.RebateStatusApproved).
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find approved rebates without approval record")
	}
	return result, nil
}

// ListForSponsor drives the sponsor view from the rebates side, so assigned
// rebates without an approval record still show up as pending.
func (i impl) ListForSponsor(sponsorID int64, filter models.SponsorFilter) ([]rebateapimodels.SponsorApprovalView, error) {
	var result []rebateapimodels.SponsorApprovalView
	tx := i.db.
		Model(&dbmodels.Rebate{}).
		Select("rebates.sop_number, rebates.sponsor_id, rebates.category, rebates.building, rebates.status, "+
			"ra.approved_amount, ra.disbursed_date, ra.payment_date, ra.office_notes").
		Joins("LEFT JOIN rebate_approvals ra ON ra.sop_number = rebates.sop_number").
		Where("rebates.sponsor_id = ?", sponsorID)
	switch filter {
	case models.SponsorFilterPending:
		tx.Where("ra.payment_date IS NULL")
	case models.SponsorFilterApproved:
		tx.Where("ra.payment_date IS NOT NULL")
	}
	err := tx.
		Order("rebates.sop_number DESC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sponsor approvals")
	}
	return result, nil
}

func (i impl) Count() (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.RebateApproval{}).
		Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count approval records")
	}
	return rowCount, nil
}
