package rebatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"eia-backend/models"
	dbmodels "eia-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Rebate) (int64, error)
	GetByID(sopNumber int64) (*dbmodels.Rebate, error)
	Update(sopNumber int64, updMap map[string]interface{}) error
	DeleteDraft(sopNumber, departmentID int64) (rowsAffected int64, err error)
	ResubmitRevision(sopNumber, departmentID int64) (rowsAffected int64, err error)
	ListByDepartment(departmentID int64, limit int) ([]dbmodels.Rebate, error)
	ListWithApproval(filter models.ListStatusFilter) ([]dbmodels.RebateWithApproval, error)
	Recent(limit int) ([]dbmodels.Rebate, error)
	StatusCounts() (map[models.RebateStatus]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Rebate) (int64, error) {
	err := i.db.Create(&rec).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to create rebate")
	}
	return rec.SopNumber, nil
}

func (i impl) GetByID(sopNumber int64) (*dbmodels.Rebate, error) {
	rec := dbmodels.Rebate{SopNumber: sopNumber}
	err := i.db.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get rebate")
	}
	return &rec, nil
}

func (i impl) Update(sopNumber int64, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Rebate{SopNumber: sopNumber}).
		Updates(updMap).Error
	if err != nil {
		return errors.Wrap(err, "failed to update rebate")
	}
	return nil
}

// DeleteDraft removes a draft owned by the given department. Anything that is
// no longer a draft, or belongs to another department, is left untouched.
func (i impl) DeleteDraft(sopNumber, departmentID int64) (int64, error) {
	tx := i.db.
		Where("sop_number = ? AND status = ? AND department_id = ?",
			sopNumber, models.RebateStatusDraft, departmentID).
		Delete(&dbmodels.Rebate{})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "failed to delete draft")
	}
	return tx.RowsAffected, nil
}

// ResubmitRevision moves an owner's Revision Requested rebate back to Pending.
func (i impl) ResubmitRevision(sopNumber, departmentID int64) (int64, error) {
	tx := i.db.
		Model(&dbmodels.Rebate{}).
		Where("sop_number = ? AND status = ? AND department_id = ?",
			sopNumber, models.RebateStatusRevisionRequested, departmentID).
		Update("status", models.RebateStatusPending)
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "failed to resubmit rebate")
	}
	return tx.RowsAffected, nil
}

func (i impl) ListByDepartment(departmentID int64, limit int) ([]dbmodels.Rebate, error) {
	var result []dbmodels.Rebate
	err := i.db.
		Where("department_id = ?", departmentID).
		Order("submission_date DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list department applications")
	}
	return result, nil
}

func (i impl) ListWithApproval(filter models.ListStatusFilter) ([]dbmodels.RebateWithApproval, error) {
	var result []dbmodels.RebateWithApproval
	tx := i.db.
		Model(&dbmodels.Rebate{}).
		Select("rebates.*, ra.approved_amount, ra.payment_date").
		Joins("LEFT JOIN rebate_approvals ra ON ra.sop_number = rebates.sop_number")

	switch filter {
	case models.ListFilterDisbursed:
		tx.Where("rebates.status = ? OR ra.payment_date IS NOT NULL", models.RebateStatusDisbursed)
	case models.ListFilterPendingDisbursement:
		tx.Where("rebates.status = ? AND ra.payment_date IS NULL", models.RebateStatusApproved)
	case models.ListFilterRejected:
		tx.Where("rebates.status = ?", models.RebateStatusRejected)
	case models.ListFilterPending:
		tx.Where("rebates.status IN ?", []models.RebateStatus{models.RebateStatusPending, models.RebateStatusRevisionRequested})
	}

	err := tx.
		Order("rebates.sop_number DESC").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return result, nil
}

func (i impl) Recent(limit int) ([]dbmodels.Rebate, error) {
	var result []dbmodels.Rebate
	err := i.db.
		Order("submission_date DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent applications")
	}
	return result, nil
}

func (i impl) StatusCounts() (map[models.RebateStatus]int64, error) {
	var rows []struct {
		Status models.RebateStatus
		Cnt    int64
	}
	err := i.db.
		Model(&dbmodels.Rebate{}).
		Select("status, count(*) as cnt").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count applications by status")
	}
	result := make(map[models.RebateStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Cnt
	}
	return result, nil
}
