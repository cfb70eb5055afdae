package applicantstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "eia-backend/models/db"
)

type Provider interface {
	GetByID(departmentID int64) (*dbmodels.Applicant, error)
	Create(rec dbmodels.Applicant) (int64, error)
	Update(departmentID int64, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(departmentID int64) (*dbmodels.Applicant, error) {
	rec := dbmodels.Applicant{DepartmentID: departmentID}
	err := i.db.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get applicant department")
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.Applicant) (int64, error) {
	err := i.db.Create(&rec).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to create applicant department")
	}
	return rec.DepartmentID, nil
}

func (i impl) Update(departmentID int64, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Applicant{DepartmentID: departmentID}).
		Updates(updMap).Error
	if err != nil {
		return errors.Wrap(err, "failed to update applicant department")
	}
	return nil
}
