package sponsorstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "eia-backend/models/db"
)

type Provider interface {
	FindByEmail(email string) (*dbmodels.ApplicationSponsor, error)
	GetByID(id int64) (*dbmodels.ApplicationSponsor, error)
	Create(rec dbmodels.ApplicationSponsor) (int64, error)
	Update(id int64, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) FindByEmail(email string) (*dbmodels.ApplicationSponsor, error) {
	rec := dbmodels.ApplicationSponsor{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find sponsor by email")
	}
	return &rec, nil
}

func (i impl) GetByID(id int64) (*dbmodels.ApplicationSponsor, error) {
	rec := dbmodels.ApplicationSponsor{SponsorID: id}
	err := i.db.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get sponsor")
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.ApplicationSponsor) (int64, error) {
	err := i.db.Create(&rec).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to create sponsor")
	}
	return rec.SponsorID, nil
}

func (i impl) Update(id int64, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.ApplicationSponsor{SponsorID: id}).
		Updates(updMap).Error
	if err != nil {
		return errors.Wrap(err, "failed to update sponsor")
	}
	return nil
}
