package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "eia-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Reviewer{}); err != nil {
		return errors.Wrap(err, "failed to migrate Reviewer")
	}
	if err := DB.AutoMigrate(&dbmodels.Applicant{}); err != nil {
		return errors.Wrap(err, "failed to migrate Applicant")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationSponsor{}); err != nil {
		return errors.Wrap(err, "failed to migrate ApplicationSponsor")
	}
	if err := DB.AutoMigrate(&dbmodels.Rebate{}); err != nil {
		return errors.Wrap(err, "failed to migrate Rebate")
	}
	if err := DB.AutoMigrate(&dbmodels.RebateApproval{}); err != nil {
		return errors.Wrap(err, "failed to migrate RebateApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.Campaign{}); err != nil {
		return errors.Wrap(err, "failed to migrate Campaign")
	}
	log.Info("migrations finished")
	return nil
}
