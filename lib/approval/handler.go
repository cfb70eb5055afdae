package approvalhandler

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eia-backend/db"
	approvalstore "eia-backend/lib/approval/store"
	pdfexport "eia-backend/lib/export/pdf"
	notifyhandler "eia-backend/lib/notify"
	rebatestore "eia-backend/lib/rebate/store"
	"eia-backend/models"
	rebateapimodels "eia-backend/models/api/rebate"
	dbmodels "eia-backend/models/db"
)

var ErrNotFound = errors.New("application not found")

type Provider interface {
	Sync() (backfilled int64, err error)
	Disburse(sponsorID, sopNumber int64, amount float64) (hMsg string, err error)
	ListForSponsor(sponsorID int64, filter models.SponsorFilter) ([]rebateapimodels.SponsorApprovalView, error)
	Receipt(sponsorID, sopNumber int64) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler(unitRate float64) {
	Instance = impl{
		store:       approvalstore.NewInstance(db.DB),
		rebateStore: rebatestore.NewInstance(db.DB),
		notify:      notifyhandler.Instance,
		unitRate:    unitRate,
	}
}

type impl struct {
	store       approvalstore.Provider
	rebateStore rebatestore.Provider
	notify      notifyhandler.Provider
	unitRate    float64
}

// Sync backfills an approval record for every approved rebate that lacks one.
// It is safe on every page load and under concurrent calls: the insert skips
// sop numbers already present, so two racing syncs cannot double-insert.
func (i impl) Sync() (int64, error) {
	missing, err := i.store.FindApprovedWithoutApproval()
	if err != nil {
		log.WithError(err).Error("approval sync failed")
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}
	recs := make([]dbmodels.RebateApproval, 0, len(missing))
	for _, rebate := range missing {
		count := rebate.NumOfApplications
		if count < 1 {
			count = 1
		}
		submissionDate := rebate.SubmissionDate
		recs = append(recs, dbmodels.RebateApproval{
			SopNumber:      rebate.SopNumber,
			SponsorID:      rebate.SponsorID,
			ApprovedAmount: float64(count) * i.unitRate,
			StartDate:      &submissionDate,
			DisbursedDate:  &submissionDate,
			PaymentDate:    &submissionDate,
		})
	}
	backfilled, err := i.store.InsertMissing(recs)
	if err != nil {
		log.WithError(err).Error("approval sync failed")
		return 0, err
	}
	if backfilled > 0 {
		log.WithField("backfilled", backfilled).Info("approval records backfilled")
	}
	return backfilled, nil
}

// Disburse finalizes the amount and marks the rebate paid. Re-running with the
// same amount is a last-write-wins update, not an append.
func (i impl) Disburse(sponsorID, sopNumber int64, amount float64) (string, error) {
	logger := log.
		WithField("sponsor_id", sponsorID).
		WithField("sop_number", sopNumber)
	rebate, err := i.rebateStore.GetByID(sopNumber)
	if err != nil {
		logger.WithError(err).Error("failed to load application for disbursement")
		return "", err
	}
	if rebate == nil {
		return "", ErrNotFound
	}
	if rebate.SponsorID == nil || *rebate.SponsorID != sponsorID {
		return "application is not assigned to this sponsor", nil
	}

	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalstore.NewInstance(tx)
		rebStore := rebatestore.NewInstance(tx)
		existing, err := store.GetBySop(sopNumber)
		if err != nil {
			return err
		}
		if existing == nil {
			err = store.Create(dbmodels.RebateApproval{
				SopNumber:      sopNumber,
				SponsorID:      rebate.SponsorID,
				ApprovedAmount: amount,
				StartDate:      &now,
				DisbursedDate:  &now,
				PaymentDate:    &now,
			})
		} else {
			err = store.Update(sopNumber, map[string]interface{}{
				"ApprovedAmount": amount,
				"DisbursedDate":  now,
				"PaymentDate":    now,
			})
		}
		if err != nil {
			return err
		}
		return rebStore.Update(sopNumber, map[string]interface{}{
			"Status": models.RebateStatusDisbursed,
		})
	})
	if err != nil {
		logger.WithError(err).Error("failed to disburse payment")
		return "", err
	}
	logger.WithField("amount", amount).Info("payment disbursed")

	i.notify.Disbursed(*rebate, amount)
	return "", nil
}

func (i impl) ListForSponsor(sponsorID int64, filter models.SponsorFilter) ([]rebateapimodels.SponsorApprovalView, error) {
	// catch up on any approved rebates the decision flow missed
	if _, err := i.Sync(); err != nil {
		return nil, err
	}
	return i.store.ListForSponsor(sponsorID, filter)
}

func (i impl) Receipt(sponsorID, sopNumber int64) (*bytes.Buffer, error) {
	rebate, err := i.rebateStore.GetByID(sopNumber)
	if err != nil {
		return nil, err
	}
	if rebate == nil {
		return nil, ErrNotFound
	}
	if rebate.SponsorID == nil || *rebate.SponsorID != sponsorID {
		return nil, errors.New("application is not assigned to this sponsor")
	}
	approval, err := i.store.GetBySop(sopNumber)
	if err != nil {
		return nil, err
	}
	if approval == nil || approval.PaymentDate == nil {
		return nil, errors.New("application has not been disbursed")
	}
	return pdfexport.GenerateReceipt(*rebate, *approval)
}
