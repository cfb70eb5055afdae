package rebatehandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eia-backend/db"
	approvalstore "eia-backend/lib/approval/store"
	notifyhandler "eia-backend/lib/notify"
	rebatestore "eia-backend/lib/rebate/store"
	"eia-backend/models"
	rebateapimodels "eia-backend/models/api/rebate"
	dbmodels "eia-backend/models/db"
)

var ErrNotFound = errors.New("application not found")

type Provider interface {
	Submit(departmentID int64, data rebateapimodels.SubmitData) (sopNumber int64, err error)
	SubmitAssisted(data rebateapimodels.AssistedSubmitData) (sopNumber int64, err error)
	SaveDraft(departmentID int64, data rebateapimodels.SubmitData) (sopNumber int64, err error)
	DeleteDraft(departmentID, sopNumber int64) (hMsg string, err error)
	Resubmit(departmentID, sopNumber int64) (hMsg string, err error)
	ListByDepartment(departmentID int64) ([]rebateapimodels.RebateView, error)
	ListAll(filter models.ListStatusFilter) (rebateapimodels.RebateListView, error)
	GetReview(sopNumber int64) (rebateapimodels.ReviewView, error)
	Decision(sopNumber, reviewerID int64, data rebateapimodels.DecisionData) (hMsg string, err error)
	UpdateStatus(sopNumber int64, data rebateapimodels.StatusUpdateData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         rebatestore.NewInstance(db.DB),
		approvalStore: approvalstore.NewInstance(db.DB),
		notify:        notifyhandler.Instance,
	}
}

type impl struct {
	store         rebatestore.Provider
	approvalStore approvalstore.Provider
	notify        notifyhandler.Provider
}

const departmentListLimit = 10

func (i impl) Submit(departmentID int64, data rebateapimodels.SubmitData) (int64, error) {
	return i.create(departmentID, data, models.RebateStatusPending)
}

func (i impl) SubmitAssisted(data rebateapimodels.AssistedSubmitData) (int64, error) {
	departmentID, err := data.GetDepartmentID()
	if err != nil {
		return 0, err
	}
	return i.create(departmentID, data.SubmitData, models.RebateStatusPending)
}

func (i impl) SaveDraft(departmentID int64, data rebateapimodels.SubmitData) (int64, error) {
	return i.create(departmentID, data, models.RebateStatusDraft)
}

func (i impl) create(departmentID int64, data rebateapimodels.SubmitData, status models.RebateStatus) (int64, error) {
	logger := log.WithField("department_id", departmentID)
	rec := dbmodels.Rebate{
		Category:          data.Category,
		Building:          data.Building,
		Status:            status,
		SubmissionDate:    time.Now(),
		DepartmentID:      departmentID,
		NumOfApplications: 1,
		OfficeNotes:       data.Description,
	}
	if data.SponsorID != "" {
		sponsorID, err := data.GetSponsorID()
		if err != nil {
			return 0, err
		}
		rec.SponsorID = &sponsorID
	}
	sopNumber, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create application")
		return 0, err
	}
	logger.
		WithField("sop_number", sopNumber).
		WithField("status", status).
		Info("application created")
	return sopNumber, nil
}

func (i impl) DeleteDraft(departmentID, sopNumber int64) (string, error) {
	logger := log.
		WithField("department_id", departmentID).
		WithField("sop_number", sopNumber)
	rowsAffected, err := i.store.DeleteDraft(sopNumber, departmentID)
	if err != nil {
		logger.WithError(err).Error("failed to delete draft")
		return "", err
	}
	if rowsAffected == 0 {
		return "application is no longer a draft or belongs to another department", nil
	}
	logger.Info("draft deleted")
	return "", nil
}

func (i impl) Resubmit(departmentID, sopNumber int64) (string, error) {
	logger := log.
		WithField("department_id", departmentID).
		WithField("sop_number", sopNumber)
	rowsAffected, err := i.store.ResubmitRevision(sopNumber, departmentID)
	if err != nil {
		logger.WithError(err).Error("failed to resubmit application")
		return "", err
	}
	if rowsAffected == 0 {
		return "application is not awaiting revision or belongs to another department", nil
	}
	logger.Info("application resubmitted")
	return "", nil
}

func (i impl) ListByDepartment(departmentID int64) ([]rebateapimodels.RebateView, error) {
	recs, err := i.store.ListByDepartment(departmentID, departmentListLimit)
	if err != nil {
		return nil, err
	}
	result := make([]rebateapimodels.RebateView, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rebateapimodels.RebateConvert(rec))
	}
	return result, nil
}

func (i impl) ListAll(filter models.ListStatusFilter) (rebateapimodels.RebateListView, error) {
	recs, err := i.store.ListWithApproval(filter)
	if err != nil {
		return rebateapimodels.RebateListView{}, err
	}
	return rebateapimodels.RebateListConvert(recs, filter), nil
}

func (i impl) GetReview(sopNumber int64) (rebateapimodels.ReviewView, error) {
	rec, err := i.store.GetByID(sopNumber)
	if err != nil {
		return rebateapimodels.ReviewView{}, err
	}
	if rec == nil {
		return rebateapimodels.ReviewView{}, ErrNotFound
	}
	view := rebateapimodels.ReviewView{
		RebateView: rebateapimodels.RebateConvert(*rec),
	}
	approval, err := i.approvalStore.GetBySop(sopNumber)
	if err != nil {
		return rebateapimodels.ReviewView{}, err
	}
	if approval != nil {
		view.ApprovedAmount = &approval.ApprovedAmount
		view.DecisionDate = approval.StartDate
	}
	return view, nil
}

// Decision applies the reviewer's verdict. An approve with an unusable amount
// aborts before any write, leaving both tables untouched.
func (i impl) Decision(sopNumber, reviewerID int64, data rebateapimodels.DecisionData) (string, error) {
	logger := log.
		WithField("sop_number", sopNumber).
		WithField("reviewer_id", reviewerID).
		WithField("action", data.Action)

	amount, err := data.GetApprovedAmount()
	if err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(sopNumber)
	if err != nil {
		logger.WithError(err).Error("failed to load application for decision")
		return "", err
	}
	if rec == nil {
		return "", ErrNotFound
	}
	if !rec.Status.IsOpen() {
		return "a decision cannot be recorded for a disbursed application", nil
	}

	newStatus := data.Action.Status()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := rebatestore.NewInstance(tx)
		approvalStore := approvalstore.NewInstance(tx)
		err := store.Update(sopNumber, map[string]interface{}{
			"Status":      newStatus,
			"OfficeNotes": data.Notes,
		})
		if err != nil {
			return err
		}
		if data.Action != models.DecisionApprove {
			return nil
		}
		startDate := time.Now()
		return approvalStore.Upsert(dbmodels.RebateApproval{
			SopNumber:      sopNumber,
			ReviewerID:     &reviewerID,
			SponsorID:      rec.SponsorID,
			ApprovedAmount: amount,
			StartDate:      &startDate,
			OfficeNotes:    "Application approved: " + data.Notes,
		})
	})
	if err != nil {
		logger.WithError(err).Error("failed to process decision")
		return "", err
	}
	logger.WithField("amount", amount).Info("decision processed")

	i.notify.DecisionMade(*rec, data.Action, amount)
	return "", nil
}

func (i impl) UpdateStatus(sopNumber int64, data rebateapimodels.StatusUpdateData) error {
	rec, err := i.store.GetByID(sopNumber)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	err = i.store.Update(sopNumber, map[string]interface{}{
		"Status":      data.Status,
		"OfficeNotes": data.Notes,
	})
	if err != nil {
		log.
			WithField("sop_number", sopNumber).
			WithError(err).
			Error("failed to update application status")
		return err
	}
	log.
		WithField("sop_number", sopNumber).
		WithField("status", data.Status).
		Info("application status updated")
	return nil
}
