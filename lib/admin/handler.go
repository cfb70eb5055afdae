package adminhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"eia-backend/db"
	applicantstore "eia-backend/lib/applicantdept/store"
	reviewerstore "eia-backend/lib/reviewer/store"
	sponsorstore "eia-backend/lib/sponsor/store"
	authutils "eia-backend/lib/utils/auth-utils"
	"eia-backend/models"
	adminapimodels "eia-backend/models/api/admin"
	dbmodels "eia-backend/models/db"
)

type Provider interface {
	SetPassword(data adminapimodels.SetPasswordData) (hMsg string, err error)
	RegisterPrincipal(data adminapimodels.RegisterPrincipalData) (id int64, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		reviewers:  reviewerstore.NewInstance(db.DB),
		sponsors:   sponsorstore.NewInstance(db.DB),
		applicants: applicantstore.NewInstance(db.DB),
	}
}

type impl struct {
	reviewers  reviewerstore.Provider
	sponsors   sponsorstore.Provider
	applicants applicantstore.Provider
}

// SetPassword replaces a principal's credential with a bcrypt hash. Plaintext
// never reaches the database.
func (i impl) SetPassword(data adminapimodels.SetPasswordData) (string, error) {
	principalID, err := data.GetPrincipalID()
	if err != nil {
		return err.Error(), nil
	}
	logger := log.
		WithField("role", data.Role).
		WithField("principal_id", principalID)

	hash, err := authutils.HashPassword(data.NewPassword)
	if err != nil {
		logger.WithError(err).Error("failed to hash password")
		return "", err
	}
	updMap := map[string]interface{}{"PasswordHash": hash}

	switch data.Role {
	case models.ReviewerRole:
		rec, err := i.reviewers.GetByID(principalID)
		if err != nil {
			logger.WithError(err).Error("failed to load reviewer")
			return "", err
		}
		if rec == nil {
			return i.notFound(data.Role, principalID), nil
		}
		err = i.reviewers.Update(principalID, updMap)
		if err != nil {
			logger.WithError(err).Error("failed to update reviewer password")
			return "", err
		}
	case models.SponsorRole:
		rec, err := i.sponsors.GetByID(principalID)
		if err != nil {
			logger.WithError(err).Error("failed to load sponsor")
			return "", err
		}
		if rec == nil {
			return i.notFound(data.Role, principalID), nil
		}
		err = i.sponsors.Update(principalID, updMap)
		if err != nil {
			logger.WithError(err).Error("failed to update sponsor password")
			return "", err
		}
	case models.ApplicantRole:
		rec, err := i.applicants.GetByID(principalID)
		if err != nil {
			logger.WithError(err).Error("failed to load applicant department")
			return "", err
		}
		if rec == nil {
			return i.notFound(data.Role, principalID), nil
		}
		err = i.applicants.Update(principalID, updMap)
		if err != nil {
			logger.WithError(err).Error("failed to update applicant password")
			return "", err
		}
	default:
		return "unknown principal role", nil
	}

	logger.Info("password reset")
	return "", nil
}

// RegisterPrincipal creates a new account with a hashed credential and
// returns its generated id.
func (i impl) RegisterPrincipal(data adminapimodels.RegisterPrincipalData) (int64, string, error) {
	hash, err := authutils.HashPassword(data.Password)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		return 0, "", err
	}

	var id int64
	switch data.Role {
	case models.ReviewerRole:
		id, err = i.reviewers.Create(dbmodels.Reviewer{
			EmployeeName: data.Name,
			Email:        data.Email,
			PasswordHash: hash,
		})
	case models.SponsorRole:
		id, err = i.sponsors.Create(dbmodels.ApplicationSponsor{
			SponsorName:  data.Name,
			Email:        data.Email,
			PasswordHash: hash,
		})
	case models.ApplicantRole:
		id, err = i.applicants.Create(dbmodels.Applicant{
			DepartmentName: data.Name,
			Email:          data.Email,
			PasswordHash:   hash,
		})
	default:
		return 0, "unknown principal role", nil
	}
	if err != nil {
		log.WithField("role", data.Role).WithError(err).Error("failed to create principal")
		return 0, "", err
	}

	log.
		WithField("role", data.Role).
		WithField("principal_id", id).
		Info("principal registered")
	return id, "", nil
}

func (i impl) notFound(role models.UserRole, principalID int64) string {
	return fmt.Sprintf("%v %v not found", role.ToHuman(), principalID)
}
