package authhandler

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"eia-backend/db"
	applicantstore "eia-backend/lib/applicantdept/store"
	reviewerstore "eia-backend/lib/reviewer/store"
	sponsorstore "eia-backend/lib/sponsor/store"
	authutils "eia-backend/lib/utils/auth-utils"
	"eia-backend/models"
	authapimodels "eia-backend/models/api/auth"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

type Provider interface {
	Login(login, password string) (response authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		reviewerStore:  reviewerstore.NewInstance(db.DB),
		sponsorStore:   sponsorstore.NewInstance(db.DB),
		applicantStore: applicantstore.NewInstance(db.DB),
	}
}

type impl struct {
	reviewerStore  reviewerstore.Provider
	sponsorStore   sponsorstore.Provider
	applicantStore applicantstore.Provider
}

// Login resolves the credential against the reviewer, sponsor and applicant
// tables in that order. Email-shaped logins hit the email-keyed tables,
// numeric logins the department table.
func (i impl) Login(login, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("login", login)
	if strings.Contains(login, "@") {
		reviewer, err := i.reviewerStore.FindByEmail(login)
		if err != nil {
			logger.WithError(err).Error("failed to look up reviewer")
			return authapimodels.JWTResponse{}, err
		}
		if reviewer != nil && authutils.CheckPassword(reviewer.PasswordHash, password) {
			i.touchLastLogin(models.ReviewerRole, reviewer.EmployeeID)
			return i.issueToken(reviewer.EmployeeID, reviewer.EmployeeName, models.ReviewerRole)
		}

		sponsor, err := i.sponsorStore.FindByEmail(login)
		if err != nil {
			logger.WithError(err).Error("failed to look up sponsor")
			return authapimodels.JWTResponse{}, err
		}
		if sponsor != nil && authutils.CheckPassword(sponsor.PasswordHash, password) {
			i.touchLastLogin(models.SponsorRole, sponsor.SponsorID)
			return i.issueToken(sponsor.SponsorID, sponsor.SponsorName, models.SponsorRole)
		}

		logger.Debug("no email principal matched the credential")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}

	departmentID, err := strconv.ParseInt(login, 10, 64)
	if err != nil {
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	applicant, err := i.applicantStore.GetByID(departmentID)
	if err != nil {
		logger.WithError(err).Error("failed to look up applicant department")
		return authapimodels.JWTResponse{}, err
	}
	if applicant != nil && authutils.CheckPassword(applicant.PasswordHash, password) {
		i.touchLastLogin(models.ApplicantRole, applicant.DepartmentID)
		return i.issueToken(applicant.DepartmentID, applicant.DepartmentName, models.ApplicantRole)
	}
	logger.Debug("no department matched the credential")
	return authapimodels.JWTResponse{}, ErrInvalidCredentials
}

func (i impl) issueToken(principalID int64, name string, role models.UserRole) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(principalID, name, role)
	if err != nil {
		log.WithError(err).Error("failed to sign JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token: token,
		Role:  string(role),
		Name:  name,
	}, nil
}

func (i impl) touchLastLogin(role models.UserRole, id int64) {
	updMap := map[string]interface{}{"LastLogin": time.Now()}
	var err error
	switch role {
	case models.ReviewerRole:
		err = i.reviewerStore.Update(id, updMap)
	case models.SponsorRole:
		err = i.sponsorStore.Update(id, updMap)
	case models.ApplicantRole:
		err = i.applicantStore.Update(id, updMap)
	}
	if err != nil {
		log.WithError(err).Error("failed to update last login date")
	}
}
