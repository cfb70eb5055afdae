package notifyhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"eia-backend/db"
	applicantstore "eia-backend/lib/applicantdept/store"
	"eia-backend/lib/smtp"
	sponsorstore "eia-backend/lib/sponsor/store"
	"eia-backend/models"
	dbmodels "eia-backend/models/db"
)

// Provider sends best-effort lifecycle mails. Delivery failures are logged and
// never fail the triggering request.
type Provider interface {
	DecisionMade(rebate dbmodels.Rebate, action models.DecisionAction, amount float64)
	Disbursed(rebate dbmodels.Rebate, amount float64)
}

var Instance Provider

func NewHandler(from string) {
	Instance = impl{
		applicantStore: applicantstore.NewInstance(db.DB),
		sponsorStore:   sponsorstore.NewInstance(db.DB),
		from:           from,
	}
}

type impl struct {
	applicantStore applicantstore.Provider
	sponsorStore   sponsorstore.Provider
	from           string
}

func (i impl) DecisionMade(rebate dbmodels.Rebate, action models.DecisionAction, amount float64) {
	subject := fmt.Sprintf("Application %v: %v", rebate.SopNumber, action.Status())
	message := fmt.Sprintf("Energy incentive application %v (%v, %v) is now %v.",
		rebate.SopNumber, rebate.Category, rebate.Building, action.Status())
	if action == models.DecisionApprove {
		message += fmt.Sprintf(" Approved amount: %.2f.", amount)
		// sponsor has money to move now
		i.mailSponsor(rebate, subject, message+" The application awaits disbursement.")
	}
	i.mailApplicant(rebate, subject, message)
}

func (i impl) Disbursed(rebate dbmodels.Rebate, amount float64) {
	subject := fmt.Sprintf("Application %v: payment disbursed", rebate.SopNumber)
	message := fmt.Sprintf("Payment of %.2f for energy incentive application %v (%v, %v) has been disbursed.",
		amount, rebate.SopNumber, rebate.Category, rebate.Building)
	i.mailApplicant(rebate, subject, message)
}

func (i impl) mailApplicant(rebate dbmodels.Rebate, subject, message string) {
	applicant, err := i.applicantStore.GetByID(rebate.DepartmentID)
	if err != nil {
		log.WithError(err).Error("failed to resolve applicant for notification")
		return
	}
	if applicant == nil || applicant.Email == "" {
		return
	}
	if err := smtp.Instance.SendEMail(i.from, applicant.Email, message, subject); err != nil {
		log.WithError(err).Error("failed to send applicant notification")
	}
}

func (i impl) mailSponsor(rebate dbmodels.Rebate, subject, message string) {
	if rebate.SponsorID == nil {
		return
	}
	sponsor, err := i.sponsorStore.GetByID(*rebate.SponsorID)
	if err != nil {
		log.WithError(err).Error("failed to resolve sponsor for notification")
		return
	}
	if sponsor == nil || sponsor.Email == "" {
		return
	}
	if err := smtp.Instance.SendEMail(i.from, sponsor.Email, message, subject); err != nil {
		log.WithError(err).Error("failed to send sponsor notification")
	}
}
