package adminapimodels

import (
	"strconv"

	"github.com/pkg/errors"

	"eia-backend/models"
)

const passwordMinLen = 8

type SetPasswordData struct {
	Role        models.UserRole `json:"role"`
	PrincipalID string          `json:"principal_id"`
	NewPassword string          `json:"new_password"`
}

func (d SetPasswordData) Validate() error {
	switch d.Role {
	case models.ReviewerRole, models.SponsorRole, models.ApplicantRole:
	default:
		return errors.New("unknown principal role")
	}
	if _, err := d.GetPrincipalID(); err != nil {
		return err
	}
	if len(d.NewPassword) < passwordMinLen {
		return errors.Errorf("password must be at least %v characters", passwordMinLen)
	}
	return nil
}

func (d SetPasswordData) GetPrincipalID() (int64, error) {
	if d.PrincipalID == "" {
		return 0, errors.New("principal id is required")
	}
	id, err := strconv.ParseInt(d.PrincipalID, 10, 64)
	if err != nil {
		return 0, errors.New("principal id must be an integer")
	}
	return id, nil
}

// RegisterPrincipalData provisions a new account. Applicant departments sign
// in by numeric id, so the email is only mandatory for the other two roles.
type RegisterPrincipalData struct {
	Role     models.UserRole `json:"role"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
}

func (d RegisterPrincipalData) Validate() error {
	switch d.Role {
	case models.ReviewerRole, models.SponsorRole, models.ApplicantRole:
	default:
		return errors.New("unknown principal role")
	}
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.Email == "" && d.Role != models.ApplicantRole {
		return errors.New("email is required")
	}
	if len(d.Password) < passwordMinLen {
		return errors.Errorf("password must be at least %v characters", passwordMinLen)
	}
	return nil
}

type RegisterPrincipalView struct {
	PrincipalID int64           `json:"principal_id"`
	Role        models.UserRole `json:"role"`
}
