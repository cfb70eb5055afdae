package authapimodels

import (
	"github.com/pkg/errors"
)

type LoginRequest struct {
	Login    string `json:"login"`    // reviewer/sponsor email or numeric department id
	Password string `json:"password"` // credential
}

func (r LoginRequest) Validate() error {
	if r.Login == "" {
		return errors.New("login is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type MeResponse struct {
	PrincipalID int64  `json:"principal_id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}
