package adminhandler

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eia-backend/config"
	"eia-backend/db"
	authhandler "eia-backend/lib/auth"
	"eia-backend/models"
	adminapimodels "eia-backend/models/api/admin"
	dbmodels "eia-backend/models/db"
)

func setupTest(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.Nil(t, err)
	err = gdb.AutoMigrate(&dbmodels.Reviewer{}, &dbmodels.Applicant{}, &dbmodels.ApplicationSponsor{})
	require.Nil(t, err)
	db.DB = gdb

	authhandler.NewHandler()
	NewHandler()
}

func TestSetPassword(t *testing.T) {
	t.Run(`a reset credential signs the department in`, func(t *testing.T) {
		setupTest(t)
		dept := dbmodels.Applicant{DepartmentName: "Facilities"}
		require.Nil(t, db.DB.Create(&dept).Error)

		hMsg, err := Instance.SetPassword(adminapimodels.SetPasswordData{
			Role:        models.ApplicantRole,
			PrincipalID: "1",
			NewPassword: "winter-heating",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)

		stored := dbmodels.Applicant{DepartmentID: dept.DepartmentID}
		require.Nil(t, db.DB.First(&stored).Error)
		require.NotEqual(t, "winter-heating", stored.PasswordHash)

		resp, err := authhandler.Instance.Login("1", "winter-heating")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
	})

	t.Run(`the old credential stops working after a reset`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.Reviewer{
			EmployeeName: "Dana Whitfield",
			Email:        "dana@contractor.example",
		}).Error)

		hMsg, err := Instance.SetPassword(adminapimodels.SetPasswordData{
			Role:        models.ReviewerRole,
			PrincipalID: "1",
			NewPassword: "first-secret",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)

		hMsg, err = Instance.SetPassword(adminapimodels.SetPasswordData{
			Role:        models.ReviewerRole,
			PrincipalID: "1",
			NewPassword: "second-secret",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)

		_, err = authhandler.Instance.Login("dana@contractor.example", "first-secret")
		require.ErrorIs(t, err, authhandler.ErrInvalidCredentials)

		resp, err := authhandler.Instance.Login("dana@contractor.example", "second-secret")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
	})

	t.Run(`an unknown principal is reported by role`, func(t *testing.T) {
		setupTest(t)
		hMsg, err := Instance.SetPassword(adminapimodels.SetPasswordData{
			Role:        models.SponsorRole,
			PrincipalID: "42",
			NewPassword: "some-password",
		})
		require.Nil(t, err)
		require.Equal(t, "Sponsor 42 not found", hMsg)
	})
}

func TestRegisterPrincipal(t *testing.T) {
	t.Run(`a registered sponsor can sign in at once`, func(t *testing.T) {
		setupTest(t)
		id, hMsg, err := Instance.RegisterPrincipal(adminapimodels.RegisterPrincipalData{
			Role:     models.SponsorRole,
			Name:     "Campus Energy Fund",
			Email:    "fund@sponsor.example",
			Password: "solar-panels",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Greater(t, id, int64(0))

		resp, err := authhandler.Instance.Login("fund@sponsor.example", "solar-panels")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, string(models.SponsorRole), resp.Role)
	})

	t.Run(`a registered department signs in by its new id`, func(t *testing.T) {
		setupTest(t)
		id, hMsg, err := Instance.RegisterPrincipal(adminapimodels.RegisterPrincipalData{
			Role:     models.ApplicantRole,
			Name:     "Grounds and Maintenance",
			Password: "mower-shed-9",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)

		resp, err := authhandler.Instance.Login("1", "mower-shed-9")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, id, int64(1))
	})
}

func TestValidation(t *testing.T) {
	t.Run(`short passwords are rejected`, func(t *testing.T) {
		err := adminapimodels.SetPasswordData{
			Role:        models.ReviewerRole,
			PrincipalID: "1",
			NewPassword: "short",
		}.Validate()
		require.NotNil(t, err)
	})

	t.Run(`unknown roles are rejected`, func(t *testing.T) {
		err := adminapimodels.SetPasswordData{
			Role:        "JANITOR",
			PrincipalID: "1",
			NewPassword: "long-enough-pass",
		}.Validate()
		require.NotNil(t, err)
	})

	t.Run(`email is mandatory except for departments`, func(t *testing.T) {
		data := adminapimodels.RegisterPrincipalData{
			Role:     models.ReviewerRole,
			Name:     "Dana Whitfield",
			Password: "long-enough-pass",
		}
		require.NotNil(t, data.Validate())

		data.Role = models.ApplicantRole
		require.Nil(t, data.Validate())
	})
}
