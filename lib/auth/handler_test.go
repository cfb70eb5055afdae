package authhandler

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eia-backend/config"
	"eia-backend/db"
	authutils "eia-backend/lib/utils/auth-utils"
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

	NewHandler()
}

func hash(t *testing.T, password string) string {
	hashed, err := authutils.HashPassword(password)
	require.Nil(t, err)
	return hashed
}

func TestLogin(t *testing.T) {
	t.Run(`reviewer signs in with email`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.Reviewer{
			EmployeeName: "Dana Whitfield",
			Email:        "dana@contractor.example",
			PasswordHash: hash(t, "secret-1"),
		}).Error)

		resp, err := Instance.Login("dana@contractor.example", "secret-1")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, "REVIEWER", resp.Role)
		require.Equal(t, "Dana Whitfield", resp.Name)

		reviewer := dbmodels.Reviewer{}
		require.Nil(t, db.DB.Where("email = ?", "dana@contractor.example").First(&reviewer).Error)
		require.NotNil(t, reviewer.LastLogin)
	})

	t.Run(`sponsor signs in when no reviewer matches`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.ApplicationSponsor{
			SponsorName:  "Campus Energy Fund",
			Email:        "fund@sponsor.example",
			PasswordHash: hash(t, "secret-2"),
		}).Error)

		resp, err := Instance.Login("fund@sponsor.example", "secret-2")
		require.Nil(t, err)
		require.Equal(t, "SPONSOR", resp.Role)
		require.Equal(t, "Campus Energy Fund", resp.Name)
	})

	t.Run(`reviewer wins when both tables share the email`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.Reviewer{
			EmployeeName: "Shared",
			Email:        "shared@example.org",
			PasswordHash: hash(t, "secret-3"),
		}).Error)
		require.Nil(t, db.DB.Create(&dbmodels.ApplicationSponsor{
			SponsorName:  "Shared Fund",
			Email:        "shared@example.org",
			PasswordHash: hash(t, "secret-3"),
		}).Error)

		resp, err := Instance.Login("shared@example.org", "secret-3")
		require.Nil(t, err)
		require.Equal(t, "REVIEWER", resp.Role)
	})

	t.Run(`department signs in with its number`, func(t *testing.T) {
		setupTest(t)
		applicant := dbmodels.Applicant{
			DepartmentName: "Facilities",
			PasswordHash:   hash(t, "secret-4"),
		}
		require.Nil(t, db.DB.Create(&applicant).Error)

		resp, err := Instance.Login("1", "secret-4")
		require.Nil(t, err)
		require.Equal(t, "APPLICANT", resp.Role)
		require.Equal(t, "Facilities", resp.Name)
	})

	t.Run(`wrong password is refused`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.Reviewer{
			EmployeeName: "Dana Whitfield",
			Email:        "dana@contractor.example",
			PasswordHash: hash(t, "secret-1"),
		}).Error)

		_, err := Instance.Login("dana@contractor.example", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run(`unknown principals are refused`, func(t *testing.T) {
		setupTest(t)
		_, err := Instance.Login("nobody@example.org", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = Instance.Login("123", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = Instance.Login("not a login", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
