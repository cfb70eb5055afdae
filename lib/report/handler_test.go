package reporthandler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eia-backend/config"
	"eia-backend/db"
	xlsexport "eia-backend/lib/export/xls"
	"eia-backend/models"
	dbmodels "eia-backend/models/db"
)

func setupTest(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.Nil(t, err)
	err = gdb.AutoMigrate(&dbmodels.Reviewer{}, &dbmodels.Applicant{}, &dbmodels.ApplicationSponsor{},
		&dbmodels.Rebate{}, &dbmodels.RebateApproval{}, &dbmodels.Campaign{})
	require.Nil(t, err)
	db.DB = gdb

	xlsexport.NewHandler()
	NewHandler()
}

func seedRebate(t *testing.T, status models.RebateStatus, category string, submitted time.Time) int64 {
	rec := dbmodels.Rebate{
		Category:       category,
		Building:       "Science Hall",
		Status:         status,
		SubmissionDate: submitted,
		DepartmentID:   11,
	}
	require.Nil(t, db.DB.Create(&rec).Error)
	return rec.SopNumber
}

func TestDashboard(t *testing.T) {
	t.Run(`drafts and revision requests count as pending`, func(t *testing.T) {
		setupTest(t)
		seedRebate(t, models.RebateStatusDraft, "HVAC", time.Now())
		seedRebate(t, models.RebateStatusPending, "HVAC", time.Now())
		seedRebate(t, models.RebateStatusRevisionRequested, "HVAC", time.Now())
		seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now())
		seedRebate(t, models.RebateStatusRejected, "HVAC", time.Now())
		seedRebate(t, models.RebateStatusDisbursed, "HVAC", time.Now())

		view, err := Instance.Dashboard()
		require.Nil(t, err)
		require.Equal(t, int64(3), view.Counts.Pending)
		require.Equal(t, int64(1), view.Counts.Approved)
		require.Equal(t, int64(1), view.Counts.Rejected)
		require.Equal(t, int64(1), view.Counts.Disbursed)
	})

	t.Run(`feed holds the five most recent applications`, func(t *testing.T) {
		setupTest(t)
		for day := 1; day <= 7; day++ {
			seedRebate(t, models.RebateStatusPending, "HVAC",
				time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC))
		}

		view, err := Instance.Dashboard()
		require.Nil(t, err)
		require.Len(t, view.Feed, 5)
		require.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC).Unix(),
			view.Feed[0].SubmissionDate.Unix())
	})
}

func TestAging(t *testing.T) {
	t.Run(`only pending applications past the threshold appear`, func(t *testing.T) {
		setupTest(t)
		oldSop := seedRebate(t, models.RebateStatusPending, "HVAC", time.Now().AddDate(0, 0, -45))
		seedRebate(t, models.RebateStatusPending, "HVAC", time.Now().AddDate(0, 0, -5))
		seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now().AddDate(0, 0, -90))

		rows, err := Instance.Aging(30)
		require.Nil(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, oldSop, rows[0].SopNumber)
		require.GreaterOrEqual(t, rows[0].DaysPending, 44)
	})

	t.Run(`zero threshold lists every pending application`, func(t *testing.T) {
		setupTest(t)
		seedRebate(t, models.RebateStatusPending, "HVAC", time.Now().AddDate(0, 0, -45))
		seedRebate(t, models.RebateStatusPending, "HVAC", time.Now().AddDate(0, 0, -1))

		rows, err := Instance.Aging(0)
		require.Nil(t, err)
		require.Len(t, rows, 2)
	})
}

func TestHighValue(t *testing.T) {
	t.Run(`the threshold is inclusive`, func(t *testing.T) {
		setupTest(t)
		bigSop := seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: bigSop, ApprovedAmount: 10000,
		}).Error)
		smallSop := seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: smallSop, ApprovedAmount: 9999.99,
		}).Error)

		rows, err := Instance.HighValue(10000)
		require.Nil(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, bigSop, rows[0].SopNumber)
		require.Equal(t, 10000.00, rows[0].ApprovedAmount)
	})
}

func TestEnergy(t *testing.T) {
	t.Run(`campaigns roll up by category with zero defaults`, func(t *testing.T) {
		setupTest(t)
		require.Nil(t, db.DB.Create(&dbmodels.Campaign{
			CampaignName: "HVAC Modernization", Category: "HVAC",
			CampaignDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}).Error)
		require.Nil(t, db.DB.Create(&dbmodels.Campaign{
			CampaignName: "Solar Readiness", Category: "Solar",
			CampaignDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		}).Error)

		approvedSop := seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: approvedSop, ApprovedAmount: 1500,
		}).Error)
		seedRebate(t, models.RebateStatusPending, "HVAC", time.Now())

		rows, err := Instance.Energy()
		require.Nil(t, err)
		require.Len(t, rows, 2)

		byName := map[string]int{}
		for idx, row := range rows {
			byName[row.CampaignName] = idx
		}
		hvac := rows[byName["HVAC Modernization"]]
		require.Equal(t, int64(2), hvac.TotalApplications)
		require.Equal(t, int64(1), hvac.ApprovedApplications)
		require.Equal(t, 1500.00, hvac.TotalApprovedRebates)

		solar := rows[byName["Solar Readiness"]]
		require.Equal(t, int64(0), solar.TotalApplications)
		require.Equal(t, int64(0), solar.ApprovedApplications)
		require.Equal(t, 0.00, solar.TotalApprovedRebates)
	})
}

func TestPayments(t *testing.T) {
	t.Run(`ledger totals payments in range and keeps unpaid rows`, func(t *testing.T) {
		setupTest(t)
		paid := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

		paidSop := seedRebate(t, models.RebateStatusDisbursed, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: paidSop, ApprovedAmount: 1500, PaymentDate: &paid,
		}).Error)
		unpaidSop := seedRebate(t, models.RebateStatusApproved, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: unpaidSop, ApprovedAmount: 700,
		}).Error)
		seedRebate(t, models.RebateStatusRejected, "HVAC", time.Now())

		ledger, err := Instance.Payments("2025-01-01", "2025-12-31")
		require.Nil(t, err)
		require.Len(t, ledger.Payments, 2)
		require.Equal(t, 2200.00, ledger.GrandTotal)
	})

	t.Run(`payments outside the range are dropped`, func(t *testing.T) {
		setupTest(t)
		paid := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
		oldSop := seedRebate(t, models.RebateStatusDisbursed, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: oldSop, ApprovedAmount: 1500, PaymentDate: &paid,
		}).Error)

		ledger, err := Instance.Payments("2025-01-01", "2025-12-31")
		require.Nil(t, err)
		require.Empty(t, ledger.Payments)
		require.Equal(t, 0.00, ledger.GrandTotal)
	})

	t.Run(`the end date itself still counts`, func(t *testing.T) {
		setupTest(t)
		paid := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)
		sop := seedRebate(t, models.RebateStatusDisbursed, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: sop, ApprovedAmount: 1500, PaymentDate: &paid,
		}).Error)

		ledger, err := Instance.Payments("2025-01-01", "2025-12-31")
		require.Nil(t, err)
		require.Len(t, ledger.Payments, 1)
	})

	t.Run(`a malformed date is rejected`, func(t *testing.T) {
		setupTest(t)
		_, err := Instance.Payments("01/01/2025", "")
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "start_date")
	})

	t.Run(`the export produces a non-empty workbook`, func(t *testing.T) {
		setupTest(t)
		paid := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
		sop := seedRebate(t, models.RebateStatusDisbursed, "HVAC", time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: sop, ApprovedAmount: 1500, PaymentDate: &paid,
		}).Error)

		data, err := Instance.PaymentsExportToXls("2025-01-01", "2025-12-31")
		require.Nil(t, err)
		require.NotNil(t, data)
		require.Greater(t, data.Len(), 0)
	})
}
