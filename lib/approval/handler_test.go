package approvalhandler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eia-backend/config"
	"eia-backend/db"
	notifyhandler "eia-backend/lib/notify"
	"eia-backend/lib/smtp"
	"eia-backend/models"
	dbmodels "eia-backend/models/db"
)

const testUnitRate = 500.00

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

	require.Nil(t, smtp.Connect("", "", "", "", false))
	notifyhandler.NewHandler("noreply@eia.local")
	NewHandler(testUnitRate)
}

func seedApproved(t *testing.T, sponsorID *int64, numOfApplications int, submitted time.Time) int64 {
	rec := dbmodels.Rebate{
		Category:          "HVAC",
		Building:          "Science Hall",
		Status:            models.RebateStatusApproved,
		SubmissionDate:    submitted,
		DepartmentID:      11,
		SponsorID:         sponsorID,
		NumOfApplications: numOfApplications,
	}
	require.Nil(t, db.DB.Create(&rec).Error)
	return rec.SopNumber
}

func TestSync(t *testing.T) {
	t.Run(`sync backfills at the unit rate with the submission date`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		submitted := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		sopNumber := seedApproved(t, &sponsorID, 4, submitted)

		backfilled, err := Instance.Sync()
		require.Nil(t, err)
		require.Equal(t, int64(1), backfilled)

		approval := dbmodels.RebateApproval{}
		require.Nil(t, db.DB.Where("sop_number = ?", sopNumber).First(&approval).Error)
		require.Equal(t, 4*testUnitRate, approval.ApprovedAmount)
		require.NotNil(t, approval.SponsorID)
		require.Equal(t, sponsorID, *approval.SponsorID)
		require.NotNil(t, approval.PaymentDate)
		require.Equal(t, submitted.Unix(), approval.PaymentDate.Unix())
		require.NotNil(t, approval.DisbursedDate)
		require.Equal(t, submitted.Unix(), approval.DisbursedDate.Unix())
	})

	t.Run(`a zero application count still earns one unit`, func(t *testing.T) {
		setupTest(t)
		sopNumber := seedApproved(t, nil, 0, time.Now())

		_, err := Instance.Sync()
		require.Nil(t, err)

		approval := dbmodels.RebateApproval{}
		require.Nil(t, db.DB.Where("sop_number = ?", sopNumber).First(&approval).Error)
		require.Equal(t, testUnitRate, approval.ApprovedAmount)
	})

	t.Run(`running sync twice inserts nothing new`, func(t *testing.T) {
		setupTest(t)
		seedApproved(t, nil, 1, time.Now())
		seedApproved(t, nil, 2, time.Now())

		backfilled, err := Instance.Sync()
		require.Nil(t, err)
		require.Equal(t, int64(2), backfilled)

		backfilled, err = Instance.Sync()
		require.Nil(t, err)
		require.Equal(t, int64(0), backfilled)

		var rowCount int64
		require.Nil(t, db.DB.Model(&dbmodels.RebateApproval{}).Count(&rowCount).Error)
		require.Equal(t, int64(2), rowCount)
	})

	t.Run(`rebates with an approval record are skipped`, func(t *testing.T) {
		setupTest(t)
		sopNumber := seedApproved(t, nil, 3, time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: sopNumber, ApprovedAmount: 999,
		}).Error)

		backfilled, err := Instance.Sync()
		require.Nil(t, err)
		require.Equal(t, int64(0), backfilled)

		approval := dbmodels.RebateApproval{}
		require.Nil(t, db.DB.Where("sop_number = ?", sopNumber).First(&approval).Error)
		require.Equal(t, 999.00, approval.ApprovedAmount)
	})
}

func TestDisburse(t *testing.T) {
	t.Run(`disburse records the payment and closes the rebate`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		hMsg, err := Instance.Disburse(sponsorID, sopNumber, 1800)
		require.Nil(t, err)
		require.Empty(t, hMsg)

		rebate := dbmodels.Rebate{SopNumber: sopNumber}
		require.Nil(t, db.DB.First(&rebate).Error)
		require.Equal(t, models.RebateStatusDisbursed, rebate.Status)

		approval := dbmodels.RebateApproval{}
		require.Nil(t, db.DB.Where("sop_number = ?", sopNumber).First(&approval).Error)
		require.Equal(t, 1800.00, approval.ApprovedAmount)
		require.NotNil(t, approval.PaymentDate)
		require.NotNil(t, approval.DisbursedDate)
	})

	t.Run(`repeating a disbursement rewrites the record in place`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		for _, amount := range []float64{1800, 2100} {
			hMsg, err := Instance.Disburse(sponsorID, sopNumber, amount)
			require.Nil(t, err)
			require.Empty(t, hMsg)
		}

		var rowCount int64
		require.Nil(t, db.DB.Model(&dbmodels.RebateApproval{}).Count(&rowCount).Error)
		require.Equal(t, int64(1), rowCount)

		approval := dbmodels.RebateApproval{}
		require.Nil(t, db.DB.Where("sop_number = ?", sopNumber).First(&approval).Error)
		require.Equal(t, 2100.00, approval.ApprovedAmount)
	})

	t.Run(`another sponsor's rebate cannot be disbursed`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		hMsg, err := Instance.Disburse(99, sopNumber, 1800)
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)

		rebate := dbmodels.Rebate{SopNumber: sopNumber}
		require.Nil(t, db.DB.First(&rebate).Error)
		require.Equal(t, models.RebateStatusApproved, rebate.Status)
	})

	t.Run(`unknown rebate reports not found`, func(t *testing.T) {
		setupTest(t)
		_, err := Instance.Disburse(3, 404, 1800)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListForSponsor(t *testing.T) {
	t.Run(`listing reconciles missing approvals first`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 2, time.Now())

		list, err := Instance.ListForSponsor(sponsorID, models.SponsorFilterAll)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, sopNumber, list[0].SopNumber)
		require.NotNil(t, list[0].ApprovedAmount)
		require.Equal(t, 2*testUnitRate, *list[0].ApprovedAmount)
	})

	t.Run(`pending filter keeps only unpaid approvals`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		paid := time.Now()

		unpaidSop := seedApproved(t, &sponsorID, 1, time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: unpaidSop, SponsorID: &sponsorID, ApprovedAmount: 500,
		}).Error)
		paidSop := seedApproved(t, &sponsorID, 1, time.Now())
		require.Nil(t, db.DB.Create(&dbmodels.RebateApproval{
			SopNumber: paidSop, SponsorID: &sponsorID, ApprovedAmount: 700, PaymentDate: &paid,
		}).Error)

		list, err := Instance.ListForSponsor(sponsorID, models.SponsorFilterPending)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, unpaidSop, list[0].SopNumber)

		list, err = Instance.ListForSponsor(sponsorID, models.SponsorFilterApproved)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, paidSop, list[0].SopNumber)
	})

	t.Run(`an assigned rebate awaiting review shows up as pending work`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		rec := dbmodels.Rebate{
			Category:       "Solar",
			Building:       "Field House",
			Status:         models.RebateStatusPending,
			SubmissionDate: time.Now(),
			DepartmentID:   11,
			SponsorID:      &sponsorID,
		}
		require.Nil(t, db.DB.Create(&rec).Error)

		list, err := Instance.ListForSponsor(sponsorID, models.SponsorFilterPending)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, rec.SopNumber, list[0].SopNumber)
		require.Equal(t, models.RebateStatusPending, list[0].Status)
		require.Nil(t, list[0].ApprovedAmount)
		require.Nil(t, list[0].PaymentDate)

		list, err = Instance.ListForSponsor(sponsorID, models.SponsorFilterApproved)
		require.Nil(t, err)
		require.Empty(t, list)
	})

	t.Run(`other sponsors' approvals stay invisible`, func(t *testing.T) {
		setupTest(t)
		otherSponsor := int64(99)
		seedApproved(t, &otherSponsor, 1, time.Now())

		list, err := Instance.ListForSponsor(3, models.SponsorFilterAll)
		require.Nil(t, err)
		require.Empty(t, list)
	})
}

func TestReceipt(t *testing.T) {
	t.Run(`receipt is produced once the payment is recorded`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		hMsg, err := Instance.Disburse(sponsorID, sopNumber, 1800)
		require.Nil(t, err)
		require.Empty(t, hMsg)

		data, err := Instance.Receipt(sponsorID, sopNumber)
		require.Nil(t, err)
		require.NotNil(t, data)
		require.Greater(t, data.Len(), 0)
		require.Equal(t, "%PDF", data.String()[:4])
	})

	t.Run(`no receipt before the payment`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		_, err := Instance.Receipt(sponsorID, sopNumber)
		require.NotNil(t, err)
	})

	t.Run(`no receipt for another sponsor`, func(t *testing.T) {
		setupTest(t)
		sponsorID := int64(3)
		sopNumber := seedApproved(t, &sponsorID, 1, time.Now())

		hMsg, err := Instance.Disburse(sponsorID, sopNumber, 1800)
		require.Nil(t, err)
		require.Empty(t, hMsg)

		_, err = Instance.Receipt(99, sopNumber)
		require.NotNil(t, err)
	})
}
