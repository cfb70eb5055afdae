package reporthandler

import (
	"bytes"
	"time"

	"github.com/pkg/errors"

	"eia-backend/db"
	xlsexport "eia-backend/lib/export/xls"
	rebatestore "eia-backend/lib/rebate/store"
	reportstore "eia-backend/lib/report/store"
	"eia-backend/models"
	reportapimodels "eia-backend/models/api/report"
)

const (
	recentFeedLimit = 5
	dateLayout      = "2006-01-02"

	// ledger defaults when no range is given
	defaultLedgerStart = "2024-01-01"
	defaultLedgerEnd   = "2025-12-31"
)

type Provider interface {
	Dashboard() (reportapimodels.DashboardView, error)
	Aging(days int) ([]reportapimodels.AgingRow, error)
	HighValue(minAmount float64) ([]reportapimodels.HighValueRow, error)
	Energy() ([]reportapimodels.CampaignMetrics, error)
	Payments(startDate, endDate string) (reportapimodels.PaymentLedger, error)
	PaymentsExportToXls(startDate, endDate string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       reportstore.NewInstance(db.DB),
		rebateStore: rebatestore.NewInstance(db.DB),
		xlsExport:   xlsexport.Instance,
	}
}

type impl struct {
	store       reportstore.Provider
	rebateStore rebatestore.Provider
	xlsExport   xlsexport.Provider
}

func (i impl) Dashboard() (reportapimodels.DashboardView, error) {
	counts, err := i.rebateStore.StatusCounts()
	if err != nil {
		return reportapimodels.DashboardView{}, err
	}
	view := reportapimodels.DashboardView{
		Feed: []reportapimodels.FeedItem{},
	}
	for status, count := range counts {
		switch status {
		case models.RebateStatusApproved:
			view.Counts.Approved = count
		case models.RebateStatusRejected:
			view.Counts.Rejected = count
		case models.RebateStatusDisbursed:
			view.Counts.Disbursed = count
		default:
			// Draft, Pending and Revision Requested all land in the
			// pending bucket on the dashboard
			view.Counts.Pending += count
		}
	}
	recent, err := i.rebateStore.Recent(recentFeedLimit)
	if err != nil {
		return reportapimodels.DashboardView{}, err
	}
	for _, rec := range recent {
		view.Feed = append(view.Feed, reportapimodels.FeedItem{
			Building:       rec.Building,
			Category:       rec.Category,
			Status:         rec.Status,
			SubmissionDate: rec.SubmissionDate,
		})
	}
	return view, nil
}

// Aging lists pending applications at least the given number of days old.
func (i impl) Aging(days int) ([]reportapimodels.AgingRow, error) {
	recs, err := i.store.ListPending()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	result := make([]reportapimodels.AgingRow, 0, len(recs))
	for _, rec := range recs {
		age := int(now.Sub(rec.SubmissionDate).Hours() / 24)
		if age < days {
			continue
		}
		result = append(result, reportapimodels.AgingRow{
			SopNumber:      rec.SopNumber,
			Category:       rec.Category,
			Building:       rec.Building,
			DepartmentID:   rec.DepartmentID,
			SubmissionDate: rec.SubmissionDate,
			DaysPending:    age,
		})
	}
	return result, nil
}

func (i impl) HighValue(minAmount float64) ([]reportapimodels.HighValueRow, error) {
	return i.store.HighValue(minAmount)
}

func (i impl) Energy() ([]reportapimodels.CampaignMetrics, error) {
	return i.store.CampaignRollup()
}

func (i impl) Payments(startDate, endDate string) (reportapimodels.PaymentLedger, error) {
	if startDate == "" {
		startDate = defaultLedgerStart
	}
	if endDate == "" {
		endDate = defaultLedgerEnd
	}
	from, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return reportapimodels.PaymentLedger{}, errors.New("start_date must be YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return reportapimodels.PaymentLedger{}, errors.New("end_date must be YYYY-MM-DD")
	}
	rows, err := i.store.PaymentLedger(from, to.AddDate(0, 0, 1))
	if err != nil {
		return reportapimodels.PaymentLedger{}, err
	}
	ledger := reportapimodels.PaymentLedger{
		Payments:  rows,
		StartDate: startDate,
		EndDate:   endDate,
	}
	for _, row := range rows {
		ledger.GrandTotal += row.ApprovedAmount
	}
	return ledger, nil
}

func (i impl) PaymentsExportToXls(startDate, endDate string) (*bytes.Buffer, error) {
	ledger, err := i.Payments(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return i.xlsExport.ExportPaymentLedger(ledger)
}
