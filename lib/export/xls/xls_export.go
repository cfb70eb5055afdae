package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	reportapimodels "eia-backend/models/api/report"
)

type Provider interface {
	ExportPaymentLedger(ledger reportapimodels.PaymentLedger) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var ledgerHeaders = []string{"SOP Number", "Department", "Category", "Status", "Payment Date", "Approved Amount"}

func (i impl) ExportPaymentLedger(ledger reportapimodels.PaymentLedger) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, ledgerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(ledger.Payments) != 0 {
		row, err = writeLedgerData(f, sheet, ledger.Payments, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data")
		}
	}

	// grand total under the table
	row += 2
	if err = writeColumn(f, sheet, 5, row, "Grand total"); err != nil {
		return nil, err
	}
	if err = writeColumn(f, sheet, 6, row, ledger.GrandTotal); err != nil {
		return nil, err
	}

	f.SetSheetName(sheet, "Payments")
	return f.WriteToBuffer()
}

func writeLedgerData(f *excelize.File, sheet string, list []reportapimodels.PaymentRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(ledgerHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.SopNumber); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.DepartmentID); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Category); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		col++
		if item.PaymentDate != nil {
			if err := writeColumn(f, sheet, col, row, item.PaymentDate.Format("2006-01-02")); err != nil {
				return row, err
			}
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.ApprovedAmount); err != nil {
			return row, err
		}
	}
	return row, nil
}
