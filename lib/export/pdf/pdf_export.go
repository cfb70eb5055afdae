package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dbmodels "eia-backend/models/db"
)

// GenerateReceipt renders a one-page disbursement receipt for a paid rebate.
func GenerateReceipt(rebate dbmodels.Rebate, approval dbmodels.RebateApproval) (result *bytes.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateReceipt panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Energy Incentive Application - Disbursement Receipt")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	writeLine(pdf, "SOP Number", fmt.Sprintf("%v", rebate.SopNumber))
	writeLine(pdf, "Category", rebate.Category)
	writeLine(pdf, "Building", rebate.Building)
	writeLine(pdf, "Department", fmt.Sprintf("%v", rebate.DepartmentID))
	if approval.SponsorID != nil {
		writeLine(pdf, "Sponsor", fmt.Sprintf("%v", *approval.SponsorID))
	}
	writeLine(pdf, "Disbursed amount", fmt.Sprintf("%.2f", approval.ApprovedAmount))
	if approval.PaymentDate != nil {
		writeLine(pdf, "Payment date", approval.PaymentDate.Format("2006-01-02"))
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "failed to render receipt")
	}
	return buf, nil
}

func writeLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}
