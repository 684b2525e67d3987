package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

type pdfLine struct {
	label  string
	amount int64
}

// RenderPayslipPDF lays out one payslip as a single A4 page.
func RenderPayslipPDF(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Payslip No: %s", p.PayslipNumber),
		fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeNumber),
		fmt.Sprintf("Period: %s", p.Period),
		fmt.Sprintf("Working days: %d   LOP days: %s   Paid leave: %s",
			p.WorkingDays, p.LOPDays.StringFixed(1), p.PaidLeaveDays.StringFixed(1)),
		fmt.Sprintf("Tax regime: %s (%s)", p.Regime, p.TaxTableVersion),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	writeSection(pdf, "Earnings", []pdfLine{
		{"Basic", p.Basic},
		{"House rent allowance", p.HRA},
		{"Special allowance", p.SpecialAllowance},
		{"Gross earnings", p.GrossEarnings},
	})
	writeSection(pdf, "Deductions", []pdfLine{
		{"Provident fund", p.PF},
		{"Professional tax", p.PT},
		{"Income tax", p.MonthlyTax},
	})

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, formatAmount(p.NetSalary), "T", 1, "R", false, 0, "")

	if p.Status == PayslipPaid && p.PaidAt != nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Ln(4)
		pdf.Cell(0, 6, fmt.Sprintf("Paid on %s", p.PaidAt.Format("2006-01-02")))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip %s: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, lines []pdfLine) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(170, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(120, 7, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, formatAmount(l.amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func formatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
