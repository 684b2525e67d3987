package payroll_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedPayslip(repo *memoryRepo) *payroll.Payslip {
	p := &payroll.Payslip{
		ID:               uuid.New(),
		CompanyID:        companyID,
		EmployeeID:       uuid.New(),
		Period:           period,
		PayslipNumber:    "PS-202403-000009",
		EmployeeName:     "Asha Rao",
		EmployeeNumber:   "E-009",
		MonthlyGross:     50000,
		Basic:            25000,
		HRA:              12500,
		SpecialAllowance: 12500,
		GrossEarnings:    50000,
		PF:               3000,
		PT:               200,
		MonthlyTax:       1250,
		NetSalary:        45550,
		LOPDays:          decimal.Zero,
		PaidLeaveDays:    decimal.NewFromInt(1),
		WorkingDays:      21,
		Regime:           "NEW",
		Status:           payroll.PayslipPaid,
		CalculatedAt:     time.Now(),
	}
	_, _ = repo.UpsertPayslip(context.Background(), p)
	return p
}

func TestRenderPayslipPDF(t *testing.T) {
	content, err := payroll.RenderPayslipPDF(payroll.Payslip{
		ID:            uuid.New(),
		PayslipNumber: "PS-202403-000001",
		EmployeeName:  "Asha Rao",
		Period:        period,
		NetSalary:     -1200,
		LOPDays:       decimal.NewFromFloat(1.5),
		PaidLeaveDays: decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestDocuments_RenderPeriodAndOpen(t *testing.T) {
	repo := newMemoryRepo()
	p := storedPayslip(repo)
	dir := t.TempDir()
	docs := payroll.NewDocuments(repo, payroll.NewFileStore(dir))
	ctx := context.Background()

	n, err := docs.RenderPeriod(ctx, companyID.String(), period)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored := repo.payslipFor(p.EmployeeID)
	require.NotNil(t, stored.PDFPath)
	assert.Equal(t, filepath.Join(dir, period+"-"+p.ID.String()+".pdf"), *stored.PDFPath)

	doc, err := docs.Open(ctx, companyID.String(), p.ID.String())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocuments_OpenRendersMissingFile(t *testing.T) {
	repo := newMemoryRepo()
	p := storedPayslip(repo)
	missing := filepath.Join(t.TempDir(), "gone.pdf")
	require.NoError(t, repo.SetPayslipPDF(context.Background(), p.ID.String(), missing))

	docs := payroll.NewDocuments(repo, payroll.NewFileStore(t.TempDir()))
	doc, err := docs.Open(context.Background(), companyID.String(), p.ID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
	assert.NotEqual(t, missing, *repo.payslipFor(p.EmployeeID).PDFPath)
}
