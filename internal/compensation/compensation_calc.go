package compensation

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/tax"

	"github.com/shopspring/decimal"
)

var (
	basicRate    = decimal.New(50, -2)
	hraMetroRate = decimal.New(50, -2)
	hraOtherRate = decimal.New(40, -2)
	pfRate       = decimal.New(12, -2)
	monthsInYear = decimal.NewFromInt(12)
)

var (
	ErrNonPositiveWorkingDays = apperror.New(apperror.CodeComputation, "working days must be positive", http.StatusUnprocessableEntity)
	ErrNegativeCTC            = apperror.New(apperror.CodeComputation, "annual ctc cannot be negative", http.StatusUnprocessableEntity)
	ErrNegativeLOP            = apperror.New(apperror.CodeComputation, "loss of pay days cannot be negative", http.StatusUnprocessableEntity)
)

type PayslipInput struct {
	AnnualCTC          int64
	IsMetro            bool
	PFEnabled          bool
	Regime             tax.Regime
	DeclaredDeductions map[string]int64
}

// PayslipBreakdown amounts are whole currency units.
type PayslipBreakdown struct {
	MonthlyGross     int64
	Basic            int64
	HRA              int64
	SpecialAllowance int64
	GrossEarnings    int64
	PF               int64
	PT               int64
	TaxableIncome    int64
	AnnualTax        int64
	MonthlyTax       int64
	NetSalary        int64
	LOPDays          decimal.Decimal
	WorkingDays      int
	Regime           tax.Regime
}

// ComputePayslip derives one period's pay from a profile. Every step rounds
// half away from zero before the next one reads it; PF and PT are never
// prorated.
func ComputePayslip(in PayslipInput, lopDays decimal.Decimal, workingDays int, calc *tax.Calculator) (PayslipBreakdown, error) {
	if in.AnnualCTC < 0 {
		return PayslipBreakdown{}, ErrNegativeCTC
	}
	if workingDays <= 0 {
		return PayslipBreakdown{}, ErrNonPositiveWorkingDays
	}
	if lopDays.IsNegative() {
		return PayslipBreakdown{}, ErrNegativeLOP
	}
	if !in.Regime.Valid() {
		return PayslipBreakdown{}, tax.ErrUnknownRegime
	}

	ctc := decimal.NewFromInt(in.AnnualCTC)
	monthlyGross := ctc.Div(monthsInYear).Round(0)
	basic := monthlyGross.Mul(basicRate).Round(0)

	hraRate := hraOtherRate
	if in.IsMetro {
		hraRate = hraMetroRate
	}
	hra := basic.Mul(hraRate).Round(0)

	pf := decimal.Zero
	if in.PFEnabled {
		pf = basic.Mul(pfRate).Round(0)
	}
	pt := calc.ProfessionalTax(monthlyGross)

	special := decimal.Max(decimal.Zero, monthlyGross.Sub(basic).Sub(hra))

	if lopDays.IsPositive() {
		wd := decimal.NewFromInt(int64(workingDays))
		payable := decimal.Max(decimal.Zero, wd.Sub(lopDays))
		prorate := func(x decimal.Decimal) decimal.Decimal {
			return x.Mul(payable).Div(wd).Round(0)
		}
		basic = prorate(basic)
		hra = prorate(hra)
		special = prorate(special)
	}

	taxable, err := calc.TaxableIncome(ctc, in.Regime, in.DeclaredDeductions)
	if err != nil {
		return PayslipBreakdown{}, err
	}
	annualTax, err := calc.AnnualTax(taxable, in.Regime)
	if err != nil {
		return PayslipBreakdown{}, err
	}
	monthlyTax := tax.MonthlyTax(annualTax)

	earnings := basic.Add(hra).Add(special)
	net := earnings.Sub(pf).Sub(pt).Sub(monthlyTax)

	return PayslipBreakdown{
		MonthlyGross:     monthlyGross.IntPart(),
		Basic:            basic.IntPart(),
		HRA:              hra.IntPart(),
		SpecialAllowance: special.IntPart(),
		GrossEarnings:    earnings.IntPart(),
		PF:               pf.IntPart(),
		PT:               pt.IntPart(),
		TaxableIncome:    taxable.Round(0).IntPart(),
		AnnualTax:        annualTax.IntPart(),
		MonthlyTax:       monthlyTax.IntPart(),
		NetSalary:        net.IntPart(),
		LOPDays:          lopDays,
		WorkingDays:      workingDays,
		Regime:           in.Regime,
	}, nil
}
