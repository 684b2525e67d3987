package tax

import (
	"github.com/shopspring/decimal"
)

type Regime string

const (
	RegimeNew Regime = "NEW"
	RegimeOld Regime = "OLD"
)

func (r Regime) Valid() bool {
	return r == RegimeNew || r == RegimeOld
}

// Slab taxes the income between the previous slab's UpTo and its own UpTo.
// UpTo zero marks the open-ended top slab.
type Slab struct {
	UpTo int64
	Rate decimal.Decimal
}

type RegimeTable struct {
	StandardDeduction int64
	Slabs             []Slab
}

// Table is one financial year's slab configuration.
type Table struct {
	Version string
	New     RegimeTable
	Old     RegimeTable
}

func (t Table) forRegime(r Regime) RegimeTable {
	if r == RegimeOld {
		return t.Old
	}
	return t.New
}

func pct(p int64) decimal.Decimal {
	return decimal.New(p, -2)
}

const DefaultTableVersion = "FY2024-25"

var Tables = map[string]Table{
	"FY2024-25": {
		Version: "FY2024-25",
		New: RegimeTable{
			StandardDeduction: 75000,
			Slabs: []Slab{
				{UpTo: 300000, Rate: pct(0)},
				{UpTo: 700000, Rate: pct(5)},
				{UpTo: 1000000, Rate: pct(10)},
				{UpTo: 1200000, Rate: pct(15)},
				{UpTo: 1500000, Rate: pct(20)},
				{UpTo: 0, Rate: pct(30)},
			},
		},
		Old: RegimeTable{
			StandardDeduction: 50000,
			Slabs: []Slab{
				{UpTo: 250000, Rate: pct(0)},
				{UpTo: 500000, Rate: pct(5)},
				{UpTo: 1000000, Rate: pct(20)},
				{UpTo: 0, Rate: pct(30)},
			},
		},
	},
}

func LookupTable(version string) (Table, error) {
	if version == "" {
		version = DefaultTableVersion
	}
	t, ok := Tables[version]
	if !ok {
		return Table{}, ErrUnknownTable
	}
	return t, nil
}

// DeductionCaps limits declared deductions per section (e.g. "80C"). A
// section without an entry is not capped.
type DeductionCaps map[string]int64
