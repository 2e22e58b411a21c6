package domain

// BillingCycle enumerates the pricing tiers a plan can be bought under.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the supported values.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Plan is a premium subscription offering, immutable once loaded from the
// catalog. YearlyPrice is derived client-side when the server omits it.
type Plan struct {
	ID           int64
	Name         string
	Description  string
	MonthlyPrice float64
	YearlyPrice  float64
	Features     []string
	Recommended  bool
	Glyph        string
	ThemeKey     string
}

// Price returns the amount charged for the given billing cycle.
func (p Plan) Price(cycle BillingCycle) float64 {
	if cycle == CycleYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// YearlySavings is the amount saved over twelve monthly payments when
// paying yearly. Zero when the yearly price is not a discount.
func (p Plan) YearlySavings() float64 {
	s := p.MonthlyPrice*12 - p.YearlyPrice
	if s < 0 {
		return 0
	}
	return s
}
