package rules

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regulatory"
)

// TaxComputation computes the exact liability under the resolved regime,
// including the quarterly payment split.
type TaxComputation struct{}

func (TaxComputation) ID() ModuleID    { return ModuleTaxComputation }
func (TaxComputation) Version() string { return "1.0.0" }

// Evaluate derives the year's liability. Employment income is reported but
// excluded from the taxable base; tax on it is settled at source. Withheld
// amounts offset the computed tax, clamped so the net payable never goes
// negative.
func (TaxComputation) Evaluate(in model.RuleInput, regime model.TaxRegime) model.ComputedValues {
	cfg := regulatory.Values()

	business := businessIncome(in)
	deductions := totalDeductions(in)
	credits := creditsApplied(in)

	var deductionUsed, taxable, tax decimal.Decimal
	if regime == model.RegimeEightPercentFlat {
		taxable = decimal.Max(decimal.Zero, business.Sub(cfg.Thresholds.PersonalExemption))
		tax = flatTaxOn(cfg, business)
	} else {
		deductionUsed, taxable, tax = graduatedTaxOn(cfg, business, deductions)
	}

	net := decimal.Max(decimal.Zero, tax.Sub(credits)).Round(2)

	// Three equal quarterly payments; the annual true-up absorbs the
	// division remainder so the four parts always sum to the net exactly.
	quarterly := net.Div(decimal.NewFromInt(4)).Round(2)
	trueUp := net.Sub(quarterly.Mul(decimal.NewFromInt(3))).Round(2)

	return model.ComputedValues{
		Regime:           regime,
		GrossIncome:      grossIncome(in),
		BusinessIncome:   business,
		EmploymentIncome: employmentIncome(in),
		TotalDeductions:  deductions,
		DeductionUsed:    deductionUsed,
		TaxableIncome:    taxable,
		EstimatedTax:     tax,
		CreditsApplied:   credits,
		NetTaxPayable:    net,
		Quarterly: model.QuarterlyBreakdown{
			Q1:           quarterly,
			Q2:           quarterly,
			Q3:           quarterly,
			AnnualTrueUp: trueUp,
		},
	}
}

// flatTaxOn is the flat-regime liability: 8% of business income above the
// personal exemption.
func flatTaxOn(cfg regulatory.Config, business decimal.Decimal) decimal.Decimal {
	base := decimal.Max(decimal.Zero, business.Sub(cfg.Thresholds.PersonalExemption))
	return base.Mul(cfg.Thresholds.FlatRate).Round(2)
}

// graduatedTaxOn is the graduated-regime liability. The larger of the
// declared deductions and the optional standard deduction comes off the
// business income before the bracket table applies.
func graduatedTaxOn(cfg regulatory.Config, business, declared decimal.Decimal) (deduction, taxable, tax decimal.Decimal) {
	deduction = decimal.Max(declared, business.Mul(cfg.Thresholds.OSDRate))
	taxable = decimal.Max(decimal.Zero, business.Sub(deduction))
	tax = bracketTaxOn(cfg.Brackets, taxable).Round(2)
	return deduction, taxable, tax
}

// bracketTaxOn applies the graduated table: the matching band's base tax
// plus its marginal rate on the income above the band's lower edge.
func bracketTaxOn(brackets []regulatory.Bracket, taxable decimal.Decimal) decimal.Decimal {
	for _, b := range brackets {
		if b.Contains(taxable) {
			return b.BaseTax.Add(taxable.Sub(b.Lower()).Mul(b.Rate))
		}
	}
	// The parsed table always ends in an unbounded band.
	return decimal.Zero
}
