package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regulatory"
)

// RegimeDetermination compares the flat and graduated regimes and
// recommends one. It never applies the choice; the resolved regime is
// handed to the later modules by the caller.
type RegimeDetermination struct{}

func (RegimeDetermination) ID() ModuleID    { return ModuleRegimeDetermination }
func (RegimeDetermination) Version() string { return "1.0.0" }

// Evaluate runs the eligibility check, prices both regimes, and picks a
// recommendation. The decision order is fixed: ineligibility wins, then a
// deduction ratio above the standard 40%, then the cheaper regime, with the
// graduated regime as the tie-break.
func (RegimeDetermination) Evaluate(in model.RuleInput) model.RegimeComparisonResult {
	cfg := regulatory.Values()

	business := businessIncome(in)
	deductions := totalDeductions(in)

	eligible := true
	reason := "Business income is within the VAT threshold, so the 8% flat rate is available."
	if !in.UserType.Valid() {
		eligible = false
		reason = fmt.Sprintf("User type %s does not qualify for the 8%% flat rate.", in.UserType)
	} else if business.GreaterThan(cfg.Thresholds.VATAnnualReceipts) {
		eligible = false
		reason = fmt.Sprintf("Business income of %s exceeds the %s VAT threshold; VAT registration and the graduated regime apply.",
			business.StringFixed(2), cfg.Thresholds.VATAnnualReceipts.StringFixed(0))
	}

	flat := flatTaxOn(cfg, business)
	_, _, graduated := graduatedTaxOn(cfg, business, deductions)

	deductionRatio := decimal.Zero
	if business.IsPositive() {
		deductionRatio = deductions.Div(business)
	}

	var recommended model.TaxRegime
	var explanation string
	switch {
	case !eligible:
		recommended = model.RegimeGraduated
		explanation = "The graduated regime is the only option: " + reason
	case deductionRatio.GreaterThan(cfg.Thresholds.OSDRate):
		recommended = model.RegimeGraduated
		explanation = "Deductible expenses exceed the 40% standard deduction, so itemizing under the graduated regime keeps the larger write-off."
	case flat.LessThan(graduated):
		recommended = model.RegimeEightPercentFlat
		explanation = fmt.Sprintf("The 8%% flat rate costs %s against %s under the graduated regime, saving %s for the year.",
			flat.StringFixed(2), graduated.StringFixed(2), graduated.Sub(flat).StringFixed(2))
	default:
		recommended = model.RegimeGraduated
		explanation = "The graduated regime costs no more than the 8% flat rate at this income and expense level."
	}

	return model.RegimeComparisonResult{
		Recommended:       recommended,
		EligibleForFlat:   eligible,
		EligibilityReason: reason,
		BusinessIncome:    business,
		TotalDeductions:   deductions,
		FlatOption: model.RegimeOption{
			Regime:        model.RegimeEightPercentFlat,
			EstimatedTax:  flat,
			EffectiveRate: effectiveRate(flat, business),
			Pros: []string{
				"One 8% rate replaces both income tax and the quarterly percentage tax.",
				"No expense receipts are needed; the 250,000 exemption applies regardless.",
				"Simpler quarterly filings with a single computation.",
			},
			Cons: []string{
				"Actual expenses beyond the exemption reduce nothing.",
				"Unavailable once gross receipts exceed the VAT threshold.",
			},
		},
		GraduatedOption: model.RegimeOption{
			Regime:        model.RegimeGraduated,
			EstimatedTax:  graduated,
			EffectiveRate: effectiveRate(graduated, business),
			Pros: []string{
				"Deductions, itemized or the 40% standard, shrink the taxable base.",
				"The first 250,000 of taxable income is taxed at 0%.",
			},
			Cons: []string{
				"The quarterly percentage tax is filed on top of income tax.",
				"Full books of accounts and receipts must support every deduction.",
			},
		},
		Explanation: explanation,
	}
}

// effectiveRate is tax over business income, zero when there is no income
// to divide by. Rounded to four places for presentation.
func effectiveRate(tax, business decimal.Decimal) decimal.Decimal {
	if !business.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(business).Round(4)
}
