package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regulatory"
)

// RiskAssessment runs a fixed battery of independent compliance checks.
// Checks never short-circuit each other; several flags can co-occur, and
// every ratio guards its denominator.
type RiskAssessment struct{}

func (RiskAssessment) ID() ModuleID    { return ModuleRiskAssessment }
func (RiskAssessment) Version() string { return "1.0.0" }

// Evaluate returns the triggered flags in check order, ids RISK-1.. per
// call.
func (RiskAssessment) Evaluate(in model.RuleInput, regime model.TaxRegime) []model.RiskFlag {
	cfg := regulatory.Values()

	business := businessIncome(in)
	vat := cfg.Thresholds.VATAnnualReceipts

	var out []model.RiskFlag
	add := func(code string, sev model.Severity, title, desc, action string, fields ...string) {
		out = append(out, model.RiskFlag{
			ID:                fmt.Sprintf("RISK-%d", len(out)+1),
			Code:              code,
			Severity:          sev,
			Title:             title,
			Description:       desc,
			RecommendedAction: action,
			AffectedFields:    fields,
		})
	}

	if in.RegistrationStatus == model.RegistrationNotRegistered && business.IsPositive() {
		add("UNREG_WITH_INCOME", model.SeverityCpaReviewRequired,
			"Business income without registration",
			fmt.Sprintf("Business income of %s is declared but the taxpayer is not registered.", business.StringFixed(2)),
			"Register before filing anything and have a CPA review the exposure for past periods.",
			"registration_status", "income_streams")
	}

	if in.RegistrationStatus == model.RegistrationNeedsUpdate {
		add("REG_NEEDS_UPDATE", model.SeverityWarning,
			"Registration details out of date",
			"The registration record no longer matches the taxpayer's current activity or address.",
			"File a registration information update before the next return.",
			"registration_status")
	}

	nearThreshold := vat.Mul(cfg.Thresholds.VATWarningRatio)
	if business.GreaterThanOrEqual(nearThreshold) && business.LessThanOrEqual(vat) {
		add("NEAR_VAT_THRESHOLD", model.SeverityWarning,
			"Approaching the VAT threshold",
			fmt.Sprintf("Business income of %s is within 80%% of the %s VAT threshold.", business.StringFixed(2), vat.StringFixed(0)),
			"Track receipts monthly; crossing the threshold forces VAT registration and ends flat-rate eligibility.",
			"income_streams")
	}
	if business.GreaterThan(vat) {
		add("OVER_VAT_THRESHOLD", model.SeverityCpaReviewRequired,
			"Over the VAT threshold",
			fmt.Sprintf("Business income of %s exceeds the %s VAT threshold.", business.StringFixed(2), vat.StringFixed(0)),
			"VAT registration is mandatory; engage a CPA to transition filings.",
			"income_streams")
	}

	var uncertified []string
	for _, s := range in.IncomeStreams {
		if s.HasWithholding && !s.Form2307Received {
			uncertified = append(uncertified, s.ID)
		}
	}
	if len(uncertified) > 0 {
		add("WITHHOLDING_NO_2307", model.SeverityWarning,
			"Withholding credits without certificates",
			fmt.Sprintf("Streams claiming withholding have no certificate on file: %s.", strings.Join(uncertified, ", ")),
			"Request the certificates from the payers; credits without one are disallowed on audit.",
			"income_streams")
	}

	if withheld, base := withholdingTotals(in); base.IsPositive() {
		rate := withheld.Div(base)
		if rate.GreaterThan(cfg.Risk.HighWithholdingRate) && withheld.GreaterThan(cfg.Risk.HighWithholdingAmount) {
			add("HIGH_WITHHOLDING", model.SeverityInfo,
				"Unusually high withholding",
				fmt.Sprintf("Payers withheld %s, an effective rate above %s%%.", withheld.StringFixed(2), cfg.Risk.HighWithholdingRate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				"Verify the withholding rates applied; an over-withheld year usually ends in a refund claim.",
				"income_streams")
		}
	}

	if !regime.Concrete() {
		add("REGIME_UNDETERMINED", model.SeverityWarning,
			"No tax regime selected",
			"The assessment ran without a concrete regime choice.",
			"Choose between the 8% flat rate and the graduated table before the first quarterly filing locks the year.",
			"selected_regime")
	}

	if regime == model.RegimeEightPercentFlat && business.IsPositive() {
		if totalExpenses(in).Div(business).GreaterThan(cfg.Risk.FlatExpenseRatio) {
			add("FLAT_HIGH_EXPENSES", model.SeverityInfo,
				"High expenses under the flat rate",
				"Declared expenses exceed half of gross receipts, but the flat rate deducts none of them.",
				"Re-run the regime comparison; the graduated regime may price this expense profile lower.",
				"expenses", "selected_regime")
		}
	}

	if len(in.IncomeStreams) == 0 {
		add("NO_INCOME_STREAMS", model.SeverityWarning,
			"No income declared",
			"The assessment ran with an empty income list.",
			"Add every income stream before relying on the computed obligations.",
			"income_streams")
	}

	if in.UserType == model.UserMixedIncome && !in.HasEmploymentIncome && !anyEmploymentStream(in) {
		add("MIXED_NO_EMPLOYMENT", model.SeverityWarning,
			"Mixed income without employment income",
			"The profile declares mixed income but no employment income is present.",
			"Either add the employment stream or reclassify the profile as purely self-employed.",
			"user_type", "income_streams")
	}

	if business.GreaterThan(cfg.Risk.WithholdingEvidenceIncome) && !anyWithholdingEvidence(in) {
		add("NO_WITHHOLDING_EVIDENCE", model.SeverityInfo,
			"No withholding evidence on sizable income",
			fmt.Sprintf("Business income of %s shows no withholding or certificates from any payer.", business.StringFixed(2)),
			"Confirm clients are exempt from withholding; missing certificates understate available credits.",
			"income_streams")
	}

	if regime == model.RegimeGraduated && len(in.Expenses) > 0 {
		add("GRADUATED_KEEP_RECEIPTS", model.SeverityInfo,
			"Keep receipts for claimed deductions",
			"Deductions under the graduated regime survive audit only with receipts behind them.",
			"Retain official receipts and invoices for every declared expense for at least three years.",
			"expenses")
	}

	return out
}

// anyWithholdingEvidence reports whether any stream documents withholding,
// either by declaring it or by a received certificate.
func anyWithholdingEvidence(in model.RuleInput) bool {
	for _, s := range in.IncomeStreams {
		if s.HasWithholding || s.Form2307Received {
			return true
		}
	}
	return false
}
