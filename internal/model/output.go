package model

import "github.com/shopspring/decimal"

// RegimeOption is one side of the regime comparison: the tax the taxpayer
// would owe under that regime, with the trade-offs spelled out.
type RegimeOption struct {
	Regime        TaxRegime       `json:"regime"`
	EstimatedTax  decimal.Decimal `json:"estimated_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Pros          []string        `json:"pros"`
	Cons          []string        `json:"cons"`
}

// RegimeComparisonResult is the outcome of regime determination.
type RegimeComparisonResult struct {
	Recommended       TaxRegime       `json:"recommended_regime"`
	EligibleForFlat   bool            `json:"eligible_for_flat"`
	EligibilityReason string          `json:"eligibility_reason"`
	BusinessIncome    decimal.Decimal `json:"business_income"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	FlatOption        RegimeOption    `json:"flat_option"`
	GraduatedOption   RegimeOption    `json:"graduated_option"`
	Explanation       string          `json:"explanation"`
}

// QuarterlyBreakdown splits the net tax payable into three equal quarterly
// payments plus an annual true-up that absorbs rounding.
type QuarterlyBreakdown struct {
	Q1           decimal.Decimal `json:"q1"`
	Q2           decimal.Decimal `json:"q2"`
	Q3           decimal.Decimal `json:"q3"`
	AnnualTrueUp decimal.Decimal `json:"annual_true_up"`
}

// ComputedValues is the exact liability under the effective regime.
// DeductionUsed is zero under the flat regime, where no deduction applies.
type ComputedValues struct {
	Regime           TaxRegime          `json:"regime"`
	GrossIncome      decimal.Decimal    `json:"gross_income"`
	BusinessIncome   decimal.Decimal    `json:"business_income"`
	EmploymentIncome decimal.Decimal    `json:"employment_income"`
	TotalDeductions  decimal.Decimal    `json:"total_deductions"`
	DeductionUsed    decimal.Decimal    `json:"deduction_used"`
	TaxableIncome    decimal.Decimal    `json:"taxable_income"`
	EstimatedTax     decimal.Decimal    `json:"estimated_tax"`
	CreditsApplied   decimal.Decimal    `json:"credits_applied"`
	NetTaxPayable    decimal.Decimal    `json:"net_tax_payable"`
	Quarterly        QuarterlyBreakdown `json:"quarterly_breakdown"`
}

// Obligation is one filing the taxpayer is (or is explicitly not) required
// to make. IDs are sequential within a single assessment and carry no
// meaning across assessments.
type Obligation struct {
	ID          string              `json:"id"`
	FormCode    string              `json:"form_code"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Frequency   ObligationFrequency `json:"frequency"`
	Applicable  bool                `json:"is_applicable"`
	Notes       string              `json:"notes,omitempty"`
}

// DueASAP is the sentinel due date for obligations that must be settled
// before doing business rather than by a calendar date.
const DueASAP = "ASAP"

// Deadline is a concrete due date derived from an applicable obligation.
// DueDate is an ISO date (YYYY-MM-DD) or the DueASAP sentinel.
type Deadline struct {
	ID           string `json:"id"`
	ObligationID string `json:"obligation_id"`
	FormCode     string `json:"form_code"`
	Label        string `json:"label"`
	Period       string `json:"period"`
	DueDate      string `json:"due_date"`
	ReminderDays []int  `json:"reminder_days,omitempty"`
	PenaltyInfo  string `json:"penalty_info"`
}

// RiskFlag is one triggered compliance-risk check.
type RiskFlag struct {
	ID                string   `json:"id"`
	Code              string   `json:"code"`
	Severity          Severity `json:"severity"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	RecommendedAction string   `json:"recommended_action"`
	AffectedFields    []string `json:"affected_fields"`
}
