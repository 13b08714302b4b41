package model

import "github.com/shopspring/decimal"

// RuleInput is the declared income/expense snapshot an assessment runs on.
// It is immutable for the duration of one engine invocation; the engine
// never writes to it.
type RuleInput struct {
	TaxYear             int                `json:"tax_year"`
	UserType            UserType           `json:"user_type"`
	RegistrationStatus  RegistrationStatus `json:"registration_status"`
	HasEmploymentIncome bool               `json:"has_employment_income"`
	IncomeStreams       []IncomeStream     `json:"income_streams"`
	Expenses            []Expense          `json:"expenses"`
	SelectedRegime      TaxRegime          `json:"selected_regime"`
	TaxpayerID          string             `json:"taxpayer_id,omitempty"`
}

// IncomeStream is one declared source of income. WithheldAmount and
// WithholdingRate are zero when HasWithholding is false.
type IncomeStream struct {
	ID               string          `json:"id"`
	Type             IncomeType      `json:"income_type"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	Frequency        Frequency       `json:"frequency"`
	HasWithholding   bool            `json:"has_withholding"`
	WithheldAmount   decimal.Decimal `json:"withheld_amount"`
	WithholdingRate  decimal.Decimal `json:"withholding_rate"`
	Form2307Received bool            `json:"form_2307_received"`
}

// Expense is one declared expense line.
type Expense struct {
	ID           string          `json:"id"`
	Category     ExpenseCategory `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	IsDeductible bool            `json:"is_deductible"`
}
