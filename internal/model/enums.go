package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// UserType classifies the taxpayer profile the rules operate on.
type UserType string

const (
	UserFreelancer         UserType = "FREELANCER"
	UserSelfEmployed       UserType = "SELF_EMPLOYED"
	UserMicroSmallBusiness UserType = "MICRO_SMALL_BUSINESS"
	UserMixedIncome        UserType = "MIXED_INCOME"
)

// Valid reports whether the value is one of the supported user types.
func (u UserType) Valid() bool {
	switch u {
	case UserFreelancer, UserSelfEmployed, UserMicroSmallBusiness, UserMixedIncome:
		return true
	}
	return false
}

// RegistrationStatus is the taxpayer's standing with the revenue authority.
type RegistrationStatus string

const (
	RegistrationNotRegistered RegistrationStatus = "NOT_REGISTERED"
	RegistrationPending       RegistrationStatus = "PENDING_REGISTRATION"
	RegistrationRegistered    RegistrationStatus = "REGISTERED"
	RegistrationNeedsUpdate   RegistrationStatus = "NEEDS_UPDATE"
)

func (r RegistrationStatus) Valid() bool {
	switch r {
	case RegistrationNotRegistered, RegistrationPending, RegistrationRegistered, RegistrationNeedsUpdate:
		return true
	}
	return false
}

// TaxRegime is the tax treatment applied to business income.
// RegimeUndetermined means the taxpayer has not chosen; the engine resolves
// it to a concrete regime exactly once per assessment.
type TaxRegime string

const (
	RegimeUndetermined     TaxRegime = "UNDETERMINED"
	RegimeGraduated        TaxRegime = "GRADUATED"
	RegimeEightPercentFlat TaxRegime = "EIGHT_PERCENT_FLAT"
)

func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeUndetermined, RegimeGraduated, RegimeEightPercentFlat, "":
		return true
	}
	return false
}

// Concrete reports whether the regime is an actual tax treatment rather
// than the unresolved sentinel.
func (r TaxRegime) Concrete() bool {
	return r == RegimeGraduated || r == RegimeEightPercentFlat
}

// IncomeType distinguishes employment income from the business income the
// regime rules apply to.
type IncomeType string

const (
	IncomeFreelanceService IncomeType = "FREELANCE_SERVICE"
	IncomeBusinessSales    IncomeType = "BUSINESS_SALES"
	IncomeEmployment       IncomeType = "EMPLOYMENT"
	IncomeRental           IncomeType = "RENTAL"
	IncomeRoyalties        IncomeType = "ROYALTIES"
	IncomeOther            IncomeType = "OTHER"
)

func (t IncomeType) Valid() bool {
	switch t {
	case IncomeFreelanceService, IncomeBusinessSales, IncomeEmployment, IncomeRental, IncomeRoyalties, IncomeOther:
		return true
	}
	return false
}

// Frequency is how often an income stream recurs.
type Frequency string

const (
	FrequencyOneTime   Frequency = "ONE_TIME"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyAnnual    Frequency = "ANNUAL"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// ExpenseCategory is the declared expense classification.
type ExpenseCategory string

const (
	ExpenseOfficeSupplies     ExpenseCategory = "OFFICE_SUPPLIES"
	ExpenseRent               ExpenseCategory = "RENT"
	ExpenseUtilities          ExpenseCategory = "UTILITIES"
	ExpenseTransportation     ExpenseCategory = "TRANSPORTATION"
	ExpenseCommunication      ExpenseCategory = "COMMUNICATION"
	ExpenseProfessionalFees   ExpenseCategory = "PROFESSIONAL_FEES"
	ExpenseDepreciation       ExpenseCategory = "DEPRECIATION"
	ExpenseSalariesWages      ExpenseCategory = "SALARIES_WAGES"
	ExpenseTaxesLicenses      ExpenseCategory = "TAXES_LICENSES"
	ExpenseInsurance          ExpenseCategory = "INSURANCE"
	ExpenseRepairsMaintenance ExpenseCategory = "REPAIRS_MAINTENANCE"
	ExpenseAdvertising        ExpenseCategory = "ADVERTISING"
	ExpenseTraining           ExpenseCategory = "TRAINING"
	ExpenseMeals              ExpenseCategory = "MEALS"
	ExpenseOther              ExpenseCategory = "OTHER"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseOfficeSupplies, ExpenseRent, ExpenseUtilities, ExpenseTransportation,
		ExpenseCommunication, ExpenseProfessionalFees, ExpenseDepreciation,
		ExpenseSalariesWages, ExpenseTaxesLicenses, ExpenseInsurance,
		ExpenseRepairsMaintenance, ExpenseAdvertising, ExpenseTraining,
		ExpenseMeals, ExpenseOther:
		return true
	}
	return false
}

// ObligationFrequency is the filing cadence of an obligation.
type ObligationFrequency string

const (
	ObligationMonthly   ObligationFrequency = "MONTHLY"
	ObligationQuarterly ObligationFrequency = "QUARTERLY"
	ObligationAnnual    ObligationFrequency = "ANNUAL"
)

// Severity orders risk flags by how urgently they need professional review.
// The numeric order is meaningful: None < Info < Warning < CpaReviewRequired.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityCpaReviewRequired
)

var severityNames = [...]string{"NONE", "INFO", "WARNING", "CPA_REVIEW_REQUIRED"}

func (s Severity) String() string {
	if s < SeverityNone || s > SeverityCpaReviewRequired {
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalJSON encodes the severity by name so the ordered scale stays
// readable on the wire.
func (s Severity) MarshalJSON() ([]byte, error) {
	if s < SeverityNone || s > SeverityCpaReviewRequired {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return json.Marshal(severityNames[s])
}

// UnmarshalJSON decodes a severity name back to its ordered value.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range severityNames {
		if n == name {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}
