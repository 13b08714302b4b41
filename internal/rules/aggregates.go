package rules

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
)

// Aggregates over the declared streams and expenses. Empty collections
// yield zero values, never errors.

func grossIncome(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range in.IncomeStreams {
		sum = sum.Add(s.GrossAmount)
	}
	return sum
}

// businessIncome is the gross of every non-employment stream, the base all
// regime rules apply to. Employment income is taxed at source and stays out
// of it.
func businessIncome(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range in.IncomeStreams {
		if s.Type != model.IncomeEmployment {
			sum = sum.Add(s.GrossAmount)
		}
	}
	return sum
}

func employmentIncome(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range in.IncomeStreams {
		if s.Type == model.IncomeEmployment {
			sum = sum.Add(s.GrossAmount)
		}
	}
	return sum
}

// totalDeductions sums the expenses flagged deductible.
func totalDeductions(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range in.Expenses {
		if e.IsDeductible {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// totalExpenses sums every declared expense regardless of deductibility.
func totalExpenses(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range in.Expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// creditsApplied sums the amounts payers already withheld; they offset the
// computed tax as credits.
func creditsApplied(in model.RuleInput) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range in.IncomeStreams {
		if s.HasWithholding {
			sum = sum.Add(s.WithheldAmount)
		}
	}
	return sum
}

// withholdingTotals returns the withheld total and the gross of the streams
// it was withheld from, for effective-rate checks.
func withholdingTotals(in model.RuleInput) (withheld, base decimal.Decimal) {
	withheld, base = decimal.Zero, decimal.Zero
	for _, s := range in.IncomeStreams {
		if s.HasWithholding {
			withheld = withheld.Add(s.WithheldAmount)
			base = base.Add(s.GrossAmount)
		}
	}
	return withheld, base
}

func anyBusinessStream(in model.RuleInput) bool {
	for _, s := range in.IncomeStreams {
		if s.Type != model.IncomeEmployment {
			return true
		}
	}
	return false
}

func anyEmploymentStream(in model.RuleInput) bool {
	for _, s := range in.IncomeStreams {
		if s.Type == model.IncomeEmployment {
			return true
		}
	}
	return false
}

func anyWithholding(in model.RuleInput) bool {
	for _, s := range in.IncomeStreams {
		if s.HasWithholding {
			return true
		}
	}
	return false
}
