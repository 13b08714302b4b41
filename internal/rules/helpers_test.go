package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
)

// freelancer is the base fixture: one service stream, registered, tax year
// 2024, regime not yet chosen.
func freelancer(gross string) model.RuleInput {
	return model.RuleInput{
		TaxYear:            2024,
		UserType:           model.UserFreelancer,
		RegistrationStatus: model.RegistrationRegistered,
		IncomeStreams: []model.IncomeStream{{
			ID:          "inc-1",
			Type:        model.IncomeFreelanceService,
			GrossAmount: decimal.RequireFromString(gross),
			Frequency:   model.FrequencyMonthly,
		}},
		SelectedRegime: model.RegimeUndetermined,
		TaxpayerID:     "123-456-789-000",
	}
}

func withWithholding(in model.RuleInput, withheld string, certReceived bool) model.RuleInput {
	s := &in.IncomeStreams[0]
	s.HasWithholding = true
	s.WithheldAmount = decimal.RequireFromString(withheld)
	s.Form2307Received = certReceived
	return in
}

func withExpense(in model.RuleInput, amount string, deductible bool) model.RuleInput {
	in.Expenses = append(in.Expenses, model.Expense{
		ID:           fmt.Sprintf("exp-%d", len(in.Expenses)+1),
		Category:     model.ExpenseOfficeSupplies,
		Amount:       decimal.RequireFromString(amount),
		IsDeductible: deductible,
	})
	return in
}

func withEmployment(in model.RuleInput, gross string) model.RuleInput {
	in.HasEmploymentIncome = true
	in.IncomeStreams = append(in.IncomeStreams, model.IncomeStream{
		ID:          fmt.Sprintf("inc-%d", len(in.IncomeStreams)+1),
		Type:        model.IncomeEmployment,
		GrossAmount: decimal.RequireFromString(gross),
		Frequency:   model.FrequencyMonthly,
	})
	return in
}
