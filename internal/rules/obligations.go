package rules

import (
	"fmt"

	"tax-engine/internal/forms"
	"tax-engine/internal/model"
)

// FilingObligations derives the filings the taxpayer owes. Every rule is
// evaluated; the emission order below is fixed and ids restart at OBL-1 on
// each call.
type FilingObligations struct{}

func (FilingObligations) ID() ModuleID    { return ModuleFilingObligations }
func (FilingObligations) Version() string { return "1.0.0" }

// Evaluate emits the obligation list for the resolved regime. A record with
// Applicable=false is a deliberate signal, not an omission: the percentage
// tax record under the flat regime documents why no filing is due.
func (FilingObligations) Evaluate(in model.RuleInput, regime model.TaxRegime) []model.Obligation {
	flat := regime == model.RegimeEightPercentFlat

	var out []model.Obligation
	add := func(code string, applicable bool, notes string) {
		f, ok := forms.Lookup(code)
		if !ok {
			return
		}
		out = append(out, model.Obligation{
			ID:          fmt.Sprintf("OBL-%d", len(out)+1),
			FormCode:    f.Code,
			Name:        f.Name,
			Description: f.Description,
			Frequency:   f.Frequency,
			Applicable:  applicable,
			Notes:       notes,
		})
	}

	if in.UserType.Valid() {
		add(forms.Code1701Q, true, "Covers the first three quarters; the annual return settles the year.")
	}

	switch {
	case in.UserType == model.UserMixedIncome:
		add(forms.Code1701, true, "Consolidates business and employment income; attach the employer withholding certificate.")
	case flat:
		add(forms.Code1701, true, "Reports the year under the 8% flat election.")
	default:
		add(forms.Code1701, true, "Reports income after deductions under the graduated table.")
	}

	percentageTaxUser := in.UserType == model.UserFreelancer ||
		in.UserType == model.UserSelfEmployed ||
		in.UserType == model.UserMicroSmallBusiness
	if flat {
		add(forms.Code2551Q, false, "The 8% flat rate replaces the quarterly percentage tax; no separate filing is due.")
	} else if percentageTaxUser {
		add(forms.Code2551Q, true, "3% percentage tax on gross receipts while below the VAT threshold.")
	}

	if in.RegistrationStatus == model.RegistrationNotRegistered {
		add(forms.Code1901, true, "Register before the first sale or engagement.")
	}
	if in.RegistrationStatus == model.RegistrationRegistered {
		add(forms.Code0605, true, "Due each January while the registration stays active.")
	}

	if anyWithholding(in) {
		add(forms.Code2307, true, "Collect one certificate per withholding client each quarter; they back the claimed credits.")
	}
	if in.HasEmploymentIncome {
		add(forms.Code2316, true, "Request the certificate from the employer by the end of January.")
	}

	if !(in.UserType == model.UserMixedIncome && !anyBusinessStream(in)) {
		if flat {
			add(forms.CodeBooks, true, "Simplified books of accounts are sufficient under the flat rate.")
		} else {
			add(forms.CodeBooks, true, "Maintain full books and keep the receipts supporting every deduction.")
		}
	}

	return out
}
