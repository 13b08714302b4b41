// Package forms is the static catalog of filing forms the obligations and
// deadline modules emit against. The catalog is a fixed array, not a
// runtime registry: the set of forms the engine knows is closed, and every
// assessment must see the same catalog.
package forms

import "tax-engine/internal/model"

// Canonical form codes.
const (
	Code1701Q = "1701Q" // quarterly income tax return
	Code1701  = "1701"  // annual income tax return
	Code2551Q = "2551Q" // quarterly percentage tax return
	Code1901  = "1901"  // application for registration
	Code0605  = "0605"  // annual registration fee
	Code2307  = "2307"  // certificate of creditable tax withheld
	Code2316  = "2316"  // employer certificate of compensation and withholding
	CodeBooks = "BOOKS" // books of accounts
)

// Form is the catalog entry for one filing.
type Form struct {
	Code        string
	Name        string
	Description string
	Frequency   model.ObligationFrequency
}

var catalog = [...]Form{
	{
		Code:        Code1701Q,
		Name:        "Quarterly Income Tax Return",
		Description: "Declares income earned during the quarter and pays the quarterly installment of income tax.",
		Frequency:   model.ObligationQuarterly,
	},
	{
		Code:        Code1701,
		Name:        "Annual Income Tax Return",
		Description: "Consolidates the year's income, deductions, and credits, and settles the remaining balance.",
		Frequency:   model.ObligationAnnual,
	},
	{
		Code:        Code2551Q,
		Name:        "Quarterly Percentage Tax Return",
		Description: "Pays the 3% percentage tax on gross receipts for non-VAT taxpayers under the graduated regime.",
		Frequency:   model.ObligationQuarterly,
	},
	{
		Code:        Code1901,
		Name:        "Application for Registration",
		Description: "Registers the taxpayer as self-employed or a professional before starting business.",
		Frequency:   model.ObligationAnnual,
	},
	{
		Code:        Code0605,
		Name:        "Annual Registration Fee",
		Description: "Pays the fixed annual registration fee for a registered business or profession.",
		Frequency:   model.ObligationAnnual,
	},
	{
		Code:        Code2307,
		Name:        "Withholding Certificate Tracking",
		Description: "Collects the certificates proving clients already remitted tax on the taxpayer's behalf.",
		Frequency:   model.ObligationQuarterly,
	},
	{
		Code:        Code2316,
		Name:        "Employer Withholding Certificate",
		Description: "Obtains the employer-issued certificate of compensation paid and tax withheld.",
		Frequency:   model.ObligationAnnual,
	},
	{
		Code:        CodeBooks,
		Name:        "Books of Accounts",
		Description: "Maintains and registers the books recording income and expenses for the business.",
		Frequency:   model.ObligationAnnual,
	},
}

// Lookup returns the catalog entry for a form code.
func Lookup(code string) (Form, bool) {
	for _, f := range catalog {
		if f.Code == code {
			return f, true
		}
	}
	return Form{}, false
}

// All returns the catalog in its fixed order.
func All() []Form {
	out := make([]Form, len(catalog))
	copy(out, catalog[:])
	return out
}
