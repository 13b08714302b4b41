package rules

// Explanation is the plain-language documentation of one rule module. The
// table is static and input-independent: it narrates what a module does,
// never what it computed for a particular taxpayer, and serving it cannot
// alter any computed value.
type Explanation struct {
	ModuleID ModuleID `json:"module_id"`
	Summary  string   `json:"summary"`
	Beginner string   `json:"beginner_text"`
	Examples []string `json:"example_scenarios"`
}

var explanationTable = map[ModuleID]Explanation{
	ModuleRegimeDetermination: {
		ModuleID: ModuleRegimeDetermination,
		Summary:  "Compares the 8% flat rate against the graduated table and recommends the cheaper eligible regime.",
		Beginner: "Self-employed taxpayers below the VAT threshold can pick between two ways of being taxed: a single 8% rate on income above 250,000 with no expense deductions, or the graduated brackets applied after deducting expenses. This step prices both and tells you which one costs less, and why.",
		Examples: []string{
			"A freelancer earning 500,000 with few expenses pays 20,000 under the flat rate but more under the brackets, so the flat rate is recommended.",
			"A trader whose deductible expenses are over 40% of receipts keeps more by itemizing, so the graduated regime is recommended.",
			"A business past 3,000,000 in receipts is no longer eligible for the flat rate at all.",
		},
	},
	ModuleTaxComputation: {
		ModuleID: ModuleTaxComputation,
		Summary:  "Computes the year's exact liability under the chosen regime and splits it into quarterly payments.",
		Beginner: "Once a regime is fixed, this step does the arithmetic: sum the income, apply the deduction the regime allows, run the rate, subtract what clients already withheld, and divide what remains into three quarterly payments plus an annual settlement.",
		Examples: []string{
			"Gross receipts of 300,000 under the flat rate owe 8% of 50,000, which is 4,000; if 4,000 or more was already withheld, nothing is left to pay.",
			"Taxable income of 400,000 under the brackets owes exactly 22,500.",
		},
	},
	ModuleFilingObligations: {
		ModuleID: ModuleFilingObligations,
		Summary:  "Lists every return and registration the taxpayer owes, including ones explicitly marked not applicable.",
		Beginner: "Your profile decides which forms you file: quarterly and annual income tax returns, the percentage tax return unless the 8% rate replaces it, registration forms, and certificate tracking. Forms that do not apply are still listed with the reason, so nothing looks forgotten.",
		Examples: []string{
			"A flat-rate freelancer sees the percentage tax return marked not applicable with a note that the 8% rate covers it.",
			"An unregistered seller is told to file the registration application before anything else.",
		},
	},
	ModuleDeadlineCalculation: {
		ModuleID: ModuleDeadlineCalculation,
		Summary:  "Converts each applicable obligation into dated deadlines with reminders and penalty notes.",
		Beginner: "Each form has fixed filing dates: quarterly income tax on May 15, August 15 and November 15, percentage tax on the 25th a month after each quarter, the annual return on April 15 of the next year. Dates landing on a weekend move to Monday. Registration has no date; it is simply due before you start.",
		Examples: []string{
			"For tax year 2024 the first quarterly return is due May 15, 2024 and the annual return April 15, 2025.",
			"A deadline falling on a Saturday shifts two days to the following Monday.",
		},
	},
	ModuleRiskAssessment: {
		ModuleID: ModuleRiskAssessment,
		Summary:  "Flags compliance risks in the declared data, graded from informational to needs-a-CPA.",
		Beginner: "This step reads the same numbers and looks for trouble: earning without being registered, receipts close to or over the VAT threshold, withholding claimed without certificates, expense patterns that do not fit the chosen regime. Each finding says what it affects and what to do about it.",
		Examples: []string{
			"Income declared while unregistered raises the most serious flag and a referral to a CPA.",
			"Receipts at 85% of the VAT threshold raise a warning to start tracking monthly.",
		},
	},
}

// ExplainModule returns the static explanation for one module.
func ExplainModule(id ModuleID) (Explanation, bool) {
	e, ok := explanationTable[id]
	return e, ok
}

// Explanations returns all module explanations in pipeline order.
func Explanations() []Explanation {
	out := make([]Explanation, 0, len(moduleOrder))
	for _, id := range moduleOrder {
		out = append(out, explanationTable[id])
	}
	return out
}
