// Package rules holds the five computation modules of the assessment
// pipeline. Modules are stateless; every Evaluate call derives its result
// from the arguments and the embedded regulatory table alone, so repeated
// calls with the same input reproduce the same output byte for byte.
package rules

// ModuleID identifies one rule module. The set is closed: the pipeline
// dispatches the five modules in a fixed compile-time order, never through
// a lookup by name.
type ModuleID string

const (
	ModuleRegimeDetermination ModuleID = "REGIME_DETERMINATION"
	ModuleTaxComputation      ModuleID = "TAX_COMPUTATION"
	ModuleFilingObligations   ModuleID = "FILING_OBLIGATIONS"
	ModuleDeadlineCalculation ModuleID = "DEADLINE_CALCULATION"
	ModuleRiskAssessment      ModuleID = "RISK_ASSESSMENT"
)

// moduleOrder is the pipeline order. It is a hard dependency chain: regime
// determination resolves the effective regime every later module reads, and
// deadline calculation consumes the obligations list.
var moduleOrder = [...]ModuleID{
	ModuleRegimeDetermination,
	ModuleTaxComputation,
	ModuleFilingObligations,
	ModuleDeadlineCalculation,
	ModuleRiskAssessment,
}

// Module is the identity surface shared by the five rule modules. The
// evaluation signatures differ per module, so execution stays typed at the
// call site; the interface exists for receipts and explanations.
type Module interface {
	ID() ModuleID
	Version() string
}
