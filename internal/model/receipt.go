package model

import "tax-engine/internal/jsonpatch"

// ReasoningStep records one pipeline stage: what ran, what it saw, what it
// produced, and a one-sentence account of why. Digests are canonical-JSON
// hashes so a stored receipt can be checked against a re-run byte for byte.
type ReasoningStep struct {
	Step          int    `json:"step"`
	ModuleID      string `json:"module_id"`
	ModuleVersion string `json:"module_version"`
	InputDigest   string `json:"input_digest"`
	OutputDigest  string `json:"output_digest"`
	Explanation   string `json:"explanation"`
}

// Completeness scores how fully the taxpayer's declared snapshot supports
// the assessment. Missing fields weigh a full point, warnings half.
type Completeness struct {
	MissingFields []string `json:"missing_fields"`
	Warnings      []string `json:"warnings"`
	Score         int      `json:"score"`
}

// ReasoningReceipt is the auditable trail of one assessment: the ordered
// steps, the adjustments the orchestrator made to the declared input
// (regime resolution), the ids of the static explanations that apply, and
// the completeness assessment of the original input.
type ReasoningReceipt struct {
	Steps            []ReasoningStep `json:"steps"`
	InputAdjustments []jsonpatch.Op  `json:"input_adjustments"`
	ExplanationIDs   []string        `json:"explanation_ids"`
	Completeness     Completeness    `json:"completeness"`
}

// AssessmentOutput bundles everything one engine invocation produces. Every
// entity in it is created fresh inside that invocation and owned by the
// caller afterwards; the engine keeps no reference.
type AssessmentOutput struct {
	EngineVersion    string                 `json:"engine_version"`
	TaxYear          int                    `json:"tax_year"`
	EffectiveRegime  TaxRegime              `json:"effective_regime"`
	RegimeComparison RegimeComparisonResult `json:"regime_comparison"`
	ComputedValues   ComputedValues         `json:"computed_values"`
	Obligations      []Obligation           `json:"obligations"`
	Deadlines        []Deadline             `json:"deadlines"`
	RiskFlags        []RiskFlag             `json:"risk_flags"`
	Receipt          ReasoningReceipt       `json:"reasoning_receipt"`
}
