// Package engine orchestrates the assessment pipeline: regime
// determination, tax computation, filing obligations, deadline calculation,
// and risk assessment, in that fixed order, assembling a reasoning receipt
// along the way.
//
// RunAssessment is a pure function. It performs no I/O, reads no clock,
// draws no randomness, and never mutates its input, so identical inputs
// produce byte-identical outputs and a single engine serves any number of
// concurrent callers without locks.
package engine

import (
	"fmt"

	"tax-engine/internal/jsonpatch"
	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

// Version tags every assessment output. Bump it whenever a rule change can
// alter computed values for the same input.
const Version = "1.0.0"

// stepInput is the digest shape of the modules that consume the input and
// the resolved regime.
type stepInput struct {
	Input  model.RuleInput `json:"input"`
	Regime model.TaxRegime `json:"regime"`
}

// deadlineInput is the digest shape of the deadline module, which also
// consumes the derived obligations.
type deadlineInput struct {
	Input       model.RuleInput    `json:"input"`
	Regime      model.TaxRegime    `json:"regime"`
	Obligations []model.Obligation `json:"obligations"`
}

// RunAssessment runs the five rule modules against the declared input.
//
// The regime determination result always reflects the declared input; if
// the taxpayer has not selected a concrete regime, the recommendation
// becomes the effective regime for every later module. That resolution is
// the only adjustment the orchestrator ever makes, and it is recorded in
// the receipt as an RFC 6902 patch against the declared input.
//
// Module faults propagate unchanged; there is no partial output.
func RunAssessment(input model.RuleInput) (model.AssessmentOutput, error) {
	var steps []model.ReasoningStep
	record := func(m rules.Module, in, out any, explanation string) error {
		inDigest, err := digest(in)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", len(steps)+1, m.ID(), err)
		}
		outDigest, err := digest(out)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", len(steps)+1, m.ID(), err)
		}
		steps = append(steps, model.ReasoningStep{
			Step:          len(steps) + 1,
			ModuleID:      string(m.ID()),
			ModuleVersion: m.Version(),
			InputDigest:   inDigest,
			OutputDigest:  outDigest,
			Explanation:   explanation,
		})
		return nil
	}

	regimeMod := rules.RegimeDetermination{}
	comparison := regimeMod.Evaluate(input)
	if err := record(regimeMod, input, comparison, comparison.Explanation); err != nil {
		return model.AssessmentOutput{}, err
	}

	regime := input.SelectedRegime
	if !regime.Concrete() {
		regime = comparison.Recommended
	}
	effectiveInput := input
	effectiveInput.SelectedRegime = regime
	adjustments, err := jsonpatch.DiffValues(input, effectiveInput)
	if err != nil {
		return model.AssessmentOutput{}, fmt.Errorf("record regime resolution: %w", err)
	}
	if adjustments == nil {
		adjustments = []jsonpatch.Op{}
	}

	taxMod := rules.TaxComputation{}
	computed := taxMod.Evaluate(input, regime)
	if err := record(taxMod, stepInput{input, regime}, computed, fmt.Sprintf(
		"Computed a liability of %s on taxable income of %s under the %s regime, leaving %s payable after %s in credits.",
		computed.EstimatedTax.StringFixed(2), computed.TaxableIncome.StringFixed(2),
		regime, computed.NetTaxPayable.StringFixed(2), computed.CreditsApplied.StringFixed(2),
	)); err != nil {
		return model.AssessmentOutput{}, err
	}

	obligationsMod := rules.FilingObligations{}
	obligations := obligationsMod.Evaluate(input, regime)
	applicable := 0
	for _, ob := range obligations {
		if ob.Applicable {
			applicable++
		}
	}
	if err := record(obligationsMod, stepInput{input, regime}, obligations, fmt.Sprintf(
		"Derived %d filing obligations, %d of them applicable.", len(obligations), applicable,
	)); err != nil {
		return model.AssessmentOutput{}, err
	}

	deadlinesMod := rules.DeadlineCalculation{}
	deadlines := deadlinesMod.Evaluate(input, regime, obligations)
	if err := record(deadlinesMod, deadlineInput{input, regime, obligations}, deadlines, fmt.Sprintf(
		"Scheduled %d filing deadlines for tax year %d.", len(deadlines), input.TaxYear,
	)); err != nil {
		return model.AssessmentOutput{}, err
	}

	riskMod := rules.RiskAssessment{}
	riskFlags := riskMod.Evaluate(input, regime)
	if riskFlags == nil {
		riskFlags = []model.RiskFlag{}
	}
	if err := record(riskMod, stepInput{input, regime}, riskFlags, riskSummary(riskFlags)); err != nil {
		return model.AssessmentOutput{}, err
	}

	explanationIDs := make([]string, 0, len(steps))
	for _, s := range steps {
		explanationIDs = append(explanationIDs, s.ModuleID)
	}

	return model.AssessmentOutput{
		EngineVersion:    Version,
		TaxYear:          input.TaxYear,
		EffectiveRegime:  regime,
		RegimeComparison: comparison,
		ComputedValues:   computed,
		Obligations:      obligations,
		Deadlines:        deadlines,
		RiskFlags:        riskFlags,
		Receipt: model.ReasoningReceipt{
			Steps:            steps,
			InputAdjustments: adjustments,
			ExplanationIDs:   explanationIDs,
			Completeness:     assessCompleteness(input),
		},
	}, nil
}

func riskSummary(flags []model.RiskFlag) string {
	if len(flags) == 0 {
		return "Raised no risk flags."
	}
	max := model.SeverityNone
	for _, f := range flags {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return fmt.Sprintf("Raised %d risk flags, the most severe at %s.", len(flags), max)
}

// assessCompleteness scores the declared input, not the effective one: the
// point is to tell the taxpayer what their own declaration lacks.
func assessCompleteness(in model.RuleInput) model.Completeness {
	missing := []string{}
	warnings := []string{}

	if in.TaxpayerID == "" {
		missing = append(missing, "taxpayer_id")
	}
	if len(in.IncomeStreams) == 0 {
		missing = append(missing, "income_streams")
	}
	if !in.SelectedRegime.Concrete() {
		warnings = append(warnings, "selected_regime_undetermined")
	}
	for _, s := range in.IncomeStreams {
		if s.HasWithholding && !s.Form2307Received {
			warnings = append(warnings, "withholding_missing_certificates")
			break
		}
	}

	// One point per missing field, half per warning, on a ten-point scale
	// rendered as 0-100. Integer arithmetic keeps it exact.
	score := 100 - 10*len(missing) - 5*len(warnings)
	if score < 0 {
		score = 0
	}

	return model.Completeness{
		MissingFields: missing,
		Warnings:      warnings,
		Score:         score,
	}
}
