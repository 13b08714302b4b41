package model

// AssessmentMetadata wraps an assessment with request-scoped bookkeeping.
// It is produced by the API layer, never by the engine: the engine output
// must stay byte-identical across runs, while ids and timings may not.
type AssessmentMetadata struct {
	AssessmentID  string `json:"assessment_id"`
	EngineVersion string `json:"engine_version"`
	StartedAt     string `json:"started_at"`
	CompletedAt   string `json:"completed_at"`
	DurationMs    int64  `json:"duration_ms"`
	Outcome       string `json:"outcome"`
}

// OutcomeSuccess is the only outcome an envelope ever carries: failed
// assessments return an ErrorResponse instead of an envelope.
const OutcomeSuccess = "SUCCESS"

// AssessmentResponse is the API envelope: metadata plus the deterministic
// assessment.
type AssessmentResponse struct {
	Metadata   AssessmentMetadata `json:"assessment_metadata"`
	Assessment AssessmentOutput   `json:"assessment"`
}

// ErrorResponse is the uniform error body for the API.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
