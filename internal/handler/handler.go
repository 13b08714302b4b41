// Package handler is the HTTP boundary of the assessment engine. It owns
// everything the engine deliberately does not: decoding, input validation,
// request ids, timestamps, logging, and panic recovery.
package handler

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"tax-engine/internal/engine"
	"tax-engine/internal/model"
	"tax-engine/internal/rules"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// Handle is the fasthttp entry point for every route.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("panic while serving request",
				"path", string(ctx.Path()), "panic", fmt.Sprint(r))
			writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
		}
		h.log.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/v1/assessments" && method == fasthttp.MethodPost:
		h.assess(ctx)
	case path == "/v1/explanations" && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, rules.Explanations())
	case strings.HasPrefix(path, "/v1/explanations/") && method == fasthttp.MethodGet:
		h.explanation(ctx, strings.TrimPrefix(path, "/v1/explanations/"))
	case path == "/healthz" && method == fasthttp.MethodGet:
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) assess(ctx *fasthttp.RequestCtx) {
	started := time.Now().UTC()

	var input model.RuleInput
	if err := json.Unmarshal(ctx.PostBody(), &input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if msg, ok := validateInput(&input); !ok {
		writeError(ctx, fasthttp.StatusBadRequest, msg)
		return
	}

	out, err := engine.RunAssessment(input)
	if err != nil {
		h.log.Error("assessment failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Assessment failed")
		return
	}

	completed := time.Now().UTC()
	writeJSON(ctx, fasthttp.StatusOK, model.AssessmentResponse{
		Metadata: model.AssessmentMetadata{
			AssessmentID:  uuid.New().String(),
			EngineVersion: engine.Version,
			StartedAt:     started.Format(time.RFC3339),
			CompletedAt:   completed.Format(time.RFC3339),
			DurationMs:    completed.Sub(started).Milliseconds(),
			Outcome:       model.OutcomeSuccess,
		},
		Assessment: out,
	})
}

func (h *Handler) explanation(ctx *fasthttp.RequestCtx, id string) {
	e, ok := rules.ExplainModule(rules.ModuleID(id))
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Unknown module: %s", id))
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, e)
}

// validateInput enforces the boundary contract. The engine assumes
// well-formed input and never re-validates, so everything must be caught
// here. An absent selected regime normalizes to the undetermined sentinel.
func validateInput(in *model.RuleInput) (string, bool) {
	if in.TaxYear < 2000 || in.TaxYear > 2100 {
		return fmt.Sprintf("tax_year %d is out of range", in.TaxYear), false
	}
	if !in.UserType.Valid() {
		return fmt.Sprintf("unknown user_type %q", in.UserType), false
	}
	if !in.RegistrationStatus.Valid() {
		return fmt.Sprintf("unknown registration_status %q", in.RegistrationStatus), false
	}
	if in.SelectedRegime == "" {
		in.SelectedRegime = model.RegimeUndetermined
	}
	if !in.SelectedRegime.Valid() {
		return fmt.Sprintf("unknown selected_regime %q", in.SelectedRegime), false
	}
	for _, s := range in.IncomeStreams {
		if !s.Type.Valid() {
			return fmt.Sprintf("income stream %s: unknown income_type %q", s.ID, s.Type), false
		}
		if !s.Frequency.Valid() {
			return fmt.Sprintf("income stream %s: unknown frequency %q", s.ID, s.Frequency), false
		}
		if s.GrossAmount.IsNegative() {
			return fmt.Sprintf("income stream %s: gross_amount must not be negative", s.ID), false
		}
		if s.WithheldAmount.IsNegative() {
			return fmt.Sprintf("income stream %s: withheld_amount must not be negative", s.ID), false
		}
		if s.WithholdingRate.IsNegative() || s.WithholdingRate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Sprintf("income stream %s: withholding_rate must be between 0 and 1", s.ID), false
		}
	}
	for _, e := range in.Expenses {
		if !e.Category.Valid() {
			return fmt.Sprintf("expense %s: unknown category %q", e.ID, e.Category), false
		}
		if e.Amount.IsNegative() {
			return fmt.Sprintf("expense %s: amount must not be negative", e.ID), false
		}
	}
	return "", true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Encoding failed")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
