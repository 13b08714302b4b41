package handler

import (
	"io"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"tax-engine/internal/model"
)

const validAssessment = `{
	"tax_year": 2024,
	"user_type": "FREELANCER",
	"registration_status": "REGISTERED",
	"has_employment_income": false,
	"income_streams": [
		{
			"id": "inc-1",
			"income_type": "FREELANCE_SERVICE",
			"gross_amount": "500000",
			"frequency": "MONTHLY",
			"has_withholding": false,
			"withheld_amount": "0",
			"withholding_rate": "0",
			"form_2307_received": false
		}
	],
	"expenses": [],
	"selected_regime": "EIGHT_PERCENT_FLAT",
	"taxpayer_id": "123-456-789-000"
}`

func serve(t *testing.T, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)

	New(slog.New(slog.NewTextHandler(io.Discard, nil))).Handle(ctx)
	return ctx
}

func TestAssessEndpoint(t *testing.T) {
	ctx := serve(t, fasthttp.MethodPost, "/v1/assessments", validAssessment)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.AssessmentResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	assert.NotEmpty(t, resp.Metadata.AssessmentID)
	assert.NotEmpty(t, resp.Metadata.StartedAt)
	assert.Equal(t, model.OutcomeSuccess, resp.Metadata.Outcome)
	assert.Equal(t, resp.Assessment.EngineVersion, resp.Metadata.EngineVersion)

	assert.Equal(t, model.RegimeEightPercentFlat, resp.Assessment.EffectiveRegime)
	assert.Equal(t, "20000", resp.Assessment.ComputedValues.EstimatedTax.String())
	assert.Len(t, resp.Assessment.Receipt.Steps, 5)
}

func TestAssessNormalizesMissingRegime(t *testing.T) {
	body := `{
		"tax_year": 2024,
		"user_type": "FREELANCER",
		"registration_status": "REGISTERED",
		"income_streams": [],
		"expenses": [],
		"taxpayer_id": "123-456-789-000"
	}`
	ctx := serve(t, fasthttp.MethodPost, "/v1/assessments", body)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.AssessmentResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	assert.True(t, resp.Assessment.EffectiveRegime.Concrete(),
		"an omitted regime resolves to the recommendation")
	assert.Contains(t, resp.Assessment.Receipt.Completeness.Warnings, "selected_regime_undetermined")
}

func TestAssessRejectsMalformedBody(t *testing.T) {
	ctx := serve(t, fasthttp.MethodPost, "/v1/assessments", `{"tax_year": `)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var e model.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
	assert.Equal(t, fasthttp.StatusBadRequest, e.Status)
	assert.Contains(t, e.Message, "Invalid request body")
}

func TestAssessValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "tax year out of range",
			body: `{"tax_year": 1999, "user_type": "FREELANCER", "registration_status": "REGISTERED"}`,
			want: "tax_year",
		},
		{
			name: "unknown user type",
			body: `{"tax_year": 2024, "user_type": "CORPORATION", "registration_status": "REGISTERED"}`,
			want: "user_type",
		},
		{
			name: "unknown registration status",
			body: `{"tax_year": 2024, "user_type": "FREELANCER", "registration_status": "MAYBE"}`,
			want: "registration_status",
		},
		{
			name: "negative amount",
			body: `{"tax_year": 2024, "user_type": "FREELANCER", "registration_status": "REGISTERED",
				"income_streams": [{"id": "inc-1", "income_type": "FREELANCE_SERVICE",
				"gross_amount": "-5", "frequency": "MONTHLY"}]}`,
			want: "gross_amount",
		},
		{
			name: "withholding rate above one",
			body: `{"tax_year": 2024, "user_type": "FREELANCER", "registration_status": "REGISTERED",
				"income_streams": [{"id": "inc-1", "income_type": "FREELANCE_SERVICE",
				"gross_amount": "100", "frequency": "MONTHLY", "withholding_rate": "1.5"}]}`,
			want: "withholding_rate",
		},
		{
			name: "unknown expense category",
			body: `{"tax_year": 2024, "user_type": "FREELANCER", "registration_status": "REGISTERED",
				"expenses": [{"id": "exp-1", "category": "FUN", "amount": "10"}]}`,
			want: "category",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := serve(t, fasthttp.MethodPost, "/v1/assessments", c.body)

			require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

			var e model.ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
			assert.Contains(t, e.Message, c.want)
		})
	}
}

func TestExplanationsEndpoint(t *testing.T) {
	ctx := serve(t, fasthttp.MethodGet, "/v1/explanations", "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var list []struct {
		ModuleID string `json:"module_id"`
		Summary  string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &list))
	require.Len(t, list, 5)
	assert.Equal(t, "REGIME_DETERMINATION", list[0].ModuleID)
}

func TestExplanationByModule(t *testing.T) {
	ctx := serve(t, fasthttp.MethodGet, "/v1/explanations/TAX_COMPUTATION", "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var e struct {
		ModuleID string `json:"module_id"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
	assert.Equal(t, "TAX_COMPUTATION", e.ModuleID)

	ctx = serve(t, fasthttp.MethodGet, "/v1/explanations/NOPE", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestHealthz(t *testing.T) {
	ctx := serve(t, fasthttp.MethodGet, "/healthz", "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestUnknownRoute(t *testing.T) {
	ctx := serve(t, fasthttp.MethodGet, "/v1/unknown", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	// Wrong method on a known path is not found either.
	ctx = serve(t, fasthttp.MethodGet, "/v1/assessments", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
