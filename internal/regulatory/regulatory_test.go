package regulatory

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesHeadlineConstants(t *testing.T) {
	cfg := Values()

	assert.Equal(t, "2024R1", cfg.DataVersion)
	assert.True(t, cfg.Thresholds.VATAnnualReceipts.Equal(decimal.RequireFromString("3000000")))
	assert.True(t, cfg.Thresholds.PersonalExemption.Equal(decimal.RequireFromString("250000")))
	assert.True(t, cfg.Thresholds.FlatRate.Equal(decimal.RequireFromString("0.08")))
	assert.True(t, cfg.Thresholds.OSDRate.Equal(decimal.RequireFromString("0.40")))
	assert.True(t, cfg.Thresholds.VATWarningRatio.Equal(decimal.RequireFromString("0.80")))

	assert.True(t, cfg.Risk.HighWithholdingRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, cfg.Risk.HighWithholdingAmount.Equal(decimal.RequireFromString("50000")))
	assert.True(t, cfg.Risk.FlatExpenseRatio.Equal(decimal.RequireFromString("0.50")))
	assert.True(t, cfg.Risk.WithholdingEvidenceIncome.Equal(decimal.RequireFromString("500000")))

	assert.NotEmpty(t, cfg.StandardPenalty)
}

func TestBracketTable(t *testing.T) {
	brackets := Values().Brackets
	require.Len(t, brackets, 6)

	wantRates := []string{"0", "0.15", "0.20", "0.25", "0.30", "0.35"}
	wantBase := []string{"0", "0", "22500", "102500", "402500", "2202500"}
	for i, b := range brackets {
		assert.True(t, b.Rate.Equal(decimal.RequireFromString(wantRates[i])), "rate of band %d", i)
		assert.True(t, b.BaseTax.Equal(decimal.RequireFromString(wantBase[i])), "base tax of band %d", i)
	}

	assert.True(t, brackets[0].Min.IsZero())
	assert.False(t, brackets[0].Unbounded)
	assert.True(t, brackets[5].Unbounded)

	for i := 1; i < len(brackets); i++ {
		assert.True(t, brackets[i].Lower().Equal(brackets[i-1].Max),
			"band %d lower edge must meet the previous ceiling", i)
	}
}

func TestBracketContains(t *testing.T) {
	brackets := Values().Brackets
	first, second, top := brackets[0], brackets[1], brackets[5]

	assert.True(t, first.Contains(decimal.Zero))
	assert.True(t, first.Contains(decimal.RequireFromString("250000")))
	assert.False(t, first.Contains(decimal.RequireFromString("250000.01")))

	assert.True(t, second.Lower().Equal(decimal.RequireFromString("250000")))
	assert.False(t, second.Contains(decimal.RequireFromString("250000")))
	assert.True(t, second.Contains(decimal.RequireFromString("250000.01")))
	assert.True(t, second.Contains(decimal.RequireFromString("400000")))
	assert.False(t, second.Contains(decimal.RequireFromString("400000.01")))

	assert.True(t, top.Contains(decimal.RequireFromString("50000000")))
}

func TestFormSchedules(t *testing.T) {
	cfg := Values()

	q1701, ok := cfg.Schedule("1701Q")
	require.True(t, ok)
	require.Len(t, q1701.Quarters, 3)
	for i, q := range q1701.Quarters {
		assert.Equal(t, i+1, q.Quarter)
		assert.Equal(t, 15, q.Day)
		assert.False(t, q.NextYear)
	}
	assert.Equal(t, []int{5, 8, 11}, []int{q1701.Quarters[0].Month, q1701.Quarters[1].Month, q1701.Quarters[2].Month})
	assert.Nil(t, q1701.Annual)

	q2551, ok := cfg.Schedule("2551Q")
	require.True(t, ok)
	require.Len(t, q2551.Quarters, 4)
	assert.True(t, q2551.Quarters[3].NextYear, "the fourth quarter settles in the following year")

	annual, ok := cfg.Schedule("1701")
	require.True(t, ok)
	require.NotNil(t, annual.Annual)
	assert.Equal(t, 4, annual.Annual.Month)
	assert.Equal(t, 15, annual.Annual.Day)
	assert.True(t, annual.Annual.NextYear)
	assert.Equal(t, []int{60, 30, 14, 7, 3, 1}, annual.Reminders)

	fee, ok := cfg.Schedule("0605")
	require.True(t, ok)
	require.NotNil(t, fee.Annual)
	assert.False(t, fee.Annual.NextYear, "the registration fee is due within the tax year")

	for _, code := range []string{"1901", "2307", "BOOKS", "nope"} {
		_, ok := cfg.Schedule(code)
		assert.False(t, ok, code)
	}
}

const validTable = `data_version: "test"
thresholds:
  vat_annual_receipts: "3000000"
  personal_exemption: "250000"
  flat_rate: "0.08"
  osd_rate: "0.40"
  vat_warning_ratio: "0.80"
risk:
  high_withholding_rate: "0.15"
  high_withholding_amount: "50000"
  flat_expense_ratio: "0.50"
  withholding_evidence_income: "500000"
brackets:
  - { min: "0", max: "100", rate: "0", base_tax: "0" }
  - { min: "101", rate: "0.10", base_tax: "0" }
penalties:
  standard: "late filing penalty"
forms:
  "9999":
    reminders: [7, 1]
    annual: { month: 1, day: 31, next_year: true }
`

func TestParseAcceptsMinimalTable(t *testing.T) {
	cfg, err := Parse([]byte(validTable))
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.DataVersion)
	require.Len(t, cfg.Brackets, 2)
	assert.True(t, cfg.Brackets[1].Unbounded)

	sched, ok := cfg.Schedule("9999")
	require.True(t, ok)
	assert.Equal(t, []int{7, 1}, sched.Reminders)
}

func TestParseRejectsBadTables(t *testing.T) {
	cases := []struct {
		name    string
		find    string
		replace string
		wantErr string
	}{
		{
			name:    "missing threshold",
			find:    `flat_rate: "0.08"`,
			replace: `flat_rate: ""`,
			wantErr: "thresholds.flat_rate: missing value",
		},
		{
			name:    "malformed amount",
			find:    `osd_rate: "0.40"`,
			replace: `osd_rate: "forty"`,
			wantErr: "thresholds.osd_rate",
		},
		{
			name: "no brackets",
			find: `brackets:
  - { min: "0", max: "100", rate: "0", base_tax: "0" }
  - { min: "101", rate: "0.10", base_tax: "0" }`,
			replace: `brackets: []`,
			wantErr: "no brackets",
		},
		{
			name:    "gap between bands",
			find:    `- { min: "101", rate: "0.10", base_tax: "0" }`,
			replace: `- { min: "200", rate: "0.10", base_tax: "0" }`,
			wantErr: "not contiguous",
		},
		{
			name: "unbounded middle band",
			find: `brackets:
  - { min: "0", max: "100", rate: "0", base_tax: "0" }
  - { min: "101", rate: "0.10", base_tax: "0" }`,
			replace: `brackets:
  - { min: "0", rate: "0", base_tax: "0" }
  - { min: "101", rate: "0.10", base_tax: "0" }`,
			wantErr: "only the last band may be unbounded",
		},
		{
			name:    "first band above zero",
			find:    `- { min: "0", max: "100", rate: "0", base_tax: "0" }`,
			replace: `- { min: "50", max: "100", rate: "0", base_tax: "0" }`,
			wantErr: "first band must start at 0",
		},
		{
			name:    "form without dates",
			find:    `    annual: { month: 1, day: 31, next_year: true }`,
			replace: ``,
			wantErr: "neither quarters nor an annual date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := strings.Replace(validTable, tc.find, tc.replace, 1)
			require.NotEqual(t, validTable, doc, "the rewrite must change the table")

			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("brackets: [1,"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode regulatory table")
}
