// Package regulatory carries the tax constants the rule modules evaluate
// against: thresholds, the graduated bracket table, and per-form filing
// schedules. The values are embedded at build time and parsed once; they
// are read-only afterwards, which keeps the engine free of locks.
package regulatory

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var embeddedYAML []byte

// Thresholds are the headline constants of the regime rules.
type Thresholds struct {
	VATAnnualReceipts decimal.Decimal // annual gross receipts above which VAT registration applies
	PersonalExemption decimal.Decimal
	FlatRate          decimal.Decimal
	OSDRate           decimal.Decimal // optional standard deduction, as a fraction of gross
	VATWarningRatio   decimal.Decimal // fraction of the VAT threshold that triggers a warning
}

// RiskParams tune the risk-assessment predicates.
type RiskParams struct {
	HighWithholdingRate       decimal.Decimal
	HighWithholdingAmount     decimal.Decimal
	FlatExpenseRatio          decimal.Decimal
	WithholdingEvidenceIncome decimal.Decimal
}

// Bracket is one band of the graduated table. The band covers taxable
// income strictly above Lower() up to and including Max; Unbounded marks
// the top band.
type Bracket struct {
	Min       decimal.Decimal
	Max       decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal
	BaseTax   decimal.Decimal
}

// Lower is the exclusive lower edge of the band: the previous band's
// ceiling. The marginal rate applies to income above it.
func (b Bracket) Lower() decimal.Decimal {
	if b.Min.IsZero() {
		return b.Min
	}
	return b.Min.Sub(decimal.NewFromInt(1))
}

// Contains reports whether taxable falls inside this band.
func (b Bracket) Contains(taxable decimal.Decimal) bool {
	if taxable.LessThanOrEqual(b.Lower()) && !b.Min.IsZero() {
		return false
	}
	if b.Unbounded {
		return true
	}
	return taxable.LessThanOrEqual(b.Max)
}

// QuarterDue is one quarterly filing date. NextYear marks quarters settled
// in the calendar year after the tax year.
type QuarterDue struct {
	Quarter  int  `yaml:"quarter"`
	Month    int  `yaml:"month"`
	Day      int  `yaml:"day"`
	NextYear bool `yaml:"next_year"`
}

// AnnualDue is a single annual filing date.
type AnnualDue struct {
	Month    int  `yaml:"month"`
	Day      int  `yaml:"day"`
	NextYear bool `yaml:"next_year"`
}

// FormSchedule is the deadline configuration for one form.
type FormSchedule struct {
	Quarters    []QuarterDue
	Annual      *AnnualDue
	Reminders   []int
	PenaltyNote string
}

// Config is the full parsed regulatory table.
type Config struct {
	DataVersion     string
	Thresholds      Thresholds
	Risk            RiskParams
	Brackets        []Bracket
	Forms           map[string]FormSchedule
	StandardPenalty string
}

// Schedule returns the deadline configuration for a form code, if one
// exists. Forms without a schedule (registration, certificate tracking,
// books of accounts) yield ok=false.
func (c Config) Schedule(formCode string) (FormSchedule, bool) {
	s, ok := c.Forms[formCode]
	return s, ok
}

var loaded = mustParse(embeddedYAML)

// Values returns the parsed regulatory table. The result shares backing
// storage across calls and must be treated as read-only.
func Values() Config {
	return loaded
}

func mustParse(raw []byte) Config {
	cfg, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("regulatory: embedded table is invalid: %v", err))
	}
	return cfg
}

// raw YAML shapes; decimals travel as strings so the parse step controls
// precision instead of the YAML decoder.
type rawConfig struct {
	DataVersion string `yaml:"data_version"`
	Thresholds  struct {
		VATAnnualReceipts string `yaml:"vat_annual_receipts"`
		PersonalExemption string `yaml:"personal_exemption"`
		FlatRate          string `yaml:"flat_rate"`
		OSDRate           string `yaml:"osd_rate"`
		VATWarningRatio   string `yaml:"vat_warning_ratio"`
	} `yaml:"thresholds"`
	Risk struct {
		HighWithholdingRate       string `yaml:"high_withholding_rate"`
		HighWithholdingAmount     string `yaml:"high_withholding_amount"`
		FlatExpenseRatio          string `yaml:"flat_expense_ratio"`
		WithholdingEvidenceIncome string `yaml:"withholding_evidence_income"`
	} `yaml:"risk"`
	Brackets []struct {
		Min     string `yaml:"min"`
		Max     string `yaml:"max"`
		Rate    string `yaml:"rate"`
		BaseTax string `yaml:"base_tax"`
	} `yaml:"brackets"`
	Penalties struct {
		Standard string `yaml:"standard"`
	} `yaml:"penalties"`
	Forms map[string]struct {
		Reminders   []int        `yaml:"reminders"`
		Quarters    []QuarterDue `yaml:"quarters"`
		Annual      *AnnualDue   `yaml:"annual"`
		PenaltyNote string       `yaml:"penalty_note"`
	} `yaml:"forms"`
}

// Parse decodes and validates a regulatory table.
func Parse(raw []byte) (Config, error) {
	var rc rawConfig
	if err := yaml.Unmarshal(raw, &rc); err != nil {
		return Config{}, fmt.Errorf("decode regulatory table: %w", err)
	}

	cfg := Config{
		DataVersion:     rc.DataVersion,
		StandardPenalty: rc.Penalties.Standard,
		Forms:           make(map[string]FormSchedule, len(rc.Forms)),
	}

	var err error
	if cfg.Thresholds.VATAnnualReceipts, err = parseAmount("thresholds.vat_annual_receipts", rc.Thresholds.VATAnnualReceipts); err != nil {
		return Config{}, err
	}
	if cfg.Thresholds.PersonalExemption, err = parseAmount("thresholds.personal_exemption", rc.Thresholds.PersonalExemption); err != nil {
		return Config{}, err
	}
	if cfg.Thresholds.FlatRate, err = parseAmount("thresholds.flat_rate", rc.Thresholds.FlatRate); err != nil {
		return Config{}, err
	}
	if cfg.Thresholds.OSDRate, err = parseAmount("thresholds.osd_rate", rc.Thresholds.OSDRate); err != nil {
		return Config{}, err
	}
	if cfg.Thresholds.VATWarningRatio, err = parseAmount("thresholds.vat_warning_ratio", rc.Thresholds.VATWarningRatio); err != nil {
		return Config{}, err
	}
	if cfg.Risk.HighWithholdingRate, err = parseAmount("risk.high_withholding_rate", rc.Risk.HighWithholdingRate); err != nil {
		return Config{}, err
	}
	if cfg.Risk.HighWithholdingAmount, err = parseAmount("risk.high_withholding_amount", rc.Risk.HighWithholdingAmount); err != nil {
		return Config{}, err
	}
	if cfg.Risk.FlatExpenseRatio, err = parseAmount("risk.flat_expense_ratio", rc.Risk.FlatExpenseRatio); err != nil {
		return Config{}, err
	}
	if cfg.Risk.WithholdingEvidenceIncome, err = parseAmount("risk.withholding_evidence_income", rc.Risk.WithholdingEvidenceIncome); err != nil {
		return Config{}, err
	}

	if len(rc.Brackets) == 0 {
		return Config{}, fmt.Errorf("regulatory table has no brackets")
	}
	cfg.Brackets = make([]Bracket, 0, len(rc.Brackets))
	for i, rb := range rc.Brackets {
		b := Bracket{Unbounded: rb.Max == ""}
		if b.Min, err = parseAmount(fmt.Sprintf("brackets[%d].min", i), rb.Min); err != nil {
			return Config{}, err
		}
		if !b.Unbounded {
			if b.Max, err = parseAmount(fmt.Sprintf("brackets[%d].max", i), rb.Max); err != nil {
				return Config{}, err
			}
		}
		if b.Rate, err = parseAmount(fmt.Sprintf("brackets[%d].rate", i), rb.Rate); err != nil {
			return Config{}, err
		}
		if b.BaseTax, err = parseAmount(fmt.Sprintf("brackets[%d].base_tax", i), rb.BaseTax); err != nil {
			return Config{}, err
		}
		cfg.Brackets = append(cfg.Brackets, b)
	}
	if err := validateBrackets(cfg.Brackets); err != nil {
		return Config{}, err
	}

	for code, rf := range rc.Forms {
		if len(rf.Quarters) == 0 && rf.Annual == nil {
			return Config{}, fmt.Errorf("form %s: schedule has neither quarters nor an annual date", code)
		}
		cfg.Forms[code] = FormSchedule{
			Quarters:    rf.Quarters,
			Annual:      rf.Annual,
			Reminders:   rf.Reminders,
			PenaltyNote: rf.PenaltyNote,
		}
	}

	return cfg, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%s: missing value", field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// validateBrackets checks the bands are sorted and contiguous: each band's
// lower edge must equal the previous band's ceiling, and only the last
// band may be unbounded.
func validateBrackets(brackets []Bracket) error {
	for i, b := range brackets {
		if b.Unbounded && i != len(brackets)-1 {
			return fmt.Errorf("brackets[%d]: only the last band may be unbounded", i)
		}
		if i == 0 {
			if !b.Min.IsZero() {
				return fmt.Errorf("brackets[0]: first band must start at 0")
			}
			continue
		}
		prev := brackets[i-1]
		if !b.Lower().Equal(prev.Max) {
			return fmt.Errorf("brackets[%d]: band starting at %s is not contiguous with previous ceiling %s", i, b.Min, prev.Max)
		}
	}
	return nil
}
