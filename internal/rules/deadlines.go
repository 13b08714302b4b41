package rules

import (
	"fmt"
	"sort"
	"time"

	"tax-engine/internal/forms"
	"tax-engine/internal/model"
	"tax-engine/internal/regulatory"
)

// DeadlineCalculation turns applicable obligations into dated deadlines
// using the per-form schedule table.
type DeadlineCalculation struct{}

func (DeadlineCalculation) ID() ModuleID    { return ModuleDeadlineCalculation }
func (DeadlineCalculation) Version() string { return "1.0.0" }

// Evaluate emits one deadline per scheduled filing date of each applicable
// obligation. Registration gets the ASAP sentinel instead of a date;
// obligations without a schedule (certificate tracking, books of accounts)
// emit nothing. The result is sorted ascending by due date with ASAP
// entries first, and ids DL-1.. are assigned after the sort.
//
// The effective regime is part of the module signature but the dates never
// depend on it directly: the obligations' applicability flags already
// encode the regime.
func (DeadlineCalculation) Evaluate(in model.RuleInput, _ model.TaxRegime, obligations []model.Obligation) []model.Deadline {
	cfg := regulatory.Values()

	var out []model.Deadline
	for _, ob := range obligations {
		if !ob.Applicable {
			continue
		}

		if ob.FormCode == forms.Code1901 {
			out = append(out, model.Deadline{
				ObligationID: ob.ID,
				FormCode:     ob.FormCode,
				Label:        "Register before starting business",
				Period:       fmt.Sprintf("FY %d", in.TaxYear),
				DueDate:      model.DueASAP,
				PenaltyInfo:  cfg.StandardPenalty,
			})
			continue
		}

		sched, ok := cfg.Schedule(ob.FormCode)
		if !ok {
			continue
		}
		penalty := cfg.StandardPenalty
		if sched.PenaltyNote != "" {
			penalty += " " + sched.PenaltyNote
		}

		for _, q := range sched.Quarters {
			year := in.TaxYear
			if q.NextYear {
				year++
			}
			out = append(out, model.Deadline{
				ObligationID: ob.ID,
				FormCode:     ob.FormCode,
				Label:        fmt.Sprintf("%s Q%d filing", ob.FormCode, q.Quarter),
				Period:       fmt.Sprintf("Q%d %d", q.Quarter, in.TaxYear),
				DueDate:      dueDate(year, q.Month, q.Day),
				ReminderDays: sched.Reminders,
				PenaltyInfo:  penalty,
			})
		}

		if sched.Annual != nil {
			year := in.TaxYear
			if sched.Annual.NextYear {
				year++
			}
			out = append(out, model.Deadline{
				ObligationID: ob.ID,
				FormCode:     ob.FormCode,
				Label:        fmt.Sprintf("%s annual filing", ob.FormCode),
				Period:       fmt.Sprintf("FY %d", in.TaxYear),
				DueDate:      dueDate(year, sched.Annual.Month, sched.Annual.Day),
				ReminderDays: sched.Reminders,
				PenaltyInfo:  penalty,
			})
		}
	}

	// ISO dates sort lexicographically; ASAP entries come first.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if a == model.DueASAP || b == model.DueASAP {
			return a == model.DueASAP && b != model.DueASAP
		}
		return a < b
	})
	for i := range out {
		out[i].ID = fmt.Sprintf("DL-%d", i+1)
	}
	return out
}

// dueDate renders the calendar date shifted off the weekend: Saturday dues
// move two days and Sunday dues one day, always landing on Monday. There is
// no holiday calendar.
func dueDate(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	switch t.Weekday() {
	case time.Saturday:
		t = t.AddDate(0, 0, 2)
	case time.Sunday:
		t = t.AddDate(0, 0, 1)
	}
	return t.Format("2006-01-02")
}
