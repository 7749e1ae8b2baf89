package domain

import (
	"fmt"
	"time"
)

// PlanDateLayout is the layout of every plan date.
const PlanDateLayout = "2006-01-02"

// Plan is the ordered set of tasks for one calendar date.
type Plan struct {
	Date  string  `json:"date"`
	Tasks []*Task `json:"tasks"`
}

// ParsePlanDate validates a YYYY-MM-DD date string.
func ParsePlanDate(s string) (time.Time, error) {
	d, err := time.Parse(PlanDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPlanDate, s)
	}
	return d, nil
}

// FormatPlanDate renders t as a plan date in t's own location.
func FormatPlanDate(t time.Time) string {
	return t.Format(PlanDateLayout)
}

// Today returns the plan date of now.
func Today(now time.Time) string {
	return FormatPlanDate(now)
}

// Tomorrow returns the plan date following now.
func Tomorrow(now time.Time) string {
	return FormatPlanDate(now.AddDate(0, 0, 1))
}

// DefaultPlanDate picks the date a new plan should target: today, unless
// today already has tasks, in which case tomorrow.
func DefaultPlanDate(now time.Time, hasPlanToday bool) string {
	if hasPlanToday {
		return Tomorrow(now)
	}
	return Today(now)
}

// Validate checks the plan date, that the plan is not empty, and every task.
func (p *Plan) Validate() error {
	if _, err := ParsePlanDate(p.Date); err != nil {
		return err
	}
	if len(p.Tasks) == 0 {
		return ErrEmptyPlan
	}
	for i, t := range p.Tasks {
		if t.PlanDate != p.Date {
			return fmt.Errorf("%w: task %d", ErrTaskDateMismatch, i)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}

// Renumber assigns positions 0..n-1 following slice order.
func (p *Plan) Renumber() {
	for i, t := range p.Tasks {
		t.Position = i
	}
}

// Completed counts finished tasks.
func (p *Plan) Completed() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Done {
			n++
		}
	}
	return n
}
