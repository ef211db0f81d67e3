package schoolmeal

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/schoolmeal/date"
)

// WindowDays is the length of the nutrient average window.
const WindowDays = 7

// Aggregate accumulates nutrient values over a window of days.
type Aggregate struct {
	// Window is the span of days that have been sampled.
	Window date.Range `json:"window" yaml:"window"`
	// Totals is the running sum per nutrient, across all days and all meals.
	Totals *Nutrients `json:"totals" yaml:"totals"`
	// Days is the number of days sampled, with or without data.
	Days int `json:"days" yaml:"days"`
	// Rows is the number of meals found each day.
	Rows *date.History[int] `json:"rows" yaml:"rows"`
	// Failures are the unexpected fetch errors met on the way.
	Failures []error `json:"-" yaml:"-"`
}

// NewAggregate returns an empty aggregate over a window.
func NewAggregate(window date.Range) *Aggregate {
	return &Aggregate{
		Window: window,
		Totals: new(Nutrients),
		Rows:   new(date.History[int]),
	}
}

// Add samples one day. Every day counts, even without meals.
func (a *Aggregate) Add(on date.Date, meals []Meal) {
	a.Days++
	a.Rows.Append(on, len(meals))
	for _, m := range meals {
		for name, v := range m.Nutrients.All() {
			a.Totals.Add(name, v)
		}
	}
}

// Fail records an unexpected failure.
func (a *Aggregate) Fail(on date.Date, err error) {
	a.Failures = append(a.Failures, fmt.Errorf("%v: %w", on, err))
}

// Err joins the recorded failures, nil when there are none.
func (a *Aggregate) Err() error { return errors.Join(a.Failures...) }

// Empty reports whether no value at all has been accumulated.
func (a *Aggregate) Empty() bool { return a.Totals.Len() == 0 }

// Average returns Totals/Days rounded to one decimal.
//
// It returns false when there is no data to average.
// The divisor is the number of days sampled, not the number of days with meals.
func (a *Aggregate) Average() (*Nutrients, bool) {
	if a.Empty() || a.Days <= 0 {
		return nil, false
	}
	avg := new(Nutrients)
	for name, total := range a.Totals.All() {
		avg.Set(name, Round1(total/float64(a.Days)))
	}
	return avg, true
}

// Accumulate samples the given number of days ending on ref, from ref backward.
//
// Days are fetched one after the other. A failed day counts as a day without meals.
func Accumulate(ctx context.Context, f Fetcher, ref date.Date, days int) *Aggregate {
	a := NewAggregate(date.Window(ref, days))
	for on := range a.Window.Backward() {
		meals, err := FetchOrEmpty(ctx, f, on)
		if err != nil {
			a.Fail(on, err)
		}
		a.Add(on, meals)
	}
	return a
}

// WeeklyAverage samples the WindowDays days ending on ref.
func WeeklyAverage(ctx context.Context, f Fetcher, ref date.Date) *Aggregate {
	return Accumulate(ctx, f, ref, WindowDays)
}
