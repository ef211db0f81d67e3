package schoolmeal

import (
	"context"
	"errors"

	"github.com/etnz/schoolmeal/date"
)

// Advisory messages shown instead of missing data.
const (
	NoMealAdvisory   = "해당 날짜의 급식 정보가 없습니다."
	NoWeeklyAdvisory = "지난 7일간 영양소 데이터를 불러올 수 없습니다."
)

// MealReport is a meal with its comparison to the recommended intake.
type MealReport struct {
	Meal        Meal         `json:"meal" yaml:"meal"`
	Comparisons []Comparison `json:"comparisons" yaml:"comparisons"`
}

// DailyReport holds the meals served on a given day.
type DailyReport struct {
	Date     date.Date    `json:"date" yaml:"date"`
	School   string       `json:"school,omitempty" yaml:"school,omitempty"`
	Meals    []MealReport `json:"meals" yaml:"meals"`
	Failures []error      `json:"-" yaml:"-"`
}

// Empty reports whether no meal was found.
func (r *DailyReport) Empty() bool { return len(r.Meals) == 0 }

// Err joins the unexpected failures, nil when there are none.
func (r *DailyReport) Err() error { return errors.Join(r.Failures...) }

// BuildDaily fetches the meals of a day and compares each one to the table.
func BuildDaily(ctx context.Context, f Fetcher, on date.Date, table Recommendations) *DailyReport {
	r := &DailyReport{Date: on}
	meals, err := FetchOrEmpty(ctx, f, on)
	if err != nil {
		r.Failures = append(r.Failures, err)
	}
	for _, m := range meals {
		r.Meals = append(r.Meals, MealReport{
			Meal:        m,
			Comparisons: Compare(m.Nutrients, table),
		})
	}
	return r
}

// WeeklyReport holds the nutrient average over the last WindowDays days.
type WeeklyReport struct {
	Aggregate *Aggregate `json:"aggregate" yaml:"aggregate"`
	Average   *Nutrients `json:"average,omitempty" yaml:"average,omitempty"`
	// OK is false when there is no data to average.
	OK bool `json:"ok" yaml:"ok"`
}

// BuildWeekly accumulates the WindowDays days ending on ref.
func BuildWeekly(ctx context.Context, f Fetcher, ref date.Date) *WeeklyReport {
	a := WeeklyAverage(ctx, f, ref)
	avg, ok := a.Average()
	return &WeeklyReport{Aggregate: a, Average: avg, OK: ok}
}

// Err joins the unexpected failures, nil when there are none.
func (r *WeeklyReport) Err() error { return r.Aggregate.Err() }
