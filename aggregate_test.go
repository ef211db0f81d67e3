package schoolmeal

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/etnz/schoolmeal/date"
	"github.com/google/go-cmp/cmp"
)

// fakeFetcher serves meals from a map, with optional per-day errors.
type fakeFetcher struct {
	meals map[date.Date][]Meal
	errs  map[date.Date]error
	calls []date.Date
}

func (f *fakeFetcher) Meals(_ context.Context, on date.Date) ([]Meal, error) {
	f.calls = append(f.calls, on)
	if err := f.errs[on]; err != nil {
		return nil, err
	}
	return f.meals[on], nil
}

func meal(on date.Date, nutrients string) Meal {
	return NewMeal(on, Lunch, "중식", "", nutrients)
}

func TestWeeklyAverageNoData(t *testing.T) {
	ref := date.New(2025, 9, 8)
	f := &fakeFetcher{}

	a := WeeklyAverage(context.Background(), f, ref)
	if _, ok := a.Average(); ok {
		t.Error("Average() ok = true with no data at all")
	}
	if a.Days != WindowDays {
		t.Errorf("Days = %d, want %d", a.Days, WindowDays)
	}
	if len(f.calls) != WindowDays {
		t.Errorf("fetched %d days, want %d", len(f.calls), WindowDays)
	}
}

func TestWeeklyAverageDividesBySeven(t *testing.T) {
	ref := date.New(2025, 9, 8)
	f := &fakeFetcher{meals: map[date.Date][]Meal{
		ref: {meal(ref, "단백질(g) : 14")},
	}}

	a := WeeklyAverage(context.Background(), f, ref)
	avg, ok := a.Average()
	if !ok {
		t.Fatal("Average() ok = false, want true")
	}
	if got, _ := avg.Get("단백질(g)"); got != 2.0 {
		t.Errorf("average 단백질(g) = %v, want 2.0", got)
	}
}

func TestWeeklyAverageRoundsQuotient(t *testing.T) {
	ref := date.New(2025, 9, 8)
	f := &fakeFetcher{meals: map[date.Date][]Meal{
		ref: {meal(ref, "철분(mg) : 7.35")},
	}}

	avg, _ := WeeklyAverage(context.Background(), f, ref).Average()
	if got, _ := avg.Get("철분(mg)"); got != 1.1 {
		t.Errorf("average 철분(mg) = %v, want 1.1", got)
	}
}

func TestWeeklyAverageSumsMealsAndDays(t *testing.T) {
	ref := date.New(2025, 9, 8)
	day2 := ref.Add(-2)
	f := &fakeFetcher{meals: map[date.Date][]Meal{
		ref: {
			meal(ref, "에너지(kcal) : 700<br/>칼슘(mg) : 100"),
			meal(ref, "에너지(kcal) : 800"),
		},
		day2: {meal(day2, "에너지(kcal) : 600<br/>철분(mg) : 7")},
	}}

	a := WeeklyAverage(context.Background(), f, ref)

	wantTotals := []NutrientReading{{"에너지(kcal)", 2100}, {"칼슘(mg)", 100}, {"철분(mg)", 7}}
	if diff := cmp.Diff(wantTotals, a.Totals.Readings()); diff != "" {
		t.Errorf("Totals mismatch (-want +got):\n%s", diff)
	}

	avg, ok := a.Average()
	if !ok {
		t.Fatal("Average() ok = false, want true")
	}
	wantAvg := []NutrientReading{{"에너지(kcal)", 300}, {"칼슘(mg)", 14.3}, {"철분(mg)", 1}}
	if diff := cmp.Diff(wantAvg, avg.Readings()); diff != "" {
		t.Errorf("Average() mismatch (-want +got):\n%s", diff)
	}

	if rows, _ := a.Rows.Get(ref); rows != 2 {
		t.Errorf("Rows on %v = %d, want 2", ref, rows)
	}
	if rows, ok := a.Rows.Get(ref.Add(-1)); !ok || rows != 0 {
		t.Errorf("Rows on %v = %d, %v want 0, true", ref.Add(-1), rows, ok)
	}
}

func TestAccumulateWalksBackward(t *testing.T) {
	ref := date.New(2025, 3, 2)
	f := &fakeFetcher{}
	Accumulate(context.Background(), f, ref, 3)

	want := []date.Date{date.New(2025, 3, 2), date.New(2025, 3, 1), date.New(2025, 2, 28)}
	if !slices.Equal(want, f.calls) {
		t.Errorf("fetched days = %v, want %v", f.calls, want)
	}
}

func TestAccumulateKeepsGoingOnFailures(t *testing.T) {
	ref := date.New(2025, 9, 8)
	boom := errors.New("boom")
	f := &fakeFetcher{
		meals: map[date.Date][]Meal{ref.Add(-6): {meal(ref.Add(-6), "A: 7")}},
		errs: map[date.Date]error{
			ref:         ErrNetwork,
			ref.Add(-1): ErrNoData,
			ref.Add(-3): boom,
		},
	}

	a := WeeklyAverage(context.Background(), f, ref)
	if a.Days != WindowDays {
		t.Errorf("Days = %d, want %d", a.Days, WindowDays)
	}
	if len(a.Failures) != 1 || !errors.Is(a.Err(), boom) {
		t.Errorf("Failures = %v, want only the unexpected error", a.Failures)
	}
	avg, ok := a.Average()
	if !ok {
		t.Fatal("Average() ok = false, want true")
	}
	if got, _ := avg.Get("A"); got != 1 {
		t.Errorf("average A = %v, want 1", got)
	}
}
