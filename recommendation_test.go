package schoolmeal

import (
	"testing"
)

func TestCompare(t *testing.T) {
	observed := NewNutrients(NutrientReading{"에너지(kcal)", 1000})
	table := NewRecommendations(map[string]float64{"에너지(kcal)": 2000})

	rows := Compare(observed, table)
	if len(rows) != 1 {
		t.Fatalf("Compare() returned %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Name != "에너지(kcal)" || r.Observed != 1000 || r.Recommended != 2000 {
		t.Errorf("Compare() row = %+v", r)
	}
	if got := r.Ratio.String(); got != "50.0%" {
		t.Errorf("Compare() ratio = %q, want %q", got, "50.0%")
	}
}

func TestCompareOmitsUnknownNutrients(t *testing.T) {
	observed := NewNutrients(
		NutrientReading{"비타민C", 20.4},
		NutrientReading{"단백질(g)", 27.5},
	)
	rows := Compare(observed, DefaultRecommendations())
	if len(rows) != 1 {
		t.Fatalf("Compare() returned %d rows, want 1: %+v", len(rows), rows)
	}
	if rows[0].Name != "단백질(g)" {
		t.Errorf("Compare() row name = %q, want %q", rows[0].Name, "단백질(g)")
	}
	if got := rows[0].Ratio.String(); got != "50.0%" {
		t.Errorf("Compare() ratio = %q, want %q", got, "50.0%")
	}
}

func TestCompareFollowsObservedOrder(t *testing.T) {
	observed := NewNutrients(
		NutrientReading{"칼슘(mg)", 350},
		NutrientReading{"에너지(kcal)", 800},
		NutrientReading{"탄수화물(g)", 162},
	)
	rows := Compare(observed, DefaultRecommendations())

	want := []struct{ name, ratio string }{
		{"칼슘(mg)", "50.0%"},
		{"에너지(kcal)", "40.0%"},
		{"탄수화물(g)", "50.0%"},
	}
	if len(rows) != len(want) {
		t.Fatalf("Compare() returned %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].Ratio.String() != w.ratio {
			t.Errorf("row[%d] = %s %s, want %s %s", i, rows[i].Name, rows[i].Ratio, w.name, w.ratio)
		}
	}
}

func TestCompareNoOverlap(t *testing.T) {
	observed := NewNutrients(NutrientReading{"철분(mg)", 3.2})
	if rows := Compare(observed, DefaultRecommendations()); len(rows) != 0 {
		t.Errorf("Compare() = %+v, want no rows", rows)
	}
	if rows := Compare(new(Nutrients), DefaultRecommendations()); len(rows) != 0 {
		t.Errorf("Compare(empty) = %+v, want no rows", rows)
	}
}

func TestCompareZeroRecommendation(t *testing.T) {
	observed := NewNutrients(NutrientReading{"A", 3})
	table := NewRecommendations(map[string]float64{"A": 0})
	if rows := Compare(observed, table); len(rows) != 0 {
		t.Errorf("Compare() = %+v, want no rows", rows)
	}
}

func TestRecommendationsIsACopy(t *testing.T) {
	values := map[string]float64{"A": 1}
	table := NewRecommendations(values)
	values["A"] = 2
	if got, _ := table.Get("A"); got != 1 {
		t.Errorf("table.Get(A) = %v after mutating the source, want 1", got)
	}
}

func TestDefaultRecommendations(t *testing.T) {
	table := DefaultRecommendations()
	want := map[string]float64{
		"에너지(kcal)": 2000,
		"탄수화물(g)":   324,
		"단백질(g)":    55,
		"지방(g)":     54,
		"칼슘(mg)":    700,
	}
	if table.Len() != len(want) {
		t.Errorf("DefaultRecommendations().Len() = %d, want %d", table.Len(), len(want))
	}
	for k, v := range want {
		if got, ok := table.Get(k); !ok || got != v {
			t.Errorf("DefaultRecommendations().Get(%q) = %v, %v want %v", k, got, ok, v)
		}
	}
}
