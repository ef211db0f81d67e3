package schoolmeal

// Recommendations maps a nutrient name to a recommended daily value.
//
// A table is built once and only read afterwards.
type Recommendations struct {
	values map[string]float64
}

// NewRecommendations returns a table holding a copy of values.
func NewRecommendations(values map[string]float64) Recommendations {
	m := make(map[string]float64, len(values))
	for k, v := range values {
		m[k] = v
	}
	return Recommendations{values: m}
}

// DefaultRecommendations returns the recommended daily intake used by the meal page.
func DefaultRecommendations() Recommendations {
	return NewRecommendations(map[string]float64{
		"에너지(kcal)": 2000,
		"탄수화물(g)":   324,
		"단백질(g)":    55,
		"지방(g)":     54,
		"칼슘(mg)":    700,
	})
}

// Get returns the recommended value for name.
func (r Recommendations) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of recommended nutrients.
func (r Recommendations) Len() int { return len(r.values) }

// Comparison is one nutrient observed in a meal next to its recommended value.
type Comparison struct {
	Name        string  `json:"name" yaml:"name"`
	Observed    float64 `json:"observed" yaml:"observed"`
	Recommended float64 `json:"recommended" yaml:"recommended"`
	Ratio       Percent `json:"ratio" yaml:"ratio"`
}

// Compare returns a row for every observed nutrient that has a recommendation,
// in the observed order. Nutrients without a (non-zero) recommendation are omitted.
func Compare(observed *Nutrients, table Recommendations) []Comparison {
	var rows []Comparison
	for name, v := range observed.All() {
		rec, ok := table.Get(name)
		if !ok || rec == 0 {
			continue
		}
		rows = append(rows, Comparison{
			Name:        name,
			Observed:    v,
			Recommended: rec,
			Ratio:       Ratio(v, rec),
		})
	}
	return rows
}
