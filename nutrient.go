package schoolmeal

import (
	"encoding/json"
	"iter"
	"math"
	"strconv"
	"strings"
)

// LineBreak separates segments in the meal service text fields.
const LineBreak = "<br/>"

// unitSuffixes are removed from values before numeric conversion, in this order.
// Removing "g" first leaves "5mg" as "5m", which is then dropped as non numeric.
var unitSuffixes = []string{"g", "kcal", "mg"}

// NutrientReading is one parsed (name, value) pair.
type NutrientReading struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Nutrients maps a nutrient name to a value and remembers insertion order.
//
// Setting an existing name overwrites its value and keeps its position.
// The zero value is an empty mapping ready to use.
type Nutrients struct {
	index    map[string]int
	readings []NutrientReading
}

// NewNutrients returns a mapping holding the readings in order.
func NewNutrients(readings ...NutrientReading) *Nutrients {
	n := new(Nutrients)
	for _, r := range readings {
		n.Set(r.Name, r.Value)
	}
	return n
}

// Len returns the number of distinct names.
func (n *Nutrients) Len() int {
	if n == nil {
		return 0
	}
	return len(n.readings)
}

// Get returns the value of name and whether it is present.
func (n *Nutrients) Get(name string) (float64, bool) {
	if n == nil {
		return 0, false
	}
	i, ok := n.index[name]
	if !ok {
		return 0, false
	}
	return n.readings[i].Value, true
}

// Set assigns value to name.
func (n *Nutrients) Set(name string, value float64) {
	if i, ok := n.index[name]; ok {
		n.readings[i].Value = value
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[name] = len(n.readings)
	n.readings = append(n.readings, NutrientReading{Name: name, Value: value})
}

// Add adds value to name, a missing name starting at 0.
func (n *Nutrients) Add(name string, value float64) {
	current, _ := n.Get(name)
	n.Set(name, current+value)
}

// All iterates over names and values in insertion order.
func (n *Nutrients) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		if n == nil {
			return
		}
		for _, r := range n.readings {
			if !yield(r.Name, r.Value) {
				return
			}
		}
	}
}

// Names returns the names in insertion order.
func (n *Nutrients) Names() []string {
	names := make([]string, 0, n.Len())
	for name := range n.All() {
		names = append(names, name)
	}
	return names
}

// Readings returns a copy of the readings in insertion order.
func (n *Nutrients) Readings() []NutrientReading {
	if n == nil {
		return nil
	}
	out := make([]NutrientReading, len(n.readings))
	copy(out, n.readings)
	return out
}

// MarshalJSON encodes the mapping as an ordered list of readings.
func (n *Nutrients) MarshalJSON() ([]byte, error) {
	readings := n.Readings()
	if readings == nil {
		readings = []NutrientReading{}
	}
	return json.Marshal(readings)
}

// UnmarshalJSON decodes an ordered list of readings.
func (n *Nutrients) UnmarshalJSON(data []byte) error {
	var readings []NutrientReading
	if err := json.Unmarshal(data, &readings); err != nil {
		return err
	}
	*n = *NewNutrients(readings...)
	return nil
}

// MarshalYAML encodes the mapping as an ordered list of readings.
func (n *Nutrients) MarshalYAML() (any, error) { return n.Readings(), nil }

// ParseNutrients parses a "name: value unit" list separated by LineBreak.
//
// Segments without ':' or with a value that is not a non-negative number are skipped.
// An empty input yields an empty mapping.
func ParseNutrients(raw string) *Nutrients {
	n := new(Nutrients)
	for r := range readings(raw) {
		n.Set(r.Name, r.Value)
	}
	return n
}

// readings yields every valid segment of raw, duplicates included.
func readings(raw string) iter.Seq[NutrientReading] {
	return func(yield func(NutrientReading) bool) {
		if raw == "" {
			return
		}
		for segment := range strings.SplitSeq(raw, LineBreak) {
			r, ok := parseSegment(segment)
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// parseSegment parses one "name:value" segment.
func parseSegment(segment string) (NutrientReading, bool) {
	name, value, found := strings.Cut(segment, ":")
	if !found {
		return NutrientReading{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return NutrientReading{}, false
	}
	v, err := parseValue(value)
	if err != nil {
		return NutrientReading{}, false
	}
	return NutrientReading{Name: name, Value: v}, true
}

// parseValue strips units and whitespace and converts to a non-negative finite float.
func parseValue(value string) (float64, error) {
	value = strings.TrimSpace(value)
	for _, unit := range unitSuffixes {
		value = strings.ReplaceAll(value, unit, "")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
