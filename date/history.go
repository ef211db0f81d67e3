package date

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// Dates are unique and the series is always sorted.
type History[T int | float64 | string] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// index returns the position of on, or the position it should be inserted at.
func (h *History[T]) index(on Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, on, func(d, t Date) int {
		switch {
		case d.Before(t):
			return -1
		case d.After(t):
			return 1
		}
		return 0
	})
}

// Append sets the value on a day, existing value at that date is overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := h.index(on)
	if found {
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// AppendAdd adds q to the value on a given day.
func (h *History[T]) AppendAdd(on Date, q T) *History[T] {
	i, found := h.index(on)
	if found {
		h.values[i] += q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.index(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the history as an object keyed by ISO date, in chronological order.
func (h *History[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, on := range h.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(on.String())
		v, err := json.Marshal(h.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the history as a mapping keyed by ISO date.
func (h *History[T]) MarshalYAML() (any, error) {
	m := make(map[string]T, len(h.days))
	for on, v := range h.Values() {
		m[on.String()] = v
	}
	return m, nil
}
