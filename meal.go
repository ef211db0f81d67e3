package schoolmeal

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/etnz/schoolmeal/date"
	"golang.org/x/text/width"
)

// Expected failure kinds of a Fetcher. They all mean "no meal for this date".
var (
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("malformed response")
	ErrMissingField = errors.New("missing field")
	ErrNoData       = errors.New("no meal data")
)

// Expected reports whether err is one of the expected failure kinds.
func Expected(err error) bool {
	return errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrNoData)
}

// Slot identifies a meal of the day, as coded by the meal service.
type Slot string

const (
	Breakfast Slot = "1"
	Lunch     Slot = "2"
	Dinner    Slot = "3"
)

// Meal is one meal slot served on a given day.
type Meal struct {
	Date      date.Date  `json:"date" yaml:"date"`
	Slot      Slot       `json:"slot,omitempty" yaml:"slot,omitempty"`
	Name      string     `json:"name" yaml:"name"`
	Dishes    string     `json:"dishes" yaml:"dishes"`
	Calories  string     `json:"calories,omitempty" yaml:"calories,omitempty"`
	Nutrients *Nutrients `json:"nutrients" yaml:"nutrients"`
}

// NewMeal returns a meal whose nutrients are parsed from the raw nutrient text.
func NewMeal(on date.Date, slot Slot, name, dishes, nutrients string) Meal {
	return Meal{
		Date:      on,
		Slot:      slot,
		Name:      name,
		Dishes:    dishes,
		Nutrients: ParseNutrients(nutrients),
	}
}

// allergens matches allergen codes like "(1.2.5.6)" and stray digits.
var allergens = regexp.MustCompile(`[\p{Nd}().]`)

// Menu returns the dish list one dish per line, without allergen codes.
func (m Meal) Menu() string { return CleanDishes(m.Dishes) }

// CleanDishes turns a raw dish list into printable lines.
func CleanDishes(dishes string) string {
	s := strings.ReplaceAll(dishes, LineBreak, "\n")
	s = width.Fold.String(s)
	s = allergens.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Fetcher supplies the meals served on a given day.
type Fetcher interface {
	Meals(ctx context.Context, on date.Date) ([]Meal, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, on date.Date) ([]Meal, error)

func (f FetcherFunc) Meals(ctx context.Context, on date.Date) ([]Meal, error) { return f(ctx, on) }

// FetchOrEmpty returns the meals of a day, expected failures being downgraded to no meals.
//
// Any other error is logged as unexpected and returned with no meals, so that the
// caller can surface it.
func FetchOrEmpty(ctx context.Context, f Fetcher, on date.Date) ([]Meal, error) {
	meals, err := f.Meals(ctx, on)
	switch {
	case err == nil:
		return meals, nil
	case Expected(err):
		log.Printf("no meal on %v: %v", on, err)
		return nil, nil
	default:
		log.Printf("unexpected error fetching meals on %v: %v", on, err)
		return nil, err
	}
}
