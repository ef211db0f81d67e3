// Package nutritionist asks a Gemini model for a commentary on the meals of a school.
package nutritionist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is given.
const DefaultModel = "gemini-2.5-flash"

const instruction = `
You are a school nutritionist. You comment the meals served at a Korean high school
for its students, in Korean, in a friendly tone and in a few short markdown paragraphs.

You get the average nutrients of the last days and the recommended daily intake.
Mind that the average is divided by the number of days in the window, school days or not.
Call the meals function to look at the menu of a given day before commenting on a dish.

Point out what is lacking or in excess, and suggest what to eat at home to balance it.
Never invent nutrient values.
`

// New returns the nutritionist expert, able to look up the meals served by f.
func New(model string, f schoolmeal.Fetcher, table schoolmeal.Recommendations) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := []Function{&MealsFunction{Fetcher: f, Table: table}}
	return &Expert{
		Name:      "Nutritionist",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
		Library: NewLibrary(lib),
	}
}

// Prompt returns the question asked about a weekly report.
func Prompt(r *schoolmeal.WeeklyReport, table schoolmeal.Recommendations) (string, error) {
	recommended := make(map[string]float64, table.Len())
	if r.Average != nil {
		for name := range r.Average.All() {
			if v, ok := table.Get(name); ok {
				recommended[name] = v
			}
		}
	}
	data := struct {
		Window      string                `json:"window"`
		Days        int                   `json:"days"`
		Average     *schoolmeal.Nutrients `json:"average"`
		Recommended map[string]float64    `json:"recommended_daily_intake"`
	}{
		Window:      r.Aggregate.Window.String(),
		Days:        r.Aggregate.Days,
		Average:     r.Average,
		Recommended: recommended,
	}
	js, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode weekly report: %w", err)
	}
	return fmt.Sprintf("Comment the nutrient average of the meals served from %s:\n\n```json\n%s\n```\n", r.Aggregate.Window, js), nil
}

// Advise starts the expert and asks for a commentary on the weekly report.
func Advise(ctx context.Context, client *genai.Client, e *Expert, r *schoolmeal.WeeklyReport, table schoolmeal.Recommendations) (string, error) {
	if !r.OK {
		return "", fmt.Errorf("%w: %s", schoolmeal.ErrNoData, schoolmeal.NoWeeklyAdvisory)
	}
	prompt, err := Prompt(r, table)
	if err != nil {
		return "", err
	}
	if err := e.Start(ctx, client); err != nil {
		return "", err
	}
	return e.Ask(ctx, &genai.Part{Text: prompt})
}

// MealsFunction lets the model read the meals of a day.
type MealsFunction struct {
	Fetcher schoolmeal.Fetcher
	Table   schoolmeal.Recommendations
}

func (*MealsFunction) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "meals",
		Description: "Returns the meals served on a day: menu, nutrients and ratio to the recommended intake.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {
					Type:        genai.TypeString,
					Description: "The day, formatted as 2006-01-02.",
				},
			},
			Required: []string{"date"},
		},
	}
}

func (m *MealsFunction) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	d := m.Declaration()
	arg0 := args[d.Parameters.Required[0]]
	s, ok := arg0.(string)
	if !ok {
		return errorResponse(id, d.Name, fmt.Errorf("invalid type got %T, expected string", arg0))
	}
	on, err := date.Parse(s)
	if err != nil {
		return errorResponse(id, d.Name, err)
	}

	r := schoolmeal.BuildDaily(ctx, m.Fetcher, on, m.Table)
	if err := r.Err(); err != nil {
		return errorResponse(id, d.Name, err)
	}
	var meals []map[string]any
	for _, mr := range r.Meals {
		meals = append(meals, map[string]any{
			"name":        mr.Meal.Name,
			"menu":        mr.Meal.Menu(),
			"nutrients":   mr.Meal.Nutrients,
			"comparisons": mr.Comparisons,
		})
	}
	if len(meals) == 0 {
		return &genai.FunctionResponse{ID: id, Name: d.Name, Response: map[string]any{"output": schoolmeal.NoMealAdvisory}}
	}
	return &genai.FunctionResponse{ID: id, Name: d.Name, Response: map[string]any{"output": meals}}
}
