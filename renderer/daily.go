package renderer

import (
	"bytes"

	"github.com/etnz/schoolmeal"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders the meals of a day: a card, a nutrient table, a comparison
// to the recommended intake and a chart per meal.
func DailyMarkdown(r *schoolmeal.DailyReport, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(Title(escape(r.School)))
	doc.PlainText("선택한 날짜: " + r.Date.String() + "\n")

	failures(doc, r.Failures)
	if r.Empty() {
		advisory(doc, schoolmeal.NoMealAdvisory)
		return doc.String()
	}

	for _, m := range r.Meals {
		writeMeal(doc, m, opts)
	}
	return doc.String()
}

func writeMeal(doc *md.Markdown, m schoolmeal.MealReport, opts Options) {
	Card{Title: "🍽 " + escape(m.Meal.Name), Text: m.Meal.Menu()}.write(doc)

	n := m.Meal.Nutrients
	if n.Len() == 0 {
		return
	}
	nutrients := Table{Header: []string{"영양소", "값"}}
	for name, v := range n.All() {
		nutrients.Rows = append(nutrients.Rows, []string{escape(name), formatValue(v)})
	}
	nutrients.write(doc)

	if len(m.Comparisons) > 0 {
		doc.PlainText("✅ " + md.Bold("권장량 대비 비율") + "\n")
		cmp := Table{Header: []string{"영양소", "급식 제공량", "권장량", "충족률"}}
		for _, c := range m.Comparisons {
			cmp.Rows = append(cmp.Rows, []string{escape(c.Name), formatValue(c.Observed), formatValue(c.Recommended), c.Ratio.String()})
		}
		cmp.write(doc)
	}

	NewChart(m.Meal.Name+" 영양 성분", n).write(doc, opts)
}
