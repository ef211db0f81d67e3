package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/schoolmeal"
	md "github.com/nao1215/markdown"
)

// WeeklyMarkdown renders the nutrient average of the last days as a table and a chart.
func WeeklyMarkdown(r *schoolmeal.WeeklyReport, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("📊 지난 %d일 평균 영양소 분석", schoolmeal.WindowDays))
	if r.Aggregate != nil {
		doc.PlainText(fmt.Sprintf("기간: %s ~ %s\n", r.Aggregate.Window.From, r.Aggregate.Window.To))
		failures(doc, r.Aggregate.Failures)
	}
	if !r.OK {
		advisory(doc, schoolmeal.NoWeeklyAdvisory)
		return doc.String()
	}

	avg := Table{Header: []string{"영양소", "평균값"}}
	for name, v := range r.Average.All() {
		avg.Rows = append(avg.Rows, []string{escape(name), formatValue(v)})
	}
	avg.write(doc)

	NewChart(fmt.Sprintf("지난 %d일 평균 영양소", schoolmeal.WindowDays), r.Average).write(doc, opts)
	return doc.String()
}

// PageMarkdown renders a daily report followed by a weekly one.
func PageMarkdown(daily *schoolmeal.DailyReport, weekly *schoolmeal.WeeklyReport, opts Options) string {
	return DailyMarkdown(daily, opts) + "\n\n" + WeeklyMarkdown(weekly, opts)
}
