// Package renderer turns meal reports into markdown: cards, tables and bar charts.
package renderer

import (
	"html"
	"strings"

	md "github.com/nao1215/markdown"
)

// ChartStyle selects how charts are drawn.
type ChartStyle int

const (
	// ChartText draws unicode bars in a fenced block, for terminals.
	ChartText ChartStyle = iota
	// ChartSVG draws inline SVG, for HTML pages rendered with raw HTML enabled.
	ChartSVG
)

// Options holds configuration for rendering a report.
type Options struct {
	Charts ChartStyle
}

// Title returns the page title for a school.
func Title(school string) string {
	if school == "" {
		return "🍱 급식 & 영양소 분석"
	}
	return "🍱 " + school + " 급식 & 영양소 분석"
}

// Card is a titled block of preformatted text.
type Card struct {
	Title string
	Text  string
}

func (c Card) write(doc *md.Markdown) {
	doc.H3(c.Title)
	if c.Text != "" {
		fenced(doc, c.Text)
	}
}

// Table is a header and rows of cells. The first column is left aligned, the others right aligned.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) write(doc *md.Markdown) {
	align := make([]md.TableAlignment, len(t.Header))
	for i := range align {
		align[i] = md.AlignRight
	}
	if len(align) > 0 {
		align[0] = md.AlignLeft
	}
	doc.Table(md.TableSet{
		Alignment: align,
		Header:    t.Header,
		Rows:      t.Rows,
	})
}

func (c Chart) write(doc *md.Markdown, opts Options) {
	switch opts.Charts {
	case ChartSVG:
		// A div starts an HTML block that runs until the next blank line.
		doc.PlainText(`<div class="chart">` + c.SVG() + `</div>` + "\n")
	default:
		fenced(doc, c.Text())
	}
}

// failures writes one block quote per error.
func failures(doc *md.Markdown, errs []error) {
	for _, err := range errs {
		advisory(doc, escape(err.Error()))
	}
}

// advisory writes a warning block quote, closed by a blank line so that the
// next line does not continue it.
func advisory(doc *md.Markdown, text string) {
	doc.Blockquote("⚠️ " + text)
	doc.PlainText("")
}

// fenced writes text in a code block. Backquotes are replaced so that the text cannot close the fence.
func fenced(doc *md.Markdown, text string) {
	doc.CodeBlocks("text", strings.ReplaceAll(text, "`", "'"))
}

// cellEscaper neutralizes markup in text coming from the meal service.
var cellEscaper = strings.NewReplacer("|", `\|`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`)

// escape returns s safe to use as inline markdown text, HTML included.
func escape(s string) string { return cellEscaper.Replace(html.EscapeString(s)) }
