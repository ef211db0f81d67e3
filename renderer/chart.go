package renderer

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/etnz/schoolmeal"
	"golang.org/x/text/width"
)

// TitleColor is the color of chart titles.
const TitleColor = "#FF69B4"

// Pastel is the qualitative palette used to color bars, one color per category.
var Pastel = []string{
	"rgb(102, 197, 204)",
	"rgb(246, 207, 113)",
	"rgb(248, 156, 116)",
	"rgb(220, 176, 242)",
	"rgb(135, 197, 95)",
	"rgb(158, 185, 243)",
	"rgb(254, 136, 177)",
	"rgb(201, 219, 116)",
	"rgb(139, 224, 164)",
	"rgb(180, 151, 231)",
	"rgb(179, 179, 179)",
}

// Bar is one category of a bar chart.
type Bar struct {
	Label string
	Value float64
	Color string
}

// Chart is a bar chart with one bar per nutrient.
type Chart struct {
	Title      string
	TitleColor string
	Bars       []Bar
}

// NewChart returns a chart of the nutrients, colors cycling through Pastel.
func NewChart(title string, n *schoolmeal.Nutrients) Chart {
	c := Chart{Title: title, TitleColor: TitleColor}
	i := 0
	for name, v := range n.All() {
		c.Bars = append(c.Bars, Bar{Label: name, Value: v, Color: Pastel[i%len(Pastel)]})
		i++
	}
	return c
}

func (c Chart) peak() float64 {
	m := 0.0
	for _, b := range c.Bars {
		m = max(m, b.Value)
	}
	return m
}

// textBarWidth is the number of cells of the longest text bar.
const textBarWidth = 30

// Text renders the chart as horizontal unicode bars. Labels are padded to the same display width.
func (c Chart) Text() string {
	var b strings.Builder
	fmt.Fprintln(&b, c.Title)
	labelWidth := 0
	for _, bar := range c.Bars {
		labelWidth = max(labelWidth, displayWidth(bar.Label))
	}
	m := c.peak()
	for _, bar := range c.Bars {
		n := 0
		if m > 0 {
			n = int(bar.Value / m * textBarWidth)
		}
		if n == 0 && bar.Value > 0 {
			n = 1
		}
		pad := strings.Repeat(" ", labelWidth-displayWidth(bar.Label))
		fmt.Fprintf(&b, "%s%s │%s %s\n", bar.Label, pad, strings.Repeat("█", n), formatValue(bar.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// displayWidth returns the number of terminal cells used by s.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// SVG layout, in pixels.
const (
	svgWidth     = 640
	svgHeight    = 360
	svgTop       = 60
	svgBottom    = 50
	svgSide      = 30
	svgBarMargin = 0.2 // fraction of a slot left empty on each side of a bar
)

// SVG renders the chart as vertical bars in an inline svg element.
func (c Chart) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="100%%" role="img">`, svgWidth, svgHeight)
	fmt.Fprintf(&b, `<title>%s</title>`, html.EscapeString(c.Title))
	fmt.Fprintf(&b, `<text x="%d" y="32" font-size="20" fill="%s">%s</text>`, svgSide, c.TitleColor, html.EscapeString(c.Title))

	plot := float64(svgHeight - svgTop - svgBottom)
	base := float64(svgHeight - svgBottom)
	m := c.peak()
	if len(c.Bars) > 0 {
		slot := float64(svgWidth-2*svgSide) / float64(len(c.Bars))
		for i, bar := range c.Bars {
			h := 0.0
			if m > 0 {
				h = bar.Value / m * plot
			}
			x := float64(svgSide) + float64(i)*slot
			w := slot * (1 - 2*svgBarMargin)
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`, x+slot*svgBarMargin, base-h, w, h, bar.Color)
			fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%s</text>`, x+slot/2, base-h-4, formatValue(bar.Value))
			fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%s</text>`, x+slot/2, base+18, html.EscapeString(shorten(bar.Label, slot)))
		}
	}
	fmt.Fprintf(&b, `<line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#ccc"/>`, svgSide, base, svgWidth-svgSide, base)
	b.WriteString(`</svg>`)
	return b.String()
}

// shorten truncates a label that would not fit in a slot of the given width, at 7px per cell.
func shorten(label string, slot float64) string {
	limit := int(slot / 7)
	if displayWidth(label) <= limit || limit < 2 {
		return label
	}
	var b strings.Builder
	w := 0
	for _, r := range label {
		rw := displayWidth(string(r))
		if w+rw > limit-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteString("…")
	return b.String()
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
