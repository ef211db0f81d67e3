package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
	"github.com/etnz/schoolmeal/renderer"
)

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html"))

// pageData feeds templates/page.html.
type pageData struct {
	Title string
	Date  string
	Today string
	Body  template.HTML
}

// handlePage renders the meals of ?date= (today by default) and the weekly average ending today.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false)
		return
	}

	today := s.today()
	on := today
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := date.ParseOrToday(q)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false)
			return
		}
		on = d
	}

	ctx := r.Context()
	daily := schoolmeal.BuildDaily(ctx, s.fetcher, on, s.table)
	daily.School = s.school
	weekly := schoolmeal.BuildWeekly(ctx, s.fetcher, today)

	src := renderer.PageMarkdown(daily, weekly, renderer.Options{Charts: renderer.ChartSVG})
	var body bytes.Buffer
	if err := s.md.Convert([]byte(src), &body); err != nil {
		log.Printf("cannot convert page to html: %v", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "cannot render page", true)
		return
	}

	var out bytes.Buffer
	err := page.Execute(&out, pageData{
		Title: renderer.Title(s.school),
		Date:  on.String(),
		Today: today.String(),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		log.Printf("cannot execute page template: %v", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "cannot render page", true)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Bytes()); err != nil {
		log.Printf("response write failed: %v", err)
	}
}
