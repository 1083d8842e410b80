// Package render turns a /get_schemes response into what the results region
// shows: an error line, two short scheme lists, or the whole reply as
// markdown.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/BerylCAtieno/scheme-recommender/internal/classifier"
	"github.com/BerylCAtieno/scheme-recommender/internal/metrics"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

// View is the results region of the page.
type View struct {
	Error string

	CentralLabel string
	StateLabel   string
	Central      []string
	State        []string

	Markdown template.HTML
	Raw      string
}

func (v View) Classified() bool {
	return len(v.Central) > 0 || len(v.State) > 0
}

type Renderer struct {
	markdown *Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{markdown: NewMarkdown()}
}

// Render builds the View for resp. An error response is shown verbatim and
// never classified.
func (r *Renderer) Render(resp models.SchemeResponse) View {
	if resp.Failed() {
		metrics.ClassificationsTotal.WithLabelValues(metrics.KindError).Inc()
		return View{Error: resp.Error}
	}

	res := classifier.Extract(resp.Result)
	if !res.Empty() {
		metrics.ClassificationsTotal.WithLabelValues(metrics.KindClassified).Inc()
		shown := res.Display(classifier.DisplayLimit)
		return View{
			CentralLabel: classifier.CentralLabel,
			StateLabel:   classifier.StateLabel,
			Central:      shown.Central,
			State:        shown.State,
		}
	}

	metrics.ClassificationsTotal.WithLabelValues(metrics.KindFallback).Inc()
	html, err := r.markdown.HTML(resp.Result)
	if err != nil {
		// Fall back to escaped text so the reply is still readable.
		html = template.HTML("<pre>" + template.HTMLEscapeString(resp.Result) + "</pre>")
	}
	return View{Markdown: html, Raw: resp.Result}
}

// Text renders v as plain text for terminals and logs.
func (v View) Text() string {
	var b strings.Builder
	switch {
	case v.Error != "":
		b.WriteString(v.Error)
	case v.Classified():
		writeList(&b, v.CentralLabel, v.Central)
		writeList(&b, v.StateLabel, v.State)
	default:
		b.WriteString(v.Raw)
	}
	return b.String()
}

func writeList(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(b, label)
	for i, name := range names {
		fmt.Fprintf(b, "  %d. %s\n", i+1, name)
	}
}
