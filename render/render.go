// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// SectionView is a section with its inputs in display order.
type SectionView struct {
	Section models.Section
	Inputs  []models.Input
}

type HomeView struct {
	Forms []models.FormSummary
}

// BuilderView is the builder page for one form. Selected is the section the
// add-input form targets.
type BuilderView struct {
	Form     models.Form
	Selected string
	Error    string
}

// FillView is the fill page. Values and Errors are keyed by input id and
// carry a failed submission back to the user.
type FillView struct {
	Form      models.Form
	Values    map[string]string
	Errors    map[string]string
	Error     string
	Submitted bool
}

type field struct {
	Input models.Input
	Value string
	Error string
}

var funcs = template.FuncMap{
	"ago": humanize.Time,
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"fieldOf": func(in models.Input, values, errors map[string]string) field {
		f := field{Input: in, Error: errors[in.ID]}
		if in.Type != models.InputPassword {
			f.Value = values[in.ID]
		}
		return f
	},
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{"home", "builder", "fill"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

func (r *Renderer) Home(w io.Writer, v HomeView) error {
	return r.execute(w, "home", v)
}

// Builder renders the builder mode of a form.
func (r *Renderer) Builder(w io.Writer, v BuilderView) error {
	sections := Sections(&v.Form)
	return r.execute(w, "builder", struct {
		BuilderView
		Sections   []SectionView
		InputTypes []string
		InputCount int
		MaxInputs  int
		AtLimit    bool
	}{
		BuilderView: v,
		Sections:    sections,
		InputTypes:  models.InputTypes,
		InputCount:  len(v.Form.Inputs),
		MaxInputs:   models.MaxInputs,
		AtLimit:     len(v.Form.Inputs) >= models.MaxInputs,
	})
}

// Fill renders the fill mode of a form.
func (r *Renderer) Fill(w io.Writer, v FillView) error {
	return r.execute(w, "fill", struct {
		FillView
		Sections []SectionView
	}{
		FillView: v,
		Sections: Sections(&v.Form),
	})
}

// execute renders into a buffer first so a template error never leaves a
// half written page.
func (r *Renderer) execute(w io.Writer, page string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Sections groups the inputs of f under their sections, both in display order.
func Sections(f *models.Form) []SectionView {
	ordered := formmodel.OrderedSections(f)
	views := make([]SectionView, 0, len(ordered))
	for _, s := range ordered {
		views = append(views, SectionView{Section: s, Inputs: formmodel.SectionInputs(f, s.ID)})
	}
	return views
}

// CollectValues reads one value per input from a submitted HTML form.
// Blank fields are left out, as an untouched field would be.
func CollectValues(f *models.Form, values url.Values) map[string]any {
	data := make(map[string]any)
	for _, in := range f.Inputs {
		v := strings.TrimSpace(values.Get(in.ID))
		if v == "" {
			continue
		}
		data[in.ID] = v
	}
	return data
}

// StringValues converts submission data back into form field values.
func StringValues(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
