package template

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/plsfundme/portal/internal/model"
	"github.com/shopspring/decimal"
)

const (
	templateDir string = "tmpl"
	baseFile    string = "base.html"
)

//go:embed tmpl/*.html
var files embed.FS

// Data is what every page receives. Page carries the page specific model.
type Data struct {
	PageTitle string
	Session   *model.Session
	Flash     string
	Error     string
	Page      any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"initial": func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(name)[:1]))
	},
}

// New parses every page together with the base layout once at startup.
func New() (*Renderer, error) {
	entries, err := fs.Glob(files, templateDir+"/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, e := range entries {
		name := strings.TrimPrefix(e, templateDir+"/")
		if name == baseFile {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(files,
			templateDir+"/"+baseFile,
			e,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, tmpl string, td *Data) error {
	t, ok := r.pages[tmpl]
	if !ok {
		return fmt.Errorf("unknown template %q", tmpl)
	}

	buf := &bytes.Buffer{}

	err := t.ExecuteTemplate(buf, "base", td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
