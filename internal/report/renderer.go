package report

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/fjglira/issuebench/internal/domain"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the name of the embedded report template.
const DefaultTemplate = "report.md"

// Renderer turns a benchmark result into a markdown report.
type Renderer interface {
	Render(result *domain.Result, facts domain.RunnerFacts) (string, error)
	ListTemplates() []string
}

// suiteView is one suite as the template sees it.
type suiteView struct {
	Name       string
	ChartImage string
	Rows       [][]string
}

// templateData is the struct passed to templates.
type templateData struct {
	Title  string
	Suites []suiteView
	Facts  domain.RunnerFacts
}

// TemplateRenderer implements Renderer with text/template.
type TemplateRenderer struct {
	templates   map[string]*template.Template
	defaultName string
}

// NewRenderer loads the embedded templates and then any .tmpl files found in
// templateDir, which may override them. An empty or missing directory is not
// an error.
func NewRenderer(templateDir, defaultTemplate string) (*TemplateRenderer, error) {
	if defaultTemplate == "" {
		defaultTemplate = DefaultTemplate
	}
	r := &TemplateRenderer{
		templates:   make(map[string]*template.Template),
		defaultName: defaultTemplate,
	}

	if err := r.loadEmbedded(); err != nil {
		return nil, err
	}
	if templateDir != "" {
		if err := r.loadDir(templateDir); err != nil {
			return nil, err
		}
	}

	if _, ok := r.templates[r.defaultName]; !ok {
		return nil, domain.NewError("render", templateDir, 0,
			fmt.Sprintf("template %q not found (available: %s)", r.defaultName, strings.Join(r.ListTemplates(), ", ")), nil)
	}
	return r, nil
}

func (r *TemplateRenderer) loadEmbedded() error {
	entries, err := embeddedTemplates.ReadDir("templates")
	if err != nil {
		return domain.NewError("render", "templates", 0, "failed to read embedded templates", err)
	}
	for _, entry := range entries {
		content, err := embeddedTemplates.ReadFile("templates/" + entry.Name())
		if err != nil {
			return domain.NewError("render", entry.Name(), 0, "failed to read embedded template", err)
		}
		if err := r.add(entry.Name(), string(content)); err != nil {
			return err
		}
	}
	return nil
}

// loadDir reads all .tmpl files from the template directory.
func (r *TemplateRenderer) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return domain.NewError("render", dir, 0, "failed to read template directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return domain.NewError("render", path, 0, "failed to read template file", err)
		}
		if err := r.add(entry.Name(), string(content)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TemplateRenderer) add(fileName, content string) error {
	name := strings.TrimSuffix(fileName, ".tmpl")
	tmpl, err := template.New(name).Funcs(CustomFuncMap()).Parse(content)
	if err != nil {
		return domain.NewError("render", fileName, 0, "failed to parse template", err)
	}
	r.templates[name] = tmpl
	return nil
}

// Render renders the result with the default template.
func (r *TemplateRenderer) Render(result *domain.Result, facts domain.RunnerFacts) (string, error) {
	data := templateData{Title: result.Name, Facts: facts}
	for _, s := range result.Suites {
		view := suiteView{Name: s.Name, ChartImage: s.ChartImage}
		for _, t := range s.Tests {
			view.Rows = append(view.Rows, Row(t))
		}
		data.Suites = append(data.Suites, view)
	}

	var buf bytes.Buffer
	if err := r.templates[r.defaultName].Execute(&buf, data); err != nil {
		return "", domain.NewError("render", r.defaultName, 0, "failed to execute template", err)
	}
	return buf.String(), nil
}

// ListTemplates returns the names of all loaded templates, sorted.
func (r *TemplateRenderer) ListTemplates() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
