package mail

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var ErrUnknownTemplate = errors.New("mail: unknown template")

// Rendered is a message body in both plain text and HTML.
type Rendered struct {
	Text string
	HTML string
}

// Renderer executes the embedded mail templates. Every template name has a
// "<name>.txt.tmpl" and a "<name>.html.tmpl" file.
type Renderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	text, err := texttemplate.New("mail").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mail: parse text templates: %w", err)
	}
	html, err := htmltemplate.New("mail").Option("missingkey=error").ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mail: parse html templates: %w", err)
	}
	return &Renderer{text: text, html: html}, nil
}

// Render executes both variants of the named template.
func (r *Renderer) Render(name string, data any) (Rendered, error) {
	text := r.text.Lookup(name + ".txt.tmpl")
	html := r.html.Lookup(name + ".html.tmpl")
	if text == nil || html == nil {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	var tb, hb bytes.Buffer
	if err := text.Execute(&tb, data); err != nil {
		return Rendered{}, fmt.Errorf("mail: render %s text: %w", name, err)
	}
	if err := html.Execute(&hb, data); err != nil {
		return Rendered{}, fmt.Errorf("mail: render %s html: %w", name, err)
	}
	return Rendered{Text: tb.String(), HTML: hb.String()}, nil
}
