package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/mailer"
	"github.com/fleetreach/commworker/pkg/sanitizer"
)

// TemplateStore is the subset of central.Store the renderer needs. Defined
// as a small interface so tests can supply a fake rather than a live store.
type TemplateStore interface {
	GetMessageTemplate(ctx context.Context, eventType string) (central.MessageTemplate, bool, error)
}

// Rendered is the {subject, body, html_body} triple a TemplateRenderer
// produces for one event type.
type Rendered struct {
	Subject  string
	Body     string // plain text, post-template-execution, pre-markdown
	HTMLBody string // sanitized HTML
}

// Renderer implements the shipped TemplateRenderer: central store override,
// falling back to a bundled markdown file.
type Renderer struct {
	store           TemplateStore
	fallbackFS      fs.FS
	fallbackSubject string
	md              goldmark.Markdown
}

// New creates a Renderer. fallbackFS must resolve "<event_type>.md" at its
// root — pass fs.Sub(content.Templates, "templates") when wiring the
// embedded defaults. fallbackSubject is used when neither the store row nor
// the bundled file's frontmatter name a subject.
func New(store TemplateStore, fallbackFS fs.FS, fallbackSubject string) *Renderer {
	return &Renderer{
		store:           store,
		fallbackFS:      fallbackFS,
		fallbackSubject: fallbackSubject,
		md:              goldmark.New(),
	}
}

// Render resolves eventType's template and executes it against vars,
// producing subject/body/html_body. vars fields are referenced in templates
// as {{.FieldName}}.
func (r *Renderer) Render(ctx context.Context, eventType string, vars any) (Rendered, error) {
	subjectSrc, bodySrc, err := r.resolve(ctx, eventType)
	if err != nil {
		return Rendered{}, err
	}

	subject, err := execText(subjectSrc, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: subject: %w", ErrRenderFailed, err)
	}

	body, err := execText(bodySrc, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: body: %w", ErrRenderFailed, err)
	}

	var htmlBuf bytes.Buffer
	if err := r.md.Convert([]byte(body), &htmlBuf); err != nil {
		return Rendered{}, fmt.Errorf("%w: markdown conversion: %w", ErrRenderFailed, err)
	}

	return Rendered{
		Subject:  subject,
		Body:     body,
		HTMLBody: sanitizer.SanitizeHTML(htmlBuf.String()),
	}, nil
}

// resolve returns the raw (unexecuted) subject and body template strings
// for eventType, in the store-row-then-bundled-file order.
func (r *Renderer) resolve(ctx context.Context, eventType string) (subject, body string, err error) {
	if r.store != nil {
		tmpl, found, err := r.store.GetMessageTemplate(ctx, eventType)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
		}
		if found {
			subject := tmpl.SubjectTemplate
			if subject == "" {
				subject = r.fallbackSubject
			}
			return subject, tmpl.BodyTemplate, nil
		}
	}

	content, err := fs.ReadFile(r.fallbackFS, eventType+".md")
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrTemplateNotFound, eventType)
	}

	parsed, err := mailer.ParseTemplate(content)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrRenderFailed, eventType, err)
	}

	subject = r.fallbackSubject
	if s, ok := parsed.Metadata["subject"].(string); ok && s != "" {
		subject = s
	}
	return subject, parsed.Body, nil
}

func execText(src string, vars any) (string, error) {
	tmpl, err := texttemplate.New("content").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", err
	}
	return buf.String(), nil
}
