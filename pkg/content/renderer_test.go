package content_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/content"
)

type fakeStore struct {
	tmpl  central.MessageTemplate
	found bool
	err   error
}

func (f fakeStore) GetMessageTemplate(ctx context.Context, eventType string) (central.MessageTemplate, bool, error) {
	return f.tmpl, f.found, f.err
}

func TestRenderer_StoreRowWins(t *testing.T) {
	store := fakeStore{
		found: true,
		tmpl: central.MessageTemplate{
			EventType:       "service_reminder",
			SubjectTemplate: "Hello {{.Name}}",
			BodyTemplate:    "Body for {{.Name}}",
		},
	}
	fsys := fstest.MapFS{}

	r := content.New(store, fsys, "fallback subject")
	out, err := r.Render(context.Background(), "service_reminder", map[string]string{"Name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice", out.Subject)
	assert.Equal(t, "Body for Alice", out.Body)
}

func TestRenderer_FallsBackToBundledFile(t *testing.T) {
	store := fakeStore{found: false}
	fsys := fstest.MapFS{
		"service_reminder.md": &fstest.MapFile{Data: []byte("---\nsubject: \"Bundled subject\"\n---\nHello {{.Name}}\n")},
	}

	r := content.New(store, fsys, "fallback subject")
	out, err := r.Render(context.Background(), "service_reminder", map[string]string{"Name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Bundled subject", out.Subject)
	assert.Contains(t, out.Body, "Hello Bob")
}

func TestRenderer_NoFrontmatterSubjectUsesFallback(t *testing.T) {
	store := fakeStore{found: false}
	fsys := fstest.MapFS{
		"bare.md": &fstest.MapFile{Data: []byte("Just a body, no frontmatter.\n")},
	}

	r := content.New(store, fsys, "configured fallback")
	out, err := r.Render(context.Background(), "bare", nil)
	require.NoError(t, err)
	assert.Equal(t, "configured fallback", out.Subject)
}

func TestRenderer_SanitizesHTML(t *testing.T) {
	store := fakeStore{
		found: true,
		tmpl: central.MessageTemplate{
			SubjectTemplate: "s",
			BodyTemplate:    "<script>alert(1)</script>Hello",
		},
	}
	r := content.New(store, fstest.MapFS{}, "s")
	out, err := r.Render(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.NotContains(t, out.HTMLBody, "<script>")
}

func TestRenderer_TemplateNotFound(t *testing.T) {
	store := fakeStore{found: false}
	r := content.New(store, fstest.MapFS{}, "fallback")
	_, err := r.Render(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, content.ErrTemplateNotFound)
}
