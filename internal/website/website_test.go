package website

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/techflow/launchpad/pkg/hero"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, n.Render(&sb))
	return sb.String()
}

func TestDocument(t *testing.T) {
	cfg := DefaultPageConfig()
	cfg.URL = "https://techflow.example"
	out := render(t, Document(cfg, "abc123", h.Div(h.ID("lv-root"))))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html lang=\"en\">"))
	assert.Contains(t, out, `<div id="lv-root"></div>`)
	assert.Contains(t, out, `<section id="features" class="features"`)
	assert.Contains(t, out, `<link rel="canonical" href="https://techflow.example">`)
	assert.Contains(t, out, `<meta property="og:locale" content="en">`)
	assert.Contains(t, out, `<style nonce="abc123">`)
	assert.Contains(t, out, `<script src="/assets/launchpad.js" defer nonce="abc123"></script>`)

	// Live root comes before the features anchor.
	assert.Less(t, strings.Index(out, `id="lv-root"`), strings.Index(out, `id="features"`))
}

func TestDocument_WithoutNonce(t *testing.T) {
	out := render(t, Document(PageConfig{Title: "T"}, "", g.Text("x")))
	assert.NotContains(t, out, "nonce=")
	assert.Contains(t, out, `<script src="/assets/launchpad.js" defer></script>`)
	assert.Contains(t, out, `<title>T</title>`)
}

func TestLayout_UsesRequestNonce(t *testing.T) {
	layout := Layout(DefaultPageConfig())
	out := render(t, layout(context.Background(), g.Text("root")))
	assert.Contains(t, out, "root")
	assert.NotContains(t, out, "nonce=")
}

func TestHead_EscapesMetadata(t *testing.T) {
	out := render(t, Head(PageConfig{Title: `A "quoted" <title>`, Author: "</script><b>"}, ""))
	assert.Contains(t, out, `<title>A &#34;quoted&#34; &lt;title&gt;</title>`)
	assert.NotContains(t, out, "</script><b>")
	assert.Contains(t, out, `</script>`)
}

func TestRenderStyles(t *testing.T) {
	css := RenderStyles()
	for _, class := range []string{".hero-orb-primary", ".hero-pattern-gradient", ".hero-countdown", ".typed-cursor", ".features-grid"} {
		assert.Contains(t, css, class)
	}
	assert.Equal(t, css, RenderStyles(), "stable output")

	custom := RenderStyles(WithCustomColors(map[string]string{"primary": "#000000"}))
	assert.Contains(t, custom, "--color-primary:#000000")
	assert.Equal(t, "#8B5CF6", Colors["primary"])
}

func TestContentHandler(t *testing.T) {
	title := "Ship faster"
	rec := httptest.NewRecorder()
	ContentHandler(&hero.Overrides{Title: &title}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ContentPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc ContentDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, hero.SectionKey, doc.Section)
	require.NotEmpty(t, doc.Editables)
	assert.Contains(t, doc.Editables, hero.Editable{Key: "title", Kind: hero.EditableText, Value: title})
	assert.Contains(t, doc.Editables, hero.Editable{Key: "primaryCTAHref", Kind: hero.EditableLink, Value: "/signup"})
}
