package pagewire_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"impractical.co/pagewire"
)

const testComponents = `<span class="loading-icon">Loading...</span>` +
	`<div class="card"><h2 class="card__title"></h2><p>body</p></div>`

// buildPage returns a full page with the passed markup inside main and inside
// the component container.
func buildPage(sections, components string) string {
	return `<!doctype html>
<html lang="en">
	<head><title>test</title></head>
	<body>
		<header class="global-header"><nav></nav></header>
		<main>` + sections + `</main>
		<footer class="global-footer">
			<p>footer text</p>
			<div class="component-container" id="components">` + components + `</div>
		</footer>
	</body>
</html>`
}

func parsePage(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := pagewire.ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func renderNode(t *testing.T, node *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, node))
	return buf.String()
}

// find returns the first node under root matching selector, failing the test
// if there isn't one.
func find(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()
	found := goquery.NewDocumentFromNode(root).Find(selector)
	require.Positive(t, found.Length(), "nothing matches %q", selector)
	return found.Get(0)
}

func count(root *html.Node, selector string) int {
	return goquery.NewDocumentFromNode(root).Find(selector).Length()
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// captureLogs returns a logger writing text records to the returned buffer.
func captureLogs() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
