package pagewire

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Components is a registry of markup fragments that can be cloned on demand.
// The fragments are authored in the document itself, as the direct children
// of a container element in the footer; Init collects them, keyed by their
// class attribute, and removes the container so none of them are displayed.
//
// A Components must be created with NewComponents or by a Dispatcher, its
// empty value is not usable. Init should be called before any call to
// Create; after that it can safely be used by multiple goroutines.
type Components struct {
	// templates are the fragments collected by the last call to Init.
	// They're detached from the document and never handed out directly,
	// only clones of them are.
	templates   map[string]*html.Node
	templatesMu sync.RWMutex

	// container is where Init looks for templates, relative to the
	// root it's passed.
	container cascadia.Selector
}

// NewComponents returns an empty Components that finds its templates in the
// element matching DefaultContainerSelector.
func NewComponents() *Components {
	return newComponents(cascadia.MustCompile(DefaultContainerSelector))
}

func newComponents(container cascadia.Selector) *Components {
	return &Components{
		templates: map[string]*html.Node{},
		container: container,
	}
}

// Init registers every direct child of the component container found inside
// root as a template, keyed by its class attribute with surrounding
// whitespace trimmed. If two children have the same key, the later one wins.
// Children whose class attribute is missing or blank are not registered at
// all, rather than being stored under the empty key; each one is logged as a
// warning. The container is then removed from the document.
//
// Templates from any previous call to Init are discarded. If no container
// can be found, Init returns an error wrapping ErrStructuralPrecondition and
// the registry is left as it was.
func (c *Components) Init(ctx context.Context, root *html.Node) error {
	if root == nil {
		return fmt.Errorf("no root to find components in: %w", ErrStructuralPrecondition)
	}
	container := goquery.NewDocumentFromNode(root).FindMatcher(c.container).First()
	if container.Length() < 1 {
		return fmt.Errorf("component container: %w", ErrStructuralPrecondition)
	}

	templates := map[string]*html.Node{}
	container.Children().Each(func(_ int, child *goquery.Selection) {
		key := strings.TrimSpace(child.AttrOr("class", ""))
		if key == "" {
			logger(ctx).WarnContext(ctx, "skipping component template without a class",
				slog.String("element", goquery.NodeName(child)))
			return
		}
		if _, ok := templates[key]; ok {
			logger(ctx).DebugContext(ctx, "component template replaced by a later one",
				slog.String("component", key))
		}
		templates[key] = child.Get(0)
	})
	container.Remove()

	c.templatesMu.Lock()
	defer c.templatesMu.Unlock()
	c.templates = templates
	return nil
}

// Create returns a deep copy of the template registered under key. The copy
// has no parent or siblings; it's up to the caller to put it in the
// document.
//
// If nothing is registered under key, the miss is logged and Create returns
// nil along with an error wrapping ErrComponentNotFound.
func (c *Components) Create(ctx context.Context, key string) (*html.Node, error) {
	c.templatesMu.RLock()
	tmpl, ok := c.templates[key]
	c.templatesMu.RUnlock()
	if !ok {
		logger(ctx).ErrorContext(ctx, "component doesn't exist", slog.String("component", key))
		return nil, fmt.Errorf("%q: %w", key, ErrComponentNotFound)
	}
	return goquery.NewDocumentFromNode(tmpl).Clone().Get(0), nil
}

// Has reports whether a template is registered under key, without logging
// anything if it isn't.
func (c *Components) Has(key string) bool {
	c.templatesMu.RLock()
	defer c.templatesMu.RUnlock()
	_, ok := c.templates[key]
	return ok
}

// Keys returns the keys of every registered template, sorted.
func (c *Components) Keys() []string {
	c.templatesMu.RLock()
	defer c.templatesMu.RUnlock()
	keys := make([]string, 0, len(c.templates))
	for key := range c.templates {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
