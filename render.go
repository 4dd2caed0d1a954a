package pagewire

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// ParseDocument parses a rendered HTML page into the tree InitSections works
// on.
func ParseDocument(in io.Reader) (*html.Node, error) {
	doc, err := html.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	return doc, nil
}

// WriteDocument renders doc as HTML to out. It never closes out; the caller
// owns the writer.
func WriteDocument(ctx context.Context, out io.Writer, doc *html.Node) error {
	if err := html.Render(out, doc); err != nil {
		logger(ctx).ErrorContext(ctx, "error rendering document", "error", err)
		return fmt.Errorf("error rendering document: %w", err)
	}
	return nil
}

// Bootstrap parses the page read from in, runs d over it, and writes the
// resulting document to out. Malformed section markers are reported in the
// returned error but the document is still written; any other failure from
// InitSections means nothing is written. Like WriteDocument, Bootstrap
// leaves closing out to the caller.
func Bootstrap(ctx context.Context, out io.Writer, in io.Reader, d *Dispatcher, isLoggedIn bool) error {
	doc, err := ParseDocument(in)
	if err != nil {
		return err
	}
	dispatchErr := d.InitSections(ctx, doc, isLoggedIn)
	if dispatchErr != nil && d.State() != StateDone {
		return dispatchErr
	}
	if err := WriteDocument(ctx, out, doc); err != nil {
		return errors.Join(dispatchErr, err)
	}
	return dispatchErr
}
