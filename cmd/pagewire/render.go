package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"impractical.co/pagewire"
)

// readyAttr is set on every section a handler was found for, with the
// section's identifier as its value.
const readyAttr = "data-pagewire-section"

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Bootstrap a page and print the resulting document",
		Long: `Bootstrap a page and print the resulting document. The component container
is removed from the footer, and every section with a handler is tagged with a
` + readyAttr + ` attribute naming its identifier.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openPage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			d, err := a.dispatcher(markSection)
			if err != nil {
				return err
			}
			// stdout belongs to the process, Bootstrap doesn't close it
			err = pagewire.Bootstrap(a.context(cmd), cmd.OutOrStdout(), f, d, a.settings.LoggedIn)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}
}

func markSection(id pagewire.Identifier) pagewire.Handler {
	return pagewire.HandlerFunc(func(_ context.Context, section pagewire.Section) {
		section.Node.Attr = append(section.Node.Attr, html.Attribute{Key: readyAttr, Val: string(id)})
	})
}
