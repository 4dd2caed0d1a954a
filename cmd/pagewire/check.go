package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"impractical.co/pagewire"
)

var errCheckFailed = errors.New("one or more pages failed the check")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Run the section dispatcher over pages and report what it finds",
		Long: `Run the section dispatcher over each page and print one line per section,
saying whether it would be handed to a handler, skipped because nothing
handles it, or rejected because its marker doesn't name an identifier.

Pages missing the header, main, footer, or component container fail outright.

Examples:
  # Check a page with the default set of handled sections
  pagewire check build/user.html

  # Only treat user and post sections as handled
  pagewire check --handle user --handle post build/*.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			failed := false
			for _, path := range args {
				if err := a.checkPage(ctx, cmd.OutOrStdout(), path); err != nil {
					failed = true
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
				}
			}
			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}

func (a *app) checkPage(ctx context.Context, out io.Writer, path string) error {
	f, err := openPage(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := pagewire.ParseDocument(f)
	if err != nil {
		return err
	}
	d, err := a.dispatcher(ignoreSection)
	if err != nil {
		return err
	}
	dispatchErr := d.InitSections(ctx, doc, a.settings.LoggedIn)
	if d.State() != pagewire.StateDone {
		return dispatchErr
	}

	report := d.Report()
	for _, res := range report.Sections {
		switch res.Outcome {
		case pagewire.OutcomeMalformed:
			fmt.Fprintf(out, "%s: section %d: %s (class %q)\n", path, res.Index, res.Outcome, res.Class)
		default:
			fmt.Fprintf(out, "%s: section %d: %s %s\n", path, res.Index, res.ID, res.Outcome)
		}
	}
	fmt.Fprintf(out, "%s: %d sections, %d dispatched, %d unhandled, %d malformed, %d components\n",
		path, len(report.Sections),
		report.Count(pagewire.OutcomeDispatched),
		report.Count(pagewire.OutcomeUnhandled),
		report.Count(pagewire.OutcomeMalformed),
		len(d.Components().Keys()))
	return dispatchErr
}
