package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"impractical.co/pagewire"
)

func newComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components FILE",
		Short: "List the component templates in a page's footer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openPage(args[0])
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
			// marker problems don't matter here, only whether the
			// registry got filled
			_ = d.InitSections(a.context(cmd), doc, a.settings.LoggedIn)
			if d.State() != pagewire.StateDone {
				return fmt.Errorf("%s: no components: document is missing required elements", args[0])
			}
			for _, key := range d.Components().Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
