package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their colors and group counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			for _, t := range s.reg.Snapshot().Tags() {
				fmt.Fprintf(out, "%d\t%s\t%s\t%d\n", t.Index, t.Name, t.Color.Hex(), s.store.CountByTag(t.Index))
			}
			return nil
		},
	}
}
