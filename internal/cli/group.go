package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todotree/internal/storage"
)

func newGroupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "group <id>",
		Short: "Show one group by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			row, err := s.repo.GetGroup(cmd.Context(), args[0])
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("group %s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\t%s\t%s\n", row.ID, row.Title, s.reg.TagAt(row.TagIndex).Name)
			if row.Asset != "" {
				fmt.Fprintf(out, "asset: %s\n", row.Asset)
			}
			if g := s.store.Find(row.ID); g != nil {
				for _, t := range g.Todos() {
					fmt.Fprintf(out, "- %s [%s, %s]\n", t.Title, t.Priority(s.reg).Name, t.Progress(s.reg).Status)
				}
			}
			return nil
		},
	}
}
