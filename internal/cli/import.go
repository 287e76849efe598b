package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todotree/internal/storage"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database contents with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			doc, err := storage.DecodeDocument(f)
			_ = f.Close()
			if err != nil {
				return err
			}
			reg, store, err := doc.Restore()
			if err != nil {
				return err
			}

			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			s.reg, s.store = reg, store
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			s.logger.Info("imported", "file", args[0], "groups", store.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d group(s) from %s\n", store.Len(), args[0])
			return nil
		},
	}
}
