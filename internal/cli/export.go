package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todotree/internal/storage"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write tags, lookups and groups as JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			doc := storage.NewDocument(s.reg, s.store)
			if len(args) == 0 {
				return storage.EncodeDocument(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := storage.EncodeDocument(f, doc); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			s.logger.Info("exported", "file", args[0], "groups", len(doc.Groups))
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d group(s) to %s\n", len(doc.Groups), args[0])
			return nil
		},
	}
}
