package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherline/server/internal/storage/memory"
)

var validateSeedCmd = &cobra.Command{
	Use:   "validate-seed <path>",
	Short: "Validate a seed document",
	Long: `Parse a seed document (YAML or JSON) and verify that every entity has an
id and that ids are unique within each collection. Cross-collection
references are not checked; dangling references are legal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := memory.LoadSeedFile(args[0])
		if err != nil {
			return err
		}
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seed OK: %d accounts, %d events, %d locations, %d participations\n",
			len(doc.Accounts), len(doc.Events), len(doc.Locations), len(doc.Participations))
		return nil
	},
}
