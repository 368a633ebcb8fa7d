package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a note to the archive",
	Long: `Embed the given text and store it as a new note.

Example:
  ila add "Go maps are not safe for concurrent writes"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	archive, cleanup, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	id, err := archive.AddNote(args[0])
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("Added note %d.\n", id)
	return nil
}
