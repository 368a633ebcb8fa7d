package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"ila/internal/adapter/store"
	"ila/internal/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id: %s", args[0])
	}

	// Deletion never needs the embedder, so open the store directly.
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer st.Close()

	if err := st.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("note %d not found", id)
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Printf("Deleted note %d.\n", id)
	return nil
}
