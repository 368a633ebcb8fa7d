package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"ila/internal/adapter/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes in ascending id order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer st.Close()

	notes, err := st.List()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found. Use 'add' to create your first note.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tCONTENT")
	for _, note := range notes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			note.ID,
			note.CreatedAt.Format("2006-01-02 15:04"),
			note.SourceFile,
			truncate(note.Content, 72),
		)
	}
	return w.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
