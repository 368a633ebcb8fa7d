package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findTopK int

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find the most semantically similar notes",
	Long: `Embed the query and rank every stored note by cosine similarity.

Example:
  ila find "programming languages" -k 5`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().IntVarP(&findTopK, "top-k", "k", 0, "number of results (default from config)")
}

func runFind(cmd *cobra.Command, args []string) error {
	archive, cleanup, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	topK := cfg.Retrieve.TopK
	if findTopK > 0 {
		topK = findTopK
	}

	results, err := archive.Find(args[0], topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No notes found. Use 'add' to create your first note.")
		return nil
	}

	fmt.Printf("Top %d notes for: %s\n\n", len(results), args[0])
	for i, r := range results {
		source := ""
		if r.Note.SourceFile != "" {
			source = " from " + r.Note.SourceFile
		}
		fmt.Printf("--- [%d] note %d%s (score: %.4f) ---\n", i+1, r.Note.ID, source, r.Score)
		fmt.Println(truncate(r.Note.Content, 500))
		fmt.Println()
	}
	return nil
}
