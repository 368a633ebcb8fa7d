package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"ila/internal/adapter/chunker"
	"ila/internal/adapter/fs"
	"ila/internal/adapter/store"
	"ila/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Ingest a file or directory into the archive",
	Long: `Read the target, split it into word-boundary chunks, embed every
chunk, and store one note per chunk tagged with the source file.
A file is ingested atomically: if any chunk fails, none are kept.

Examples:
  ila ingest notes.txt
  ila ingest ~/documents`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot ingest %s: %w", path, err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer st.Close()

	embedder, closeEmbedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer closeEmbedder()

	ingestor := usecase.NewIngestor(
		st,
		embedder,
		chunker.NewWordChunker(cfg.Chunking.ChunkSize),
		fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes),
	)

	if !info.IsDir() {
		ids, err := ingestor.IngestFile(path)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		fmt.Printf("Ingested %s: created %d note(s).\n", path, len(ids))
		return nil
	}

	var bar *progressbar.ProgressBar
	result, err := ingestor.IngestDir(path, func(done, total int, file string) {
		if bar == nil && total > 0 {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		if bar != nil {
			bar.Set(done)
		}
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files ingested: %d\n", result.FilesIngested)
	fmt.Printf("  Notes created:  %d\n", result.NotesCreated)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return nil
}
