package port

// Walker lists ingestable files under a directory.
type Walker interface {
	Walk(root string) ([]string, error)
}
