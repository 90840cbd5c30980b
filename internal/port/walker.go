package port

// FileWalker finds analyzable files under a root.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// FileReader reads one discovered file as text.
type FileReader interface {
	ReadFile(path string) (string, error)
}
