package fs

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
)

// Walker discovers analyzable text files under a root directory, filtered
// by doublestar include/exclude patterns against root-relative paths.
type Walker struct {
	includes []string
	excludes []string
	maxSize  int64
}

// NewWalker builds a walker. Empty includes default to the text formats
// the analyzer understands; maxSize 0 means no size cap.
func NewWalker(includes, excludes []string, maxSize int64) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.txt", "**/*.md", "**/*.srt", "**/*.vtt", "**/*.html"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
		maxSize:  maxSize,
	}
}

func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if w.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if w.maxSize > 0 && info.Size() > w.maxSize {
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// ReadFile satisfies port.FileReader.
func (w *Walker) ReadFile(path string) (string, error) {
	return ReadFile(path)
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
