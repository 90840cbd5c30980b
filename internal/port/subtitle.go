package port

import (
	"io"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// SubtitleParser reads one subtitle format.
type SubtitleParser interface {
	Name() string

	// Detect reports whether this parser handles the file, by extension
	// or by sniffing the leading content.
	Detect(path string, content []byte) bool

	Parse(r io.Reader) ([]domain.Cue, error)
}
