package subtitle

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// VTTParser reads WebVTT (.vtt) files.
type VTTParser struct{}

func (p *VTTParser) Name() string { return "vtt" }

func (p *VTTParser) Detect(path string, content []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".vtt") {
		return true
	}
	return looksLikeVTT(content)
}

func (p *VTTParser) Parse(r io.Reader) ([]domain.Cue, error) {
	return parseCues(r)
}

func looksLikeVTT(content []byte) bool {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	return bytes.HasPrefix(content, []byte("WEBVTT"))
}
