package subtitle

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// SRTParser reads SubRip (.srt) files.
type SRTParser struct{}

func (p *SRTParser) Name() string { return "srt" }

func (p *SRTParser) Detect(path string, content []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return true
	}
	// Timing arrows without a WEBVTT header read as SRT.
	return bytes.Contains(content, []byte("-->")) && !looksLikeVTT(content)
}

func (p *SRTParser) Parse(r io.Reader) ([]domain.Cue, error) {
	return parseCues(r)
}
