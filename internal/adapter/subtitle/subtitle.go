// Package subtitle parses SRT and WebVTT files into timed cues whose text
// is ready for Hebrew analysis: markup stripped, entities unescaped, text
// normalized.
package subtitle

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	bracePattern = regexp.MustCompile(`\{\\[^}]*\}`)
)

// Parsers returns the known parsers in detection order. VTT first: a
// WEBVTT header is unambiguous, while "-->" alone could be either format.
func Parsers() []port.SubtitleParser {
	return []port.SubtitleParser{
		&VTTParser{},
		&SRTParser{},
	}
}

// ForPath picks the parser for a file, sniffing content when the
// extension is ambiguous.
func ForPath(path string, content []byte) (port.SubtitleParser, error) {
	for _, p := range Parsers() {
		if p.Detect(path, content) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
}

// Text flattens cues into one unit per cue, dropping empties.
func Text(cues []domain.Cue) []string {
	units := make([]string, 0, len(cues))
	for _, cue := range cues {
		if cue.Text == "" {
			continue
		}
		units = append(units, cue.Text)
	}
	return units
}

// parseCues reads cue blocks from either format. Lines before a timing
// line (SRT sequence numbers, VTT headers, cue identifiers, NOTE and
// STYLE blocks) carry no text and are skipped; a blank line or the next
// timing line closes the open cue.
func parseCues(r io.Reader) ([]domain.Cue, error) {
	var cues []domain.Cue
	var current *domain.Cue
	var text []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = cleanCueText(strings.Join(text, " "))
		if current.Text != "" {
			current.Index = len(cues) + 1
			cues = append(cues, *current)
		}
		current = nil
		text = text[:0]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		switch {
		case trimmed == "":
			flush()
		case strings.Contains(trimmed, "-->"):
			flush()
			start, end, ok := parseTimeRange(trimmed)
			if !ok {
				continue
			}
			current = &domain.Cue{Start: start, End: end}
		case current != nil:
			text = append(text, trimmed)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading subtitles: %w", err)
	}
	return cues, nil
}

// parseTimeRange parses "start --> end", tolerating VTT cue settings
// after the end timestamp.
func parseTimeRange(line string) (start, end time.Duration, ok bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, ok = parseTimestamp(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, false
	}
	rest := strings.Fields(parts[1])
	if len(rest) == 0 {
		return 0, 0, false
	}
	end, ok = parseTimestamp(rest[0])
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// parseTimestamp accepts HH:MM:SS.mmm and MM:SS.mmm, with either comma
// (SRT) or dot (VTT) before the milliseconds.
func parseTimestamp(s string) (time.Duration, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ":")

	var hours, minutes int
	var seconds time.Duration
	var err error
	var ok bool

	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, false
		}
		if seconds, ok = parseSeconds(parts[2]); !ok {
			return 0, false
		}
	case 2:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if seconds, ok = parseSeconds(parts[1]); !ok {
			return 0, false
		}
	default:
		return 0, false
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		seconds, true
}

// parseSeconds parses "SS" or "SS.mmm" without float rounding.
func parseSeconds(s string) (time.Duration, bool) {
	sec, frac, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(sec)
	if err != nil {
		return 0, false
	}
	d := time.Duration(n) * time.Second
	if frac != "" {
		for len(frac) < 3 {
			frac += "0"
		}
		ms, err := strconv.Atoi(frac[:3])
		if err != nil {
			return 0, false
		}
		d += time.Duration(ms) * time.Millisecond
	}
	return d, true
}

// cleanCueText strips inline markup (<i>, <c.class>, {\an8}), unescapes
// entities, normalizes the text, and collapses whitespace.
func cleanCueText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = bracePattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = hebrew.NormalizeInput(s)
	return strings.Join(strings.Fields(s), " ")
}
