// Package hebrew implements the Hebrew text primitives: script detection,
// diacritic stripping, token extraction and sentence segmentation. All
// functions scan statelessly; nothing keeps a cursor between calls.
package hebrew

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Hebrew Unicode block and the diacritic sub-range (nikud and cantillation)
// within it.
const (
	blockStart     = 0x0590
	blockEnd       = 0x05FF
	diacriticStart = 0x0591
	diacriticEnd   = 0x05C7
)

// IsHebrewRune reports whether r falls in the Hebrew Unicode block.
func IsHebrewRune(r rune) bool {
	return r >= blockStart && r <= blockEnd
}

func isDiacritic(r rune) bool {
	return r >= diacriticStart && r <= diacriticEnd
}

// ContainsHebrew reports whether text holds at least one Hebrew-block rune.
func ContainsHebrew(text string) bool {
	for _, r := range text {
		if IsHebrewRune(r) {
			return true
		}
	}
	return false
}

// StripDiacritics removes nikud and cantillation marks. Idempotent;
// text without marks is returned unchanged, unallocated.
func StripDiacritics(text string) string {
	if !hasDiacritics(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hasDiacritics(text string) bool {
	for _, r := range text {
		if isDiacritic(r) {
			return true
		}
	}
	return false
}

// NormalizeInput canonicalizes text arriving from external sources
// (subtitle cues, page extractions, flashcard fields). NFKC folds the
// Hebrew presentation forms (U+FB1D..U+FB4F ligatures) back into base
// letters plus marks so the block-range scan sees them.
func NormalizeInput(text string) string {
	return norm.NFKC.String(text)
}

// Bracket pairs whose content is dropped before token extraction. Such
// spans usually hold speaker labels or stage directions, not dialogue.
var bracketPairs = map[rune]rune{
	'[': ']',
	'（': '）',
	'(': ')',
}

// removeBracketed drops characters between any known bracket pair,
// brackets included. An opener with no matching closer is kept literally.
func removeBracketed(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		if closer, ok := bracketPairs[runes[i]]; ok {
			j := i + 1
			for j < len(runes) && runes[j] != closer {
				j++
			}
			if j < len(runes) {
				i = j
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Normalizer extracts Hebrew tokens from arbitrary text. It implements
// port.Tokenizer.
type Normalizer struct {
	stripBrackets bool
}

// NewNormalizer returns a tokenizer. stripBrackets controls whether
// bracketed content is removed before extraction.
func NewNormalizer(stripBrackets bool) *Normalizer {
	return &Normalizer{stripBrackets: stripBrackets}
}

func (n *Normalizer) ContainsHebrew(text string) bool {
	return ContainsHebrew(text)
}

func (n *Normalizer) StripDiacritics(text string) string {
	return StripDiacritics(text)
}

// ExtractTokens returns the maximal runs of Hebrew-block runes in text,
// dropping tokens whose diacritic-stripped length is below minLength.
// Tokens keep their diacritics; compare after StripDiacritics.
func (n *Normalizer) ExtractTokens(text string, minLength int) []string {
	if n.stripBrackets {
		text = removeBracketed(text)
	}
	if minLength < 1 {
		minLength = 1
	}
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if strippedLen(token) >= minLength {
			tokens = append(tokens, token)
		}
	}
	for _, r := range text {
		if IsHebrewRune(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// strippedLen is the rune count of token after diacritic removal.
func strippedLen(token string) int {
	count := 0
	for _, r := range token {
		if !isDiacritic(r) {
			count++
		}
	}
	return count
}
