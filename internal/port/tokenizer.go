package port

// Tokenizer extracts and normalizes Hebrew tokens from arbitrary text.
type Tokenizer interface {
	// ExtractTokens returns maximal Hebrew-script runs whose
	// diacritic-stripped length is at least minLength.
	ExtractTokens(text string, minLength int) []string

	// StripDiacritics removes nikud and cantillation marks. Idempotent.
	StripDiacritics(text string) string

	// ContainsHebrew reports whether text holds at least one Hebrew rune.
	ContainsHebrew(text string) bool
}
