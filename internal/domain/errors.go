package domain

import "errors"

var (
	// ErrNotFound is returned when a stored word or report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoVocabulary is returned when no vocabulary snapshot has been
	// stored and no provider is reachable.
	ErrNoVocabulary = errors.New("no vocabulary available")

	// ErrUnsupportedFormat is returned for files no subtitle parser accepts.
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
)
