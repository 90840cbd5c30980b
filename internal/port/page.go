package port

import (
	"context"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// PageExtractor turns a web page into analyzable text units.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (*domain.Page, error)
}
