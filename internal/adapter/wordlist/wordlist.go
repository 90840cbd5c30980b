// Package wordlist loads vocabulary from plain text files, one word per
// line, for setups without a flashcard tool.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// Provider reads mature and learning word lists from disk. It implements
// port.VocabularyProvider.
type Provider struct {
	maturePath   string
	learningPath string
}

// NewProvider returns a file-backed provider. learningPath may be empty.
func NewProvider(maturePath, learningPath string) *Provider {
	return &Provider{maturePath: maturePath, learningPath: learningPath}
}

func (p *Provider) Name() string { return "wordlist" }

// Fetch reads both lists. The mature file must exist; a missing learning
// file is treated as empty.
func (p *Provider) Fetch(ctx context.Context) (domain.VocabularySet, error) {
	mature, err := readWords(p.maturePath)
	if err != nil {
		return domain.VocabularySet{}, fmt.Errorf("failed to read mature list: %w", err)
	}
	var learning []string
	if p.learningPath != "" {
		learning, err = readWords(p.learningPath)
		if err != nil && !os.IsNotExist(err) {
			return domain.VocabularySet{}, fmt.Errorf("failed to read learning list: %w", err)
		}
	}
	return domain.NewVocabularySet(mature, learning), nil
}

// readWords scans one word per line. Blank lines and #-comments are
// skipped; anything after the first whitespace run on a line is ignored,
// so frequency lists ("שלום 1523") load as-is.
func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			words = append(words, hebrew.NormalizeInput(fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
