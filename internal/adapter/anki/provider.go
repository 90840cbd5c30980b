package anki

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/hebrew"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// batchSize caps one cardsInfo call; AnkiConnect handles a few hundred
// cards per request comfortably.
const batchSize = 500

// DeckQuery selects cards with an Anki search query. Field names the note
// field holding the Hebrew word; empty means the note's first field.
type DeckQuery struct {
	Query string
	Field string
}

// Provider builds a vocabulary from AnkiConnect cards: interval at or
// above the mature threshold is mature, any shorter review history is
// learning, unseen cards (interval 0) are skipped entirely.
//
// It implements port.VocabularyProvider and port.EntryProvider.
type Provider struct {
	client         *Client
	decks          []DeckQuery
	matureInterval int
	normalizer     *hebrew.Normalizer
	logger         *slog.Logger

	// Progress, when set, is called after each fetched batch with the
	// cumulative card count.
	Progress func(done, total int)
}

func NewProvider(client *Client, decks []DeckQuery, matureInterval int, logger *slog.Logger) *Provider {
	if matureInterval <= 0 {
		matureInterval = 21
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client:         client,
		decks:          decks,
		matureInterval: matureInterval,
		normalizer:     hebrew.NewNormalizer(true),
		logger:         logger,
	}
}

func (p *Provider) Name() string { return "anki" }

// Fetch implements port.VocabularyProvider.
func (p *Provider) Fetch(ctx context.Context) (domain.VocabularySet, error) {
	entries, err := p.FetchEntries(ctx)
	if err != nil {
		return domain.VocabularySet{}, err
	}
	var mature, learning []string
	for _, e := range entries {
		switch e.Class {
		case domain.ClassMature:
			mature = append(mature, e.Word)
		case domain.ClassLearning:
			learning = append(learning, e.Word)
		}
	}
	return domain.NewVocabularySet(mature, learning), nil
}

// FetchEntries implements port.EntryProvider. Words appearing on several
// cards keep the longest interval.
func (p *Provider) FetchEntries(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if len(p.decks) == 0 {
		return nil, fmt.Errorf("no anki decks configured")
	}

	type deckCards struct {
		deck DeckQuery
		ids  []int64
	}
	var queued []deckCards
	total := 0
	for _, deck := range p.decks {
		ids, err := p.client.FindCards(ctx, deck.Query)
		if err != nil {
			return nil, fmt.Errorf("findCards %q: %w", deck.Query, err)
		}
		queued = append(queued, deckCards{deck: deck, ids: ids})
		total += len(ids)
	}

	now := time.Now()
	seen := make(map[string]int)
	var entries []domain.VocabularyEntry
	skipped := 0
	done := 0

	for _, q := range queued {
		for start := 0; start < len(q.ids); start += batchSize {
			end := start + batchSize
			if end > len(q.ids) {
				end = len(q.ids)
			}
			cards, err := p.client.CardsInfo(ctx, q.ids[start:end])
			if err != nil {
				return nil, fmt.Errorf("cardsInfo: %w", err)
			}
			for _, card := range cards {
				word := p.wordFromCard(card, q.deck.Field)
				if word == "" || card.Interval <= 0 {
					skipped++
					continue
				}
				class := domain.ClassLearning
				if card.Interval >= p.matureInterval {
					class = domain.ClassMature
				}
				if idx, ok := seen[word]; ok {
					if card.Interval > entries[idx].Interval {
						entries[idx].Interval = card.Interval
						entries[idx].Class = class
						entries[idx].Deck = card.DeckName
					}
					continue
				}
				seen[word] = len(entries)
				entries = append(entries, domain.VocabularyEntry{
					Word:      word,
					Class:     class,
					Interval:  card.Interval,
					Deck:      card.DeckName,
					UpdatedAt: now,
				})
			}
			done += end - start
			if p.Progress != nil {
				p.Progress(done, total)
			}
		}
	}

	p.logger.Info("fetched anki vocabulary",
		"cards", total, "words", len(entries), "skipped", skipped)
	return entries, nil
}

// wordFromCard pulls the configured field (or the note's first field),
// strips markup, normalizes, and keeps the first Hebrew token.
func (p *Provider) wordFromCard(card CardInfo, field string) string {
	var raw string
	if field != "" {
		f, ok := card.Fields[field]
		if !ok {
			return ""
		}
		raw = f.Value
	} else {
		order := -1
		for _, f := range card.Fields {
			if order == -1 || f.Order < order {
				order = f.Order
				raw = f.Value
			}
		}
	}
	cleaned := hebrew.NormalizeInput(stripHTML(raw))
	tokens := p.normalizer.ExtractTokens(cleaned, 1)
	if len(tokens) == 0 {
		return ""
	}
	return hebrew.StripDiacritics(tokens[0])
}

// stripHTML drops tags and unescapes entities; Anki fields are HTML.
// Tags become spaces so words separated only by markup stay separate.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return html.UnescapeString(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
