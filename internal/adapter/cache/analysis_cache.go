package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

// AnalysisCache memoizes aggregate reports keyed by the exact unit
// sequence. Entries expire after ttl, fall out under LRU pressure, and die
// wholesale when Invalidate bumps the vocabulary generation.
type AnalysisCache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	order    []string
	maxSize  int
	ttl      time.Duration
	vocabGen uint64
}

type cacheEntry struct {
	report    *usecase.AnalysisReport
	timestamp time.Time
	vocabGen  uint64
}

func NewAnalysisCache(maxSize int, ttl time.Duration) *AnalysisCache {
	if maxSize <= 0 {
		maxSize = 128
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnalysisCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(units []string) string {
	h := sha256.New()
	for _, unit := range units {
		h.Write([]byte(unit))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func (c *AnalysisCache) Get(units []string) (*usecase.AnalysisReport, bool) {
	c.mu.RLock()
	key := cacheKey(units)
	entry, exists := c.entries[key]
	currentGen := c.vocabGen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	if entry.vocabGen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.report, true
}

func (c *AnalysisCache) Put(units []string, report *usecase.AnalysisReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(units)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{
			report:    report,
			timestamp: time.Now(),
			vocabGen:  c.vocabGen,
		}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		report:    report,
		timestamp: time.Now(),
		vocabGen:  c.vocabGen,
	}
	c.order = append(c.order, key)
}

// Invalidate drops every entry. Called after a vocabulary sync or reload;
// cached reports are only valid for the snapshot they were computed
// against.
func (c *AnalysisCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.vocabGen++
}

func (c *AnalysisCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *AnalysisCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *AnalysisCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *AnalysisCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Analyzer is the slice of the analyze use case the cache fronts.
type Analyzer interface {
	Report(units []string, vocab domain.VocabularySet) *usecase.AnalysisReport
}

// CachedAnalyzer memoizes Report calls. The wrapper stays correct only
// while every vocabulary change is followed by Invalidate on the shared
// cache.
type CachedAnalyzer struct {
	analyzer Analyzer
	cache    *AnalysisCache
}

func NewCachedAnalyzer(analyzer Analyzer, cache *AnalysisCache) *CachedAnalyzer {
	return &CachedAnalyzer{
		analyzer: analyzer,
		cache:    cache,
	}
}

func (a *CachedAnalyzer) Report(units []string, vocab domain.VocabularySet) *usecase.AnalysisReport {
	if report, hit := a.cache.Get(units); hit {
		return report
	}

	report := a.analyzer.Report(units, vocab)
	a.cache.Put(units, report)

	return report
}
