package cache

import (
	"testing"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

type countingAnalyzer struct {
	calls int
}

func (a *countingAnalyzer) Report(units []string, vocab domain.VocabularySet) *usecase.AnalysisReport {
	a.calls++
	return &usecase.AnalysisReport{
		Stats: domain.ComprehensionStats{TotalWords: len(units)},
	}
}

func TestCacheHit(t *testing.T) {
	c := NewAnalysisCache(4, time.Minute)
	report := &usecase.AnalysisReport{Stats: domain.ComprehensionStats{TotalWords: 7}}

	units := []string{"שלום עולם", "הבית גדול"}
	c.Put(units, report)

	got, hit := c.Get(units)
	if !hit {
		t.Fatal("expected a hit after Put")
	}
	if got != report {
		t.Error("expected the cached report back")
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewAnalysisCache(4, time.Minute)
	if _, hit := c.Get([]string{"שלום"}); hit {
		t.Error("empty cache should miss")
	}
}

func TestKeyUnitBoundaries(t *testing.T) {
	c := NewAnalysisCache(4, time.Minute)
	c.Put([]string{"שלום", "עולם"}, &usecase.AnalysisReport{})

	// Joined units are a different input and must not alias.
	if _, hit := c.Get([]string{"שלוםעולם"}); hit {
		t.Error("unit boundaries must participate in the key")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewAnalysisCache(4, time.Millisecond)
	c.Put([]string{"שלום"}, &usecase.AnalysisReport{})

	time.Sleep(5 * time.Millisecond)

	if _, hit := c.Get([]string{"שלום"}); hit {
		t.Error("entry should have expired")
	}
}

func TestInvalidate(t *testing.T) {
	c := NewAnalysisCache(4, time.Minute)
	c.Put([]string{"שלום"}, &usecase.AnalysisReport{})

	c.Invalidate()

	if _, hit := c.Get([]string{"שלום"}); hit {
		t.Error("Invalidate should drop all entries")
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d after Invalidate", c.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewAnalysisCache(2, time.Minute)
	a := []string{"א"}
	b := []string{"ב"}
	d := []string{"ג"}

	c.Put(a, &usecase.AnalysisReport{})
	c.Put(b, &usecase.AnalysisReport{})
	c.Get(a) // refresh a, making b the oldest
	c.Put(d, &usecase.AnalysisReport{})

	if _, hit := c.Get(b); hit {
		t.Error("expected b to be evicted")
	}
	if _, hit := c.Get(a); !hit {
		t.Error("expected a to survive")
	}
	if _, hit := c.Get(d); !hit {
		t.Error("expected the new entry to be present")
	}
}

func TestCachedAnalyzer(t *testing.T) {
	underlying := &countingAnalyzer{}
	c := NewAnalysisCache(4, time.Minute)
	analyzer := NewCachedAnalyzer(underlying, c)
	vocab := domain.NewVocabularySet([]string{"שלום"}, nil)

	units := []string{"שלום עולם", "הבית גדול מאוד"}
	first := analyzer.Report(units, vocab)
	second := analyzer.Report(units, vocab)

	if underlying.calls != 1 {
		t.Errorf("underlying called %d times, want 1", underlying.calls)
	}
	if first != second {
		t.Error("expected the cached report on the second call")
	}

	c.Invalidate()
	analyzer.Report(units, vocab)
	if underlying.calls != 2 {
		t.Errorf("underlying called %d times after Invalidate, want 2", underlying.calls)
	}
}
