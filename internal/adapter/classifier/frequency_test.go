package classifier

import (
	"reflect"
	"testing"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

func TestRankOrdering(t *testing.T) {
	t.Parallel()

	occurrences := []domain.WordOccurrence{
		{Word: "אחד", Count: 2, Units: 2},
		{Word: "שתיים", Count: 5, Units: 1},
		{Word: "שלוש", Count: 2, Units: 3},
		{Word: "ארבע", Count: 2, Units: 2},
	}
	ranked := NewFrequencyRanker().Rank(occurrences, 0)

	want := []string{"שתיים", "שלוש", "אחד", "ארבע"}
	got := make([]string, len(ranked))
	for i, occ := range ranked {
		got[i] = occ.Word
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank order = %v, want %v", got, want)
	}
}

func TestRankLimit(t *testing.T) {
	t.Parallel()

	occurrences := []domain.WordOccurrence{
		{Word: "אחד", Count: 3},
		{Word: "שתיים", Count: 2},
		{Word: "שלוש", Count: 1},
	}
	r := NewFrequencyRanker()

	if got := r.Rank(occurrences, 2); len(got) != 2 {
		t.Errorf("Rank limit 2 returned %d entries", len(got))
	}
	if got := r.Rank(occurrences, 10); len(got) != 3 {
		t.Errorf("limit above length returned %d entries", len(got))
	}
	if got := r.Rank(nil, 5); len(got) != 0 {
		t.Errorf("Rank(nil) returned %d entries", len(got))
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	occurrences := []domain.WordOccurrence{
		{Word: "אחד", Count: 1},
		{Word: "שתיים", Count: 9},
	}
	NewFrequencyRanker().Rank(occurrences, 0)
	if occurrences[0].Word != "אחד" {
		t.Error("Rank reordered its input slice")
	}
}

func TestFilterClass(t *testing.T) {
	t.Parallel()

	occurrences := []domain.WordOccurrence{
		{Word: "אחד", Class: domain.ClassUnknown},
		{Word: "שתיים", Class: domain.ClassMature},
		{Word: "שלוש", Class: domain.ClassUnknown},
	}
	filtered := NewFrequencyRanker().FilterClass(occurrences, domain.ClassUnknown)
	if len(filtered) != 2 {
		t.Fatalf("FilterClass returned %d entries, want 2", len(filtered))
	}
	for _, occ := range filtered {
		if occ.Class != domain.ClassUnknown {
			t.Errorf("unexpected class %s", occ.Class)
		}
	}
}
