package classifier

import (
	"sort"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

// FrequencyRanker orders word occurrences by how often and how widely they
// appear in an analyzed collection. The top unknown words are the highest
// value additions to a learner's deck.
type FrequencyRanker struct{}

func NewFrequencyRanker() *FrequencyRanker {
	return &FrequencyRanker{}
}

// Rank sorts by total count, then unit spread, then word, and keeps at
// most limit entries. limit <= 0 keeps everything. The input is not
// modified.
func (r *FrequencyRanker) Rank(occurrences []domain.WordOccurrence, limit int) []domain.WordOccurrence {
	ranked := make([]domain.WordOccurrence, len(occurrences))
	copy(ranked, occurrences)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Units != ranked[j].Units {
			return ranked[i].Units > ranked[j].Units
		}
		return ranked[i].Word < ranked[j].Word
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FilterClass keeps only occurrences of the given class.
func (r *FrequencyRanker) FilterClass(occurrences []domain.WordOccurrence, class domain.WordClass) []domain.WordOccurrence {
	var filtered []domain.WordOccurrence
	for _, occ := range occurrences {
		if occ.Class == class {
			filtered = append(filtered, occ)
		}
	}
	return filtered
}
