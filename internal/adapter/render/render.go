// Package render colors classifications for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
)

var (
	matureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	learningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2C94C"))

	potentialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56CCF2"))

	unknownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EB5757"))

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Faint(true)

	flagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BB6BD9"))
)

// Word renders a word in its class color.
func Word(word string, class domain.WordClass) string {
	switch class {
	case domain.ClassMature:
		return matureStyle.Render(word)
	case domain.ClassLearning:
		return learningStyle.Render(word)
	case domain.ClassPotentiallyKnown:
		return potentialStyle.Render(word)
	default:
		return unknownStyle.Render(word)
	}
}

// Class renders a class name in its color.
func Class(class domain.WordClass) string {
	return Word(class.String(), class)
}

// Header renders a section heading.
func Header(s string) string { return headerStyle.Render(s) }

// Dim renders secondary detail.
func Dim(s string) string { return dimStyle.Render(s) }

// Flag renders a sentence flag label.
func Flag(s string) string { return flagStyle.Render(s) }

// Stats renders the aggregate block shown after an analysis.
func Stats(stats domain.ComprehensionStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d%%\n", Header("Comprehension:"), stats.Percentage)
	fmt.Fprintf(&b, "  known        %d / %d unique words\n", stats.KnownWords, stats.TotalWords)
	fmt.Fprintf(&b, "  potential    %d\n", stats.PotentiallyKnownWords)
	fmt.Fprintf(&b, "  i+1          %d sentences\n", stats.IPlusOneSentences)
	fmt.Fprintf(&b, "  potent. i+1  %d sentences", stats.PotentialIPlusOneSentences)
	return b.String()
}

// Legend renders the word color key.
func Legend() string {
	parts := []string{
		matureStyle.Render("mature"),
		learningStyle.Render("learning"),
		potentialStyle.Render("potentially-known"),
		unknownStyle.Render("unknown"),
	}
	return Dim("legend: ") + strings.Join(parts, Dim(" | "))
}

// Sentence renders a flagged sentence with its label and the words that
// flagged it.
func Sentence(text string, cls domain.SentenceClassification) string {
	var b strings.Builder
	b.WriteString(Flag("[" + cls.Label() + "] "))
	b.WriteString(text)
	if len(cls.UnknownWords) > 0 {
		b.WriteString(Dim(" new: "))
		b.WriteString(Word(strings.Join(cls.UnknownWords, " "), domain.ClassUnknown))
	}
	if len(cls.PotentialWords) > 0 {
		b.WriteString(Dim(" maybe: "))
		b.WriteString(Word(strings.Join(cls.PotentialWords, " "), domain.ClassPotentiallyKnown))
	}
	return b.String()
}
