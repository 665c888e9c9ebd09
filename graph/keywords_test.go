package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_FrequencyOrder(t *testing.T) {
	lines := []string{
		"revenue growth and revenue targets",
		"revenue projections and revenue forecasts for the engineering team",
		"engineering hiring and engineering budgets",
	}
	got := keywords(lines, 3, nil)
	assert.Equal(t, []string{"revenue", "engineering", "budgets"}, got)
}

func TestKeywords_SkipsShortAndStopWords(t *testing.T) {
	lines := []string{"the cat sat on that mat with some very good food"}
	got := keywords(lines, 10, nil)
	assert.NotContains(t, got, "cat")
	assert.NotContains(t, got, "that")
	assert.NotContains(t, got, "some")
	assert.Contains(t, got, "food")
}

func TestKeywords_Exclude(t *testing.T) {
	lines := []string{"revenue revenue revenue growth growth margin"}
	got := keywords(lines, 10, map[string]bool{"revenue": true})
	assert.NotContains(t, got, "revenue")
	assert.Contains(t, got, "growth")
}

func TestKeywords_Limit(t *testing.T) {
	lines := []string{"alpha bravo charlie delta echo foxtrot golf hotel india juliet"}
	assert.Len(t, keywords(lines, 4, nil), 4)
}

func TestKeywords_DeterministicTieBreak(t *testing.T) {
	lines := []string{"zebra apple"}
	assert.Equal(t, []string{"apple", "zebra"}, keywords(lines, 2, nil))
}

func TestDetailKeywords_RichPatterns(t *testing.T) {
	lines := []string{
		"Acme Corp reported $1,200,000 in 2024 under the SEC filing",
		"Acme Corp grew 15% according to the SEC",
	}
	got := detailKeywords(lines, 20, nil)

	assert.Contains(t, got, "$1,200,000")
	assert.Contains(t, got, "2024")
	assert.Contains(t, got, "15%")
	assert.Contains(t, got, "Acme Corp")
	assert.Contains(t, got, "SEC")
}

func TestDetailKeywords_ExcludesCalendarTerms(t *testing.T) {
	lines := []string{
		"meeting in January January January about budget budget",
	}
	got := detailKeywords(lines, 10, nil)
	assert.NotContains(t, got, "January")
	assert.NotContains(t, got, "january")
	assert.Contains(t, got, "budget")
}

func TestMatchingLines(t *testing.T) {
	lines := []string{
		"Revenue grew strongly",
		"costs were flat",
		"annual REVENUE report",
	}
	got := matchingLines(lines, "revenue")
	assert.Equal(t, []string{"Revenue grew strongly", "annual REVENUE report"}, got)
}
