// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package graph

import (
	"regexp"
	"sort"
	"strings"
)

// minKeywordLength filters out short function-like words before the
// stop-word list even applies.
const minKeywordLength = 4

var wordPattern = regexp.MustCompile(`\p{L}+`)

// Patterns for the detail-level extractor.
var (
	currencyPattern     = regexp.MustCompile(`[$€£]\d[\d,]*(?:\.\d+)?[MBK]?`)
	numberPattern       = regexp.MustCompile(`\b\d[\d,]*(?:\.\d+)?%?`)
	datePattern         = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b(?:19|20)\d{2}\b`)
	acronymPattern      = regexp.MustCompile(`\b[A-Z]{2,6}\b`)
	properPhrasePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)
)

var stopwords = buildTermSet(
	"this", "that", "these", "those", "with", "from", "have", "has", "had",
	"been", "being", "were", "are", "was", "will", "would", "could",
	"should", "shall", "must", "might", "about", "above", "after", "again",
	"against", "also", "among", "because", "before", "below", "between",
	"both", "down", "during", "each", "further", "here", "how", "into",
	"just", "more", "most", "only", "other", "over", "same", "some",
	"such", "than", "then", "there", "they", "them", "their", "through",
	"under", "until", "very", "what", "when", "where", "which", "while",
	"your", "yours", "ours", "into", "onto", "upon", "does", "doing",
	"done", "make", "makes", "made", "like", "well", "many", "much",
	"within", "without", "however", "therefore", "thus", "although",
)

// calendarTerms are excluded from detail extraction; month and weekday
// names are too generic to be useful leaves.
var calendarTerms = buildTermSet(
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	"sunday", "today", "tomorrow", "yesterday", "week", "month", "year",
	"date", "time",
)

func buildTermSet(terms ...string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		set[term] = true
	}
	return set
}

// keywords returns up to limit keywords from the lines, ranked by
// frequency. Words shorter than minKeywordLength, stop words, and
// excluded terms are skipped. Ties rank alphabetically so output is
// deterministic.
func keywords(lines []string, limit int, exclude map[string]bool) []string {
	counts := make(map[string]int)
	for _, line := range lines {
		for _, word := range wordPattern.FindAllString(line, -1) {
			word = strings.ToLower(word)
			if len(word) < minKeywordLength || stopwords[word] || exclude[word] {
				continue
			}
			counts[word]++
		}
	}
	return topTerms(counts, limit)
}

// detailKeywords extracts detail-level leaves: besides frequent plain
// words it recognizes currency amounts, numbers, dates, multi-word
// capitalized phrases and acronyms. Calendar terms are excluded.
func detailKeywords(lines []string, limit int, exclude map[string]bool) []string {
	counts := make(map[string]int)
	note := func(term string) {
		key := strings.ToLower(term)
		if calendarTerms[key] || stopwords[key] || exclude[key] {
			return
		}
		counts[term]++
	}

	for _, line := range lines {
		for _, m := range currencyPattern.FindAllString(line, -1) {
			note(m)
		}
		for _, m := range datePattern.FindAllString(line, -1) {
			note(m)
		}
		for _, m := range numberPattern.FindAllString(line, -1) {
			note(m)
		}
		for _, m := range properPhrasePattern.FindAllString(line, -1) {
			note(m)
		}
		for _, m := range acronymPattern.FindAllString(line, -1) {
			note(m)
		}
		for _, word := range wordPattern.FindAllString(line, -1) {
			word = strings.ToLower(word)
			if len(word) < minKeywordLength || stopwords[word] || calendarTerms[word] || exclude[word] {
				continue
			}
			counts[word]++
		}
	}
	return topTerms(counts, limit)
}

// topTerms ranks by descending count, breaking ties alphabetically.
func topTerms(counts map[string]int, limit int) []string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if limit < len(terms) {
		terms = terms[:limit]
	}
	return terms
}

// matchingLines filters lines to those containing the term,
// case-insensitively.
func matchingLines(lines []string, term string) []string {
	needle := strings.ToLower(term)
	var out []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			out = append(out, line)
		}
	}
	return out
}
