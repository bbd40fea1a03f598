// Package sentiment scores financial headlines into [-1, 1] using a small
// polarity lexicon. The scorer is a pure function of its input text; callers
// treat it as a black box behind the Scorer interface.
package sentiment

import (
	"strings"
	"unicode"
)

// Scorer maps a headline to a sentiment score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// Compile-time interface check.
var _ Scorer = (*LexiconScorer)(nil)

// LexiconScorer counts positive and negative lexicon hits and normalises the
// difference into [-1, 1]. Word matching is case-insensitive on whole tokens,
// so "growth" matches but "degrowth" does not.
type LexiconScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// Market-news polarity terms, matched as whole tokens.
var positiveTerms = []string{
	"surge", "surges", "rally", "rallies", "beat", "beats", "optimism",
	"growth", "grows", "cooling", "hawkish", "strong", "stronger",
	"accelerates", "expands", "gains", "record", "upbeat", "recovery",
	"rebound", "rebounds", "soars", "boost", "boosts", "bullish",
}

var negativeTerms = []string{
	"plunge", "plunges", "miss", "misses", "fear", "fears", "recession",
	"hot", "dovish", "weak", "weaker", "contracts", "slows", "slowdown",
	"crash", "crashes", "crisis", "losses", "slump", "slumps", "tumbles",
	"cuts", "bearish", "default", "turmoil", "selloff",
}

// clampHits caps the raw hit differential so one verbose headline cannot
// saturate the score; matches the original scorer's [-2, 2] clamp before
// normalisation.
const clampHits = 2.0

// NewLexiconScorer creates a scorer over the built-in market lexicon.
func NewLexiconScorer() *LexiconScorer {
	s := &LexiconScorer{
		positive: make(map[string]struct{}, len(positiveTerms)),
		negative: make(map[string]struct{}, len(negativeTerms)),
	}
	for _, w := range positiveTerms {
		s.positive[w] = struct{}{}
	}
	for _, w := range negativeTerms {
		s.negative[w] = struct{}{}
	}
	return s
}

// Score returns the normalised polarity of text in [-1, 1]. Empty or
// lexicon-free text scores 0.
func (s *LexiconScorer) Score(text string) float64 {
	hits := 0.0
	for _, tok := range tokenize(text) {
		if _, ok := s.positive[tok]; ok {
			hits++
		}
		if _, ok := s.negative[tok]; ok {
			hits--
		}
	}
	if hits > clampHits {
		hits = clampHits
	}
	if hits < -clampHits {
		hits = -clampHits
	}
	return hits / clampHits
}

// tokenize lowercases and splits on any non-letter rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
