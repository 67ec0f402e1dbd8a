// ABOUTME: Multi-factor relevance scorer for (query, capability) pairs
// ABOUTME: Five weighted sub-scores plus the learned confidence boost, clamped to [0,1]
package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
)

// Factor weights. Keyword relevance is the only query-specific signal and
// dominates; the remaining factors personalize and break ties.
const (
	weightKeyword   = 0.35
	weightType      = 0.25
	weightHistory   = 0.20
	weightFreshness = 0.10
	weightSuccess   = 0.10
)

const (
	// creditSynonym is the keyword credit for a synonym-table match
	creditSynonym = 0.9
	// DefaultFuzzyThreshold is the minimum normalized edit-distance
	// similarity that still earns keyword credit.
	DefaultFuzzyThreshold = 0.8
	// usageSaturation is the usage count at which history maxes out
	usageSaturation = 10
)

// Options tunes the scorer. Zero values select the built-in defaults.
type Options struct {
	// Synonyms extends the seed synonym table; entries are merged over
	// the defaults, with extension entries winning on conflict.
	Synonyms map[string][]string
	// FuzzyThreshold overrides DefaultFuzzyThreshold when > 0
	FuzzyThreshold float64
}

// Scorer computes bounded relevance scores. Safe for concurrent use.
type Scorer struct {
	synonyms       map[string][]string
	fuzzyThreshold float64
}

// New creates a Scorer with the given options
func New(opts Options) *Scorer {
	synonyms := make(map[string][]string, len(defaultSynonyms)+len(opts.Synonyms))
	for k, v := range defaultSynonyms {
		synonyms[k] = v
	}
	for k, v := range opts.Synonyms {
		synonyms[k] = v
	}

	threshold := opts.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Scorer{synonyms: synonyms, fuzzyThreshold: threshold}
}

// Factors is the per-factor breakdown behind a score. Ranker uses it for
// reason generation; tests use it to pin individual sub-scores.
type Factors struct {
	KeywordMatch    float64
	TypeMatch       float64
	History         float64
	Freshness       float64
	SuccessRate     float64
	MatchedKeywords []string
	InferredType    capability.Type
	Total           float64
}

// Score returns the relevance of c for query, in [0,1]
func (s *Scorer) Score(query string, c *capability.Capability, now time.Time) float64 {
	return s.Explain(query, c, now).Total
}

// Explain scores c for query and returns the full factor breakdown
func (s *Scorer) Explain(query string, c *capability.Capability, now time.Time) Factors {
	f := Factors{
		History:     historyScore(c.UsageCount),
		Freshness:   freshnessScore(c.LastUsed, now),
		SuccessRate: c.SuccessRate,
	}
	f.KeywordMatch, f.MatchedKeywords = s.keywordScore(query, c)
	f.TypeMatch, f.InferredType = typeScore(query, c.Type)

	total := weightKeyword*f.KeywordMatch +
		weightType*f.TypeMatch +
		weightHistory*f.History +
		weightFreshness*f.Freshness +
		weightSuccess*f.SuccessRate
	total += c.ConfidenceBoost
	f.Total = clamp01(total)
	return f
}

// keywordScore gives each query token its best credit against the
// capability's keyword set: 1.0 for an exact match, 0.9 for a synonym,
// otherwise the normalized edit-distance similarity when it clears the
// fuzzy threshold. Adjacent token bigrams that appear verbatim in a
// trigger phrase grant full credit to both constituents. The result is
// the mean per-token credit.
func (s *Scorer) keywordScore(query string, c *capability.Capability) (float64, []string) {
	tokens := capability.Tokenize(query)
	if len(tokens) == 0 {
		return 0, nil
	}

	kwset := make(map[string]bool, len(c.Keywords))
	for _, kw := range c.Keywords {
		kwset[kw] = true
	}
	triggers := make([]string, len(c.Triggers))
	for i, t := range c.Triggers {
		triggers[i] = strings.ToLower(t)
	}

	credits := make([]float64, len(tokens))
	matched := make(map[string]bool)

	for i, tok := range tokens {
		credit, hit := s.tokenCredit(tok, c.Keywords, kwset)
		credits[i] = credit
		if hit != "" {
			matched[hit] = true
		}
	}

	// Bigram pass: a two-token phrase found in a trigger, or present as a
	// declared keyword, lifts both constituents to full credit.
	for i := 0; i+1 < len(tokens); i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		hit := kwset[bigram]
		if !hit {
			for _, trig := range triggers {
				if strings.Contains(trig, bigram) {
					hit = true
					break
				}
			}
		}
		if hit {
			credits[i] = 1.0
			credits[i+1] = 1.0
			matched[tokens[i]] = true
			matched[tokens[i+1]] = true
		}
	}

	var sum float64
	for _, credit := range credits {
		sum += credit
	}

	keywords := make([]string, 0, len(matched))
	for kw := range matched {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return clamp01(sum / float64(len(tokens))), keywords
}

// tokenCredit returns the best credit for one token and the keyword that
// earned it (empty when nothing matched).
func (s *Scorer) tokenCredit(tok string, keywords []string, kwset map[string]bool) (float64, string) {
	if kwset[tok] {
		return 1.0, tok
	}

	best, bestKw := 0.0, ""
	for _, kw := range keywords {
		if isSynonym(s.synonyms, tok, kw) {
			if creditSynonym > best {
				best, bestKw = creditSynonym, kw
			}
			continue
		}
		if sim := similarity(tok, kw); sim >= s.fuzzyThreshold && sim > best {
			best, bestKw = sim, kw
		}
	}
	return best, bestKw
}

// typeScore is 1.0 when the query's inferred type matches the
// capability's type. Absence of a signal, or a mismatch, is neutral
// rather than penalized.
func typeScore(query string, t capability.Type) (float64, capability.Type) {
	inferred, ok := InferType(query)
	if ok && inferred == t {
		return 1.0, inferred
	}
	return 0.5, inferred
}

// historyScore saturates at usageSaturation uses
func historyScore(usageCount int) float64 {
	if usageCount <= 0 {
		return 0
	}
	return clamp01(float64(usageCount) / usageSaturation)
}

// freshnessScore buckets the age of the capability's last use
func freshnessScore(lastUsed *time.Time, now time.Time) float64 {
	if lastUsed == nil {
		return 0.5
	}
	age := now.Sub(*lastUsed)
	switch {
	case age < 24*time.Hour:
		return 1.0
	case age < 7*24*time.Hour:
		return 0.9
	case age < 30*24*time.Hour:
		return 0.7
	default:
		return 0.5
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
