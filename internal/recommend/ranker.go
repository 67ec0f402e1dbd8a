// ABOUTME: Filters, scores, and tiers capabilities for a free-text query
// ABOUTME: Deterministic ordering, template-driven reasons, clarifying questions
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/scoring"
)

// Tier is the presentation strategy chosen from the top relevance score
type Tier string

const (
	// TierAutoUse: act immediately with a brief inline notice
	TierAutoUse Tier = "auto-use"
	// TierSuggestOne: present the top candidate, require confirmation
	TierSuggestOne Tier = "suggest-one"
	// TierSuggestMany: present the top three for user choice
	TierSuggestMany Tier = "suggest-many"
	// TierInsufficient: nothing relevant; ask clarifying questions
	TierInsufficient Tier = "insufficient"
)

// Tier thresholds on the top candidate's score
const (
	autoUseThreshold     = 0.90
	suggestOneThreshold  = 0.70
	suggestManyThreshold = 0.50
	suggestManyCount     = 3
)

// Constraints narrows a recommendation request
type Constraints struct {
	// ExcludedPlugins drops capabilities whose plugin matches any
	// pattern ("*", "prefix*", exact).
	ExcludedPlugins []string
	// PreferredType keeps only capabilities of this type when set
	PreferredType capability.Type
	// MinScore drops scored candidates below this relevance
	MinScore float64
}

// Candidate is one scored capability with its presentation reasons
type Candidate struct {
	Capability *capability.Capability
	Score      float64
	Factors    scoring.Factors
	Reasons    []string
}

// Recommendation is the full answer to one query
type Recommendation struct {
	Query      string
	Tier       Tier
	Candidates []Candidate
	Questions  []string
}

// Ranker selects and orders capabilities for queries. Safe for
// concurrent use against immutable index snapshots.
type Ranker struct {
	scorer *scoring.Scorer
}

// New creates a Ranker using the given scorer
func New(scorer *scoring.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank recommends capabilities from idx for the query. A malformed or
// empty query resolves to the Insufficient tier, never an error.
func (r *Ranker) Rank(idx *capability.Index, query string, constraints Constraints, now time.Time) *Recommendation {
	tokens := capability.Tokenize(query)
	if len(tokens) == 0 {
		return &Recommendation{
			Query:     query,
			Tier:      TierInsufficient,
			Questions: []string{"What task are you trying to accomplish? A few descriptive words help narrow the match."},
		}
	}

	var candidates []Candidate
	for _, c := range idx.All() {
		if excluded(c.Plugin, constraints.ExcludedPlugins) {
			continue
		}
		if constraints.PreferredType != "" && c.Type != constraints.PreferredType {
			continue
		}
		// Hard cutoff: no keyword overlap means no candidacy, however
		// strong the usage history.
		if !hasOverlap(tokens, c) {
			continue
		}
		factors := r.scorer.Explain(query, c, now)
		if factors.Total < constraints.MinScore {
			continue
		}
		candidates = append(candidates, Candidate{
			Capability: c,
			Score:      factors.Total,
			Factors:    factors,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].Capability.UsageCount != candidates[j].Capability.UsageCount {
			return candidates[i].Capability.UsageCount > candidates[j].Capability.UsageCount
		}
		return candidates[i].Capability.ID < candidates[j].Capability.ID
	})

	if len(candidates) == 0 || candidates[0].Score < suggestManyThreshold {
		return &Recommendation{
			Query:     query,
			Tier:      TierInsufficient,
			Questions: clarifyingQuestions(tokens),
		}
	}

	top := candidates[0].Score
	rec := &Recommendation{Query: query}
	switch {
	case top >= autoUseThreshold:
		rec.Tier = TierAutoUse
		rec.Candidates = candidates[:1]
	case top >= suggestOneThreshold:
		rec.Tier = TierSuggestOne
		rec.Candidates = candidates[:1]
	default:
		rec.Tier = TierSuggestMany
		n := suggestManyCount
		if len(candidates) < n {
			n = len(candidates)
		}
		rec.Candidates = candidates[:n]
	}

	for i := range rec.Candidates {
		rec.Candidates[i].Reasons = reasons(rec.Candidates[i], now)
	}
	return rec
}

// excluded reports whether plugin matches any exclusion pattern.
// Patterns: "*" matches everything, "prefix*" matches by prefix,
// anything else is an exact match.
func excluded(plugin string, patterns []string) bool {
	for _, pattern := range patterns {
		switch {
		case pattern == "*":
			return true
		case strings.HasSuffix(pattern, "*"):
			if strings.HasPrefix(plugin, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		case pattern == plugin:
			return true
		}
	}
	return false
}

// hasOverlap reports whether any query token appears verbatim in the
// capability's keywords, or any bigram appears in a trigger phrase.
func hasOverlap(tokens []string, c *capability.Capability) bool {
	kwset := make(map[string]bool, len(c.Keywords))
	for _, kw := range c.Keywords {
		kwset[kw] = true
	}
	for _, tok := range tokens {
		if kwset[tok] {
			return true
		}
	}
	for i := 0; i+1 < len(tokens); i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		for _, trig := range c.Triggers {
			if strings.Contains(strings.ToLower(trig), bigram) {
				return true
			}
		}
	}
	return false
}

// reasons renders the candidate's factor breakdown as short templated
// statements, in fixed priority order: matched keywords, type match,
// usage narrative, recency narrative.
func reasons(cand Candidate, now time.Time) []string {
	var out []string
	c := cand.Capability
	f := cand.Factors

	if len(f.MatchedKeywords) > 0 {
		out = append(out, fmt.Sprintf("Matches keywords: %s", strings.Join(f.MatchedKeywords, ", ")))
	}
	if f.TypeMatch == 1.0 {
		out = append(out, fmt.Sprintf("Is a %s, which fits how you phrased the task", c.Type))
	}
	if c.UsageCount > 0 {
		out = append(out, fmt.Sprintf("Used %d times with %.0f%% success", c.UsageCount, c.SuccessRate*100))
	}
	if c.LastUsed != nil {
		out = append(out, "Last used "+recency(now.Sub(*c.LastUsed)))
	}
	return out
}

// recency renders an age as a coarse human phrase
func recency(age time.Duration) string {
	switch {
	case age < 24*time.Hour:
		return "within the last day"
	case age < 7*24*time.Hour:
		return "this week"
	case age < 30*24*time.Hour:
		return "this month"
	default:
		return "more than a month ago"
	}
}

// clarifyingQuestions derives follow-up prompts from the query's own
// keywords so the user can sharpen an unmatched request.
func clarifyingQuestions(tokens []string) []string {
	questions := []string{
		"No installed tool matches that description. Could you rephrase with different terms?",
	}
	if len(tokens) > 0 {
		questions = append(questions, fmt.Sprintf(
			"Are you looking for something related to %q, or a different area entirely?",
			strings.Join(tokens, " ")))
	}
	questions = append(questions,
		"Should this run as a one-off command, an automated hook, or a guided skill?")
	return questions
}
