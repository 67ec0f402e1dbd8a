// ABOUTME: Infers the likely capability type from surface query patterns
// ABOUTME: Imperative verbs suggest commands, question phrasing suggests skills, automation phrasing suggests hooks
package scoring

import (
	"strings"

	"github.com/toolscout/toolscout/internal/capability"
)

// agentPhraseWords is the length at which phrasing reads as a complex,
// multi-step task better served by an agent.
const agentPhraseWords = 9

var commandVerbs = map[string]bool{
	"run": true, "execute": true, "launch": true, "invoke": true, "start": true,
}

var skillMarkers = []string{"help", "how ", "how?", "explain", "guide", "learn", "teach"}

var hookMarkers = []string{"automatically", "whenever", "every time", "on save", "on commit", "before each", "after each"}

// InferType guesses which capability type the query is asking for.
// Returns false when the phrasing carries no usable signal.
func InferType(query string) (capability.Type, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for _, marker := range hookMarkers {
		if strings.Contains(q, marker) {
			return capability.TypeHook, true
		}
	}
	for _, marker := range skillMarkers {
		if strings.Contains(q, marker) || strings.HasPrefix(q, "how") {
			return capability.TypeSkill, true
		}
	}

	fields := strings.Fields(q)
	if len(fields) > 0 && commandVerbs[fields[0]] {
		return capability.TypeCommand, true
	}
	if len(fields) >= agentPhraseWords {
		return capability.TypeAgent, true
	}
	return "", false
}
