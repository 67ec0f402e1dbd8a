// ABOUTME: Applies accept/reject/outcome feedback to a capability's learned fields
// ABOUTME: Fixed-constant nudge strategy behind a replaceable Strategy interface
package feedback

import (
	"fmt"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/store"
)

// Strategy decides how feedback signals move a capability's learned
// fields. The default nudge strategy is a fixed heuristic, not a learned
// model; isolating it here lets a different policy replace it without
// touching the scorer or ranker.
type Strategy interface {
	Accepted(c *capability.Capability, now time.Time)
	Rejected(c *capability.Capability)
	Completed(c *capability.Capability, success bool)
}

// Nudge constants for the default strategy
const (
	acceptBoost   = 0.05
	rejectPenalty = 0.02
	// successAlpha is the EMA weight of the newest outcome
	successAlpha = 0.2
)

// NudgeStrategy is the default fixed-constant feedback policy
type NudgeStrategy struct{}

// Accepted records that the user accepted a recommendation
func (NudgeStrategy) Accepted(c *capability.Capability, now time.Time) {
	c.UsageCount++
	t := now
	c.LastUsed = &t
	c.ConfidenceBoost = clampBoost(c.ConfidenceBoost + acceptBoost)
}

// Rejected records that the user declined a recommendation
func (NudgeStrategy) Rejected(c *capability.Capability) {
	c.ConfidenceBoost = clampBoost(c.ConfidenceBoost - rejectPenalty)
}

// Completed folds a task outcome into the success-rate EMA
func (NudgeStrategy) Completed(c *capability.Capability, success bool) {
	outcome := 0.0
	if success {
		outcome = 1.0
	}
	c.SuccessRate = successAlpha*outcome + (1-successAlpha)*c.SuccessRate
}

func clampBoost(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Updater applies feedback events and persists each one immediately
// through the store's serialized read-modify-write, so concurrent events
// never lose updates.
type Updater struct {
	store    *store.Store
	strategy Strategy
}

// NewUpdater creates an Updater; a nil strategy selects NudgeStrategy
func NewUpdater(s *store.Store, strategy Strategy) *Updater {
	if strategy == nil {
		strategy = NudgeStrategy{}
	}
	return &Updater{store: s, strategy: strategy}
}

// Accepted records an accepted recommendation for id
func (u *Updater) Accepted(id string, now time.Time) error {
	return u.apply(id, func(c *capability.Capability) {
		u.strategy.Accepted(c, now)
	})
}

// Rejected records a declined recommendation for id
func (u *Updater) Rejected(id string) error {
	return u.apply(id, func(c *capability.Capability) {
		u.strategy.Rejected(c)
	})
}

// Completed records a task outcome for id
func (u *Updater) Completed(id string, success bool) error {
	return u.apply(id, func(c *capability.Capability) {
		u.strategy.Completed(c, success)
	})
}

func (u *Updater) apply(id string, mutate func(*capability.Capability)) error {
	return u.store.Update(func(idx *capability.Index) error {
		c := idx.Get(id)
		if c == nil {
			return fmt.Errorf("unknown capability %q", id)
		}
		mutate(c)
		return nil
	})
}
