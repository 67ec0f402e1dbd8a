// ABOUTME: Unit tests for the feedback nudge strategy and persistent updater
// ABOUTME: Covers boost clamps, the success-rate EMA, and concurrent persistence
package feedback

import (
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/store"
)

var feedbackTime = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "index.json"))
	idx := capability.NewIndex()
	idx.Capabilities["devtools:deploy"] = &capability.Capability{
		ID: "devtools:deploy", Type: capability.TypeCommand,
		Name: "deploy", Plugin: "devtools",
		Keywords:    []string{"deploy"},
		SuccessRate: 1.0,
	}
	idx.RebuildDerived(nil)
	if err := s.Save(idx); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNudge_Accepted(t *testing.T) {
	c := &capability.Capability{ID: "a:b", SuccessRate: 1.0}
	NudgeStrategy{}.Accepted(c, feedbackTime)

	if c.UsageCount != 1 {
		t.Errorf("usage count = %d, want 1", c.UsageCount)
	}
	if c.LastUsed == nil || !c.LastUsed.Equal(feedbackTime) {
		t.Error("last used not stamped")
	}
	if c.ConfidenceBoost != acceptBoost {
		t.Errorf("boost = %v, want %v", c.ConfidenceBoost, acceptBoost)
	}
}

func TestNudge_BoostClampsAtBounds(t *testing.T) {
	c := &capability.Capability{ID: "a:b", SuccessRate: 1.0}
	for i := 0; i < 100; i++ {
		NudgeStrategy{}.Accepted(c, feedbackTime)
	}
	if c.ConfidenceBoost > 1.0 {
		t.Errorf("boost = %v, exceeded upper clamp", c.ConfidenceBoost)
	}

	for i := 0; i < 200; i++ {
		NudgeStrategy{}.Rejected(c)
	}
	if c.ConfidenceBoost < -1.0 {
		t.Errorf("boost = %v, exceeded lower clamp", c.ConfidenceBoost)
	}
}

func TestNudge_CompletedEMA(t *testing.T) {
	c := &capability.Capability{ID: "a:b", SuccessRate: 1.0}

	NudgeStrategy{}.Completed(c, false)
	if math.Abs(c.SuccessRate-0.8) > 1e-9 {
		t.Errorf("after one failure: rate = %v, want 0.8", c.SuccessRate)
	}

	NudgeStrategy{}.Completed(c, true)
	if math.Abs(c.SuccessRate-0.84) > 1e-9 {
		t.Errorf("after recovery: rate = %v, want 0.84", c.SuccessRate)
	}
}

func TestNudge_RateStaysInRange(t *testing.T) {
	c := &capability.Capability{ID: "a:b", SuccessRate: 0.5}
	for i := 0; i < 50; i++ {
		NudgeStrategy{}.Completed(c, i%3 == 0)
		if c.SuccessRate < 0 || c.SuccessRate > 1 {
			t.Fatalf("rate = %v, out of [0,1] after %d outcomes", c.SuccessRate, i+1)
		}
	}
}

func TestUpdater_PersistsAcceptance(t *testing.T) {
	s := seededStore(t)
	u := NewUpdater(s, nil)

	if err := u.Accepted("devtools:deploy", feedbackTime); err != nil {
		t.Fatalf("Accepted failed: %v", err)
	}

	idx, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	c := idx.Get("devtools:deploy")
	if c.UsageCount != 1 {
		t.Errorf("usage count = %d, want 1", c.UsageCount)
	}
	if c.ConfidenceBoost != acceptBoost {
		t.Errorf("boost = %v, want %v", c.ConfidenceBoost, acceptBoost)
	}
}

func TestUpdater_UnknownID(t *testing.T) {
	u := NewUpdater(seededStore(t), nil)

	if err := u.Accepted("nope:missing", feedbackTime); err == nil {
		t.Error("expected error for unknown capability id")
	}
	if err := u.Completed("nope:missing", true); err == nil {
		t.Error("expected error for unknown capability id")
	}
}

func TestUpdater_ConcurrentEventsAllLand(t *testing.T) {
	s := seededStore(t)
	u := NewUpdater(s, nil)

	const events = 8
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := u.Accepted("devtools:deploy", feedbackTime); err != nil {
				t.Errorf("Accepted failed: %v", err)
			}
		}()
	}
	wg.Wait()

	idx, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.Get("devtools:deploy").UsageCount; got != events {
		t.Errorf("usage count = %d, want %d (lost events)", got, events)
	}
}

func TestUpdater_CustomStrategy(t *testing.T) {
	s := seededStore(t)
	u := NewUpdater(s, flatStrategy{})

	if err := u.Rejected("devtools:deploy"); err != nil {
		t.Fatal(err)
	}
	idx, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if boost := idx.Get("devtools:deploy").ConfidenceBoost; boost != -0.5 {
		t.Errorf("boost = %v, want custom strategy's -0.5", boost)
	}
}

// flatStrategy is a test double with exaggerated constants
type flatStrategy struct{}

func (flatStrategy) Accepted(c *capability.Capability, now time.Time) { c.ConfidenceBoost = 0.5 }
func (flatStrategy) Rejected(c *capability.Capability)                { c.ConfidenceBoost = -0.5 }
func (flatStrategy) Completed(c *capability.Capability, success bool) {}
