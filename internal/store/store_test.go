// ABOUTME: Unit tests for the capability store
// ABOUTME: Covers atomic persistence, validation failures, and concurrent updates
package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
)

func testIndex() *capability.Index {
	idx := capability.NewIndex()
	idx.LastScan = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	idx.Capabilities["devtools:deploy"] = &capability.Capability{
		ID:          "devtools:deploy",
		Type:        capability.TypeCommand,
		Name:        "deploy",
		Plugin:      "devtools",
		Keywords:    []string{"deploy"},
		SuccessRate: 1.0,
	}
	idx.RebuildDerived(nil)
	return idx
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "index.json"))

	if err := s.Save(testIndex()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c := loaded.Get("devtools:deploy")
	if c == nil || c.Name != "deploy" {
		t.Fatalf("roundtrip lost capability: %+v", loaded.Capabilities)
	}
	if loaded.Version != capability.IndexVersion {
		t.Errorf("version = %d, want %d", loaded.Version, capability.IndexVersion)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "index.json"))

	_, err := s.Load()
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(path).Load()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !IsValidation(err) {
		t.Error("IsValidation should report true")
	}
}

func TestStore_LoadRejectsStructuralFaults(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*capability.Index)
		wantErr string
	}{
		{"missing version", func(idx *capability.Index) { idx.Version = 0 }, "version"},
		{"id key mismatch", func(idx *capability.Index) {
			idx.Capabilities["other:id"] = idx.Capabilities["devtools:deploy"]
		}, "id"},
		{"success rate out of range", func(idx *capability.Index) {
			idx.Capabilities["devtools:deploy"].SuccessRate = 1.5
		}, "success rate"},
		{"boost out of range", func(idx *capability.Index) {
			idx.Capabilities["devtools:deploy"].ConfidenceBoost = -2
		}, "confidence boost"},
		{"negative usage", func(idx *capability.Index) {
			idx.Capabilities["devtools:deploy"].UsageCount = -1
		}, "usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), "index.json"))
			idx := testIndex()
			tt.mutate(idx)
			if err := s.Save(idx); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			_, err := s.Load()
			if !IsValidation(err) {
				t.Fatalf("expected validation error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStore_SaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "index.json"))

	if err := s.Save(testIndex()); err != nil {
		t.Fatal(err)
	}
	second := testIndex()
	second.Capabilities["devtools:deploy"].Description = "updated"
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Fatalf("expected only index.json in %v", names)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Get("devtools:deploy").Description != "updated" {
		t.Error("second save not visible")
	}
}

func TestStore_ReplaceUsesPriorFromSameCriticalSection(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "index.json"))
	if err := s.Save(testIndex()); err != nil {
		t.Fatal(err)
	}

	// Rebuild-from-prior replaces racing with increments: each replace
	// must see every update committed before it took the lock.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			err := s.Replace(func(prior *capability.Index) (*capability.Index, error) {
				next := testIndex()
				if prior != nil {
					next.Get("devtools:deploy").UsageCount = prior.Get("devtools:deploy").UsageCount
				}
				return next, nil
			})
			if err != nil {
				t.Errorf("Replace failed: %v", err)
				return
			}
		}
	}()

	const increments = 50
	for i := 0; i < increments; i++ {
		err := s.Update(func(idx *capability.Index) error {
			idx.Capabilities["devtools:deploy"].UsageCount++
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Get("devtools:deploy").UsageCount; got != increments {
		t.Errorf("usage count = %d, want %d (replace clobbered updates)", got, increments)
	}
}

func TestStore_ReplaceMissingFilePassesNilPrior(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "index.json"))

	err := s.Replace(func(prior *capability.Index) (*capability.Index, error) {
		if prior != nil {
			t.Error("expected nil prior for a missing index")
		}
		return testIndex(), nil
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load after Replace failed: %v", err)
	}
}

func TestStore_ConcurrentUpdatesLoseNothing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "index.json"))
	if err := s.Save(testIndex()); err != nil {
		t.Fatal(err)
	}

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(func(idx *capability.Index) error {
				idx.Capabilities["devtools:deploy"].UsageCount++
				return nil
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Get("devtools:deploy").UsageCount; got != workers {
		t.Errorf("usage count = %d, want %d (lost updates)", got, workers)
	}
}
