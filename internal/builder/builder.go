// ABOUTME: Merges collector batches into a fresh capability index
// ABOUTME: Copies tracking fields forward, prunes orphans, rebuilds derived indexes
package builder

import (
	"sort"
	"time"

	"github.com/toolscout/toolscout/internal/capability"
)

// Builder turns a batch of raw descriptors into a canonical capability
// index, merging against the previous index so learned usage data
// survives rescans.
type Builder struct{}

// New creates a new Builder
func New() *Builder {
	return &Builder{}
}

// Build merges batch into a fresh index. prior may be nil (first scan or
// unreadable previous index).
//
// Descriptive fields always come from the batch; tracking fields are
// copied forward from prior entries with the same id. Prior entries that
// no longer appear are pruned only when their owning location was scanned
// successfully this round: absence due to a read error, or to a location
// not covered by this scan, must not be conflated with removal.
func (b *Builder) Build(prior *capability.Index, batch capability.Batch, now time.Time) *capability.Index {
	idx := capability.NewIndex()
	idx.LastScan = now

	scanned := make(map[string]bool) // location -> covered this round
	failed := make(map[string]bool)  // location -> covered but errored
	plugins := make(map[string]capability.PluginDescriptor)

	for _, loc := range batch.Locations {
		scanned[loc.Location] = true
		if !loc.OK {
			failed[loc.Location] = true
		}
		idx.ScanLocations = append(idx.ScanLocations, loc.Location)
		idx.Statistics.Scanned += loc.Scanned
		idx.Statistics.Skipped += loc.Skipped
		idx.Statistics.Errors = append(idx.Statistics.Errors, loc.Errors...)

		for _, pd := range loc.Plugins {
			plugins[pd.Name] = pd
		}
		for _, rec := range loc.Descriptors {
			c := b.fromDescriptor(rec, loc.Location)
			if _, dup := idx.Capabilities[c.ID]; dup {
				idx.Statistics.Errors = append(idx.Statistics.Errors, capability.ScanError{
					Path:      rec.Path,
					Error:     "duplicate capability id " + c.ID,
					Timestamp: now,
				})
				continue
			}
			if prior != nil {
				if prev := prior.Get(c.ID); prev != nil {
					c.CopyTracking(prev)
				}
			}
			idx.Capabilities[c.ID] = c
		}
	}
	sort.Strings(idx.ScanLocations)

	// Retain prior entries whose absence cannot be trusted this round.
	if prior != nil {
		allOK := len(failed) == 0
		for id, prev := range prior.Capabilities {
			if _, present := idx.Capabilities[id]; present {
				continue
			}
			if b.retain(prev.SourceLocation, scanned, failed, allOK) {
				idx.Capabilities[id] = prev
				if _, known := plugins[prev.Plugin]; !known {
					if info := prior.PluginIndex[prev.Plugin]; info != nil {
						plugins[prev.Plugin] = capability.PluginDescriptor{
							Name:        prev.Plugin,
							Version:     info.Version,
							Description: info.Description,
							Author:      info.Author,
							InstallPath: info.InstallPath,
						}
					}
				}
			}
		}
	}

	idx.RebuildDerived(plugins)
	return idx
}

// retain reports whether a missing prior entry must survive pruning
func (b *Builder) retain(location string, scanned, failed map[string]bool, allOK bool) bool {
	if location == "" {
		// Origin unknown; only prune when every location scanned clean.
		return !allOK
	}
	if !scanned[location] {
		return true // location not covered this round
	}
	return failed[location]
}

// fromDescriptor builds a canonical capability from one raw record,
// with tracking fields at their defaults.
func (b *Builder) fromDescriptor(rec capability.RawDescriptor, location string) *capability.Capability {
	texts := []string{rec.Name, rec.Description}
	texts = append(texts, rec.Triggers...)

	return &capability.Capability{
		ID:             capability.DeriveID(rec.Type, rec.Plugin, rec.Name),
		Type:           rec.Type,
		Name:           rec.Name,
		Plugin:         rec.Plugin,
		Description:    rec.Description,
		Keywords:       capability.ExtractKeywords(rec.Keywords, texts...),
		Triggers:       rec.Triggers,
		Path:           rec.Path,
		Metadata:       rec.Metadata,
		SourceLocation: location,
		SuccessRate:    1.0,
	}
}
