// ABOUTME: Top-level capability index document and its derived indexes
// ABOUTME: Defines CapabilityIndex, PluginInfo, and scan statistics
package capability

import (
	"sort"
	"time"
)

// IndexVersion is the current on-disk schema version. Readers ignore
// unknown fields, so bumps are only needed for incompatible changes.
const IndexVersion = 1

// Index is the persisted capability index document. KeywordIndex and
// PluginIndex are derived views: they are rebuilt from Capabilities on
// every scan and never edited incrementally.
type Index struct {
	Version           int                    `json:"version"`
	LastScan          time.Time              `json:"lastScan"`
	ScanLocations     []string               `json:"scanLocations"`
	TotalCapabilities int                    `json:"totalCapabilities"`
	Capabilities      map[string]*Capability `json:"capabilities"`
	KeywordIndex      map[string][]string    `json:"keywordIndex"`
	PluginIndex       map[string]*PluginInfo `json:"pluginIndex"`
	Statistics        Statistics             `json:"statistics"`
}

// PluginInfo is the derived per-plugin view over the capability set
type PluginInfo struct {
	Version      string   `json:"version,omitempty"`
	Description  string   `json:"description,omitempty"`
	Author       string   `json:"author,omitempty"`
	Capabilities []string `json:"capabilities"`
	InstallPath  string   `json:"installPath,omitempty"`
}

// Statistics summarizes the scan that produced the index
type Statistics struct {
	ScanDuration time.Duration `json:"scanDurationNs"`
	Scanned      int           `json:"scanned"`
	Skipped      int           `json:"skipped"`
	Errors       []ScanError   `json:"errors,omitempty"`
}

// NewIndex returns an empty index document
func NewIndex() *Index {
	return &Index{
		Version:      IndexVersion,
		Capabilities: make(map[string]*Capability),
		KeywordIndex: make(map[string][]string),
		PluginIndex:  make(map[string]*PluginInfo),
	}
}

// Get returns the capability with the given id, or nil
func (idx *Index) Get(id string) *Capability {
	return idx.Capabilities[id]
}

// All returns every capability sorted by id for deterministic iteration
func (idx *Index) All() []*Capability {
	caps := make([]*Capability, 0, len(idx.Capabilities))
	for _, c := range idx.Capabilities {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i].ID < caps[j].ID })
	return caps
}

// RebuildDerived reconstructs KeywordIndex, PluginIndex, and the totals
// from the Capabilities map. Derived views have no independent source of
// truth; rebuilding wholesale avoids drift.
func (idx *Index) RebuildDerived(plugins map[string]PluginDescriptor) {
	idx.TotalCapabilities = len(idx.Capabilities)

	idx.KeywordIndex = make(map[string][]string)
	idx.PluginIndex = make(map[string]*PluginInfo)

	for _, c := range idx.All() {
		for _, kw := range c.Keywords {
			idx.KeywordIndex[kw] = append(idx.KeywordIndex[kw], c.ID)
		}

		info, ok := idx.PluginIndex[c.Plugin]
		if !ok {
			info = &PluginInfo{}
			if pd, known := plugins[c.Plugin]; known {
				info.Version = pd.Version
				info.Description = pd.Description
				info.Author = pd.Author
				info.InstallPath = pd.InstallPath
			}
			idx.PluginIndex[c.Plugin] = info
		}
		info.Capabilities = append(info.Capabilities, c.ID)
	}
}

// Age returns how long ago the index was last scanned
func (idx *Index) Age(now time.Time) time.Duration {
	return now.Sub(idx.LastScan)
}
