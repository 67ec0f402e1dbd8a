// ABOUTME: Core data types for indexed capabilities
// ABOUTME: Defines Capability, RawDescriptor, and the capability type taxonomy
package capability

import (
	"fmt"
	"time"
)

// Type identifies what kind of component a capability wraps
type Type string

const (
	TypeAgent     Type = "agent"
	TypeCommand   Type = "command"
	TypeSkill     Type = "skill"
	TypeHook      Type = "hook"
	TypeMCPServer Type = "mcp-server"
	TypeMCPTool   Type = "mcp-tool"
)

// ValidTypes lists every recognized capability type
var ValidTypes = []Type{TypeAgent, TypeCommand, TypeSkill, TypeHook, TypeMCPServer, TypeMCPTool}

// IsValid reports whether t is a recognized capability type
func (t Type) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Capability is one indexed tool: an agent, command, skill, hook, or MCP
// integration together with its usage-tracking fields.
//
// Descriptive fields (Name, Plugin, Description, Keywords, Triggers, Path,
// Metadata) are always overwritten from the latest scan. Tracking fields
// (UsageCount, LastUsed, SuccessRate, ConfidenceBoost, Tags) are preserved
// across rescans and only change through feedback.
type Capability struct {
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	Name        string         `json:"name"`
	Plugin      string         `json:"plugin"`
	Description string         `json:"description"`
	Keywords    []string       `json:"keywords"`
	Triggers    []string       `json:"triggers,omitempty"`
	Path        string         `json:"path"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	// Location that produced this capability during the last scan.
	// Used to decide whether a missing entry may be pruned.
	SourceLocation string `json:"sourceLocation,omitempty"`

	UsageCount      int        `json:"usageCount"`
	LastUsed        *time.Time `json:"lastUsed,omitempty"`
	SuccessRate     float64    `json:"successRate"`
	ConfidenceBoost float64    `json:"confidenceBoost"`
	Tags            []string   `json:"tags,omitempty"`
}

// DeriveID builds the canonical capability id: "plugin:name" for most
// types, "plugin:mcp:name" for MCP servers and tools.
func DeriveID(t Type, plugin, name string) string {
	if t == TypeMCPServer || t == TypeMCPTool {
		return fmt.Sprintf("%s:mcp:%s", plugin, name)
	}
	return fmt.Sprintf("%s:%s", plugin, name)
}

// CopyTracking copies the learned fields from prev onto c.
// Descriptive fields on c are left untouched.
func (c *Capability) CopyTracking(prev *Capability) {
	c.UsageCount = prev.UsageCount
	c.LastUsed = prev.LastUsed
	c.SuccessRate = prev.SuccessRate
	c.ConfidenceBoost = prev.ConfidenceBoost
	c.Tags = prev.Tags
}

// RawDescriptor is one already-parsed component record emitted by a
// discovery collector. The engine never touches the filesystem layout
// behind it.
type RawDescriptor struct {
	Type        Type
	Plugin      string
	Name        string
	Description string
	Keywords    []string
	Triggers    []string
	Path        string
	Metadata    map[string]any
}

// PluginDescriptor carries plugin-level manifest data alongside the
// plugin's component descriptors.
type PluginDescriptor struct {
	Name        string
	Version     string
	Description string
	Author      string
	InstallPath string
}

// LocationResult groups everything discovered under one scan location,
// tagged with whether the location itself could be read. A failed
// location suppresses orphan pruning for entries it previously produced.
type LocationResult struct {
	Location    string
	OK          bool
	Plugins     []PluginDescriptor
	Descriptors []RawDescriptor
	Errors      []ScanError
	Scanned     int
	Skipped     int
}

// Batch is the full output of one collector run
type Batch struct {
	Locations []LocationResult
}

// ScanError records a single component or location that failed during a
// scan. It is data, not a Go error: per-item failures never abort a batch.
type ScanError struct {
	Path      string    `json:"path"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
