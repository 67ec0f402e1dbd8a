// ABOUTME: Reference discovery collector that walks plugin directories
// ABOUTME: Parses manifests, frontmatter, hooks.json, and .mcp.json into raw descriptors
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/toolscout/toolscout/internal/capability"
)

// defaultItemTimeout bounds the read of any single component file. A
// component that cannot be read in time is recorded as a scan error and
// skipped; it never stalls the batch.
const defaultItemTimeout = 2 * time.Second

// Collector walks scan locations and emits already-parsed descriptor
// batches. Each location is a plugin cache directory laid out as
// marketplace/plugin/version, or a directory of plugins, or a single
// plugin directory containing .claude-plugin/plugin.json.
type Collector struct {
	ItemTimeout time.Duration
	// OnLocation, when set, is called as each location scan begins.
	// Used for progress reporting.
	OnLocation func(location string)
}

// New creates a Collector with the default per-item timeout
func New() *Collector {
	return &Collector{ItemTimeout: defaultItemTimeout}
}

// Collect scans every location and returns one batch. Locations that
// cannot be read are tagged not-OK so the builder retains their prior
// entries instead of pruning them. Cancelling ctx stops the walk early;
// locations not fully covered are tagged not-OK, yielding a partial
// batch plus accumulated errors rather than an all-or-nothing failure.
func (c *Collector) Collect(ctx context.Context, locations []string) capability.Batch {
	var batch capability.Batch
	for _, loc := range locations {
		if c.OnLocation != nil {
			c.OnLocation(loc)
		}
		batch.Locations = append(batch.Locations, c.collectLocation(ctx, loc))
	}
	return batch
}

func (c *Collector) collectLocation(ctx context.Context, location string) capability.LocationResult {
	result := capability.LocationResult{Location: location, OK: true}

	dirs, err := c.pluginDirs(location)
	if err != nil {
		result.OK = false
		result.Errors = append(result.Errors, scanError(location, err))
		return result
	}

	for _, dir := range dirs {
		if ctx.Err() != nil {
			result.OK = false
			result.Errors = append(result.Errors, scanError(location, ctx.Err()))
			return result
		}
		c.collectPlugin(dir, &result)
	}
	return result
}

// pluginDirs finds every plugin directory under location, walking up to
// three levels (marketplace/plugin/version) and deduplicating multiple
// cached versions of the same plugin by highest semver.
func (c *Collector) pluginDirs(location string) ([]string, error) {
	if isPluginDir(location) {
		return []string{location}, nil
	}

	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, err
	}

	type versioned struct {
		dir     string
		version string
		sv      *semver.Version
	}
	best := make(map[string]versioned) // plugin name -> winning version dir

	consider := func(name, version, dir string) {
		sv, svErr := semver.NewVersion(version)
		prev, seen := best[name]
		switch {
		case !seen:
		case prev.sv != nil && svErr == nil:
			if !sv.GreaterThan(prev.sv) {
				return
			}
		case version <= prev.version:
			return
		}
		if svErr != nil {
			sv = nil
		}
		best[name] = versioned{dir: dir, version: version, sv: sv}
	}

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if isPluginDir(dir) {
			name, version := manifestIdentity(dir)
			if name == "" {
				name = filepath.Base(dir)
			}
			consider(name, version, dir)
			return
		}
		if depth >= 3 {
			return
		}
		children, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, child := range children {
			if child.IsDir() {
				walk(filepath.Join(dir, child.Name()), depth+1)
			}
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walk(filepath.Join(location, entry.Name()), 1)
		}
	}

	dirs := make([]string, 0, len(best))
	for _, v := range best {
		dirs = append(dirs, v.dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func isPluginDir(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".claude-plugin", "plugin.json"))
	return err == nil
}

// manifestIdentity reads just the name and version from a plugin
// manifest, for version deduplication before the full parse.
func manifestIdentity(dir string) (name, version string) {
	data, err := os.ReadFile(filepath.Join(dir, ".claude-plugin", "plugin.json"))
	if err != nil {
		return "", ""
	}
	var m struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if json.Unmarshal(data, &m) != nil {
		return "", ""
	}
	return m.Name, m.Version
}

// pluginManifest is the .claude-plugin/plugin.json structure
type pluginManifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Keywords    []string `json:"keywords"`
}

// collectPlugin parses one plugin directory into descriptors, appending
// per-item errors without aborting. A malformed manifest skips the whole
// plugin; a malformed component skips only that component.
func (c *Collector) collectPlugin(dir string, result *capability.LocationResult) {
	manifestPath := filepath.Join(dir, ".claude-plugin", "plugin.json")
	data, err := c.readFile(manifestPath)
	if err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, scanError(manifestPath, err))
		return
	}

	var manifest pluginManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, scanError(manifestPath, fmt.Errorf("malformed plugin.json: %w", err)))
		return
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(dir)
	}

	result.Scanned++
	result.Plugins = append(result.Plugins, capability.PluginDescriptor{
		Name:        manifest.Name,
		Version:     manifest.Version,
		Description: manifest.Description,
		Author:      manifest.Author,
		InstallPath: dir,
	})

	c.collectSkills(dir, manifest, result)
	c.collectMarkdownComponents(dir, "agents", capability.TypeAgent, manifest, result)
	c.collectMarkdownComponents(dir, "commands", capability.TypeCommand, manifest, result)
	c.collectHooks(dir, manifest, result)
	c.collectMCPServers(dir, manifest, result)
}

func scanError(path string, err error) capability.ScanError {
	return capability.ScanError{Path: path, Error: err.Error(), Timestamp: time.Now()}
}
