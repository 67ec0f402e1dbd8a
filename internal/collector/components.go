// ABOUTME: Per-component parsing for skills, agents, commands, hooks, and MCP servers
// ABOUTME: Emits raw descriptors; malformed components become scan errors, not failures
package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolscout/toolscout/internal/capability"
)

// collectSkills reads skills/*/SKILL.md frontmatter
func (c *Collector) collectSkills(dir string, manifest pluginManifest, result *capability.LocationResult) {
	skillsDir := filepath.Join(dir, "skills")
	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		return // no skills directory
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillFile := filepath.Join(skillsDir, entry.Name(), "SKILL.md")
		fm, err := c.readFrontmatter(skillFile)
		if err != nil {
			result.Errors = append(result.Errors, scanError(skillFile, err))
			continue
		}
		name := fm.get("name")
		if name == "" {
			name = entry.Name()
		}
		result.Descriptors = append(result.Descriptors, capability.RawDescriptor{
			Type:        capability.TypeSkill,
			Plugin:      manifest.Name,
			Name:        name,
			Description: fm.get("description"),
			Keywords:    append(fm.list("keywords"), manifest.Keywords...),
			Triggers:    fm.list("triggers"),
			Path:        filepath.Join(skillsDir, entry.Name()),
		})
	}
}

// collectMarkdownComponents reads agents/*.md or commands/*.md frontmatter
func (c *Collector) collectMarkdownComponents(dir, sub string, t capability.Type, manifest pluginManifest, result *capability.LocationResult) {
	compDir := filepath.Join(dir, sub)
	entries, err := os.ReadDir(compDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(compDir, entry.Name())
		fm, err := c.readFrontmatter(path)
		if err != nil {
			result.Errors = append(result.Errors, scanError(path, err))
			continue
		}
		name := fm.get("name")
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".md")
		}

		var metadata map[string]any
		if t == capability.TypeAgent {
			metadata = map[string]any{}
			if model := fm.get("model"); model != "" {
				metadata["model"] = model
			}
			if tools := fm.list("tools"); len(tools) > 0 {
				metadata["tools"] = tools
			}
			if len(metadata) == 0 {
				metadata = nil
			}
		}

		result.Descriptors = append(result.Descriptors, capability.RawDescriptor{
			Type:        t,
			Plugin:      manifest.Name,
			Name:        name,
			Description: fm.get("description"),
			Keywords:    append(fm.list("keywords"), manifest.Keywords...),
			Triggers:    fm.list("triggers"),
			Path:        path,
			Metadata:    metadata,
		})
	}
}

// hooksFile is the hooks/hooks.json structure: event name to matcher
// configurations. The configurations pass through as opaque metadata.
type hooksFile struct {
	Hooks map[string]json.RawMessage `json:"hooks"`
}

// collectHooks emits one descriptor per hook event
func (c *Collector) collectHooks(dir string, manifest pluginManifest, result *capability.LocationResult) {
	path := filepath.Join(dir, "hooks", "hooks.json")
	data, err := c.readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		result.Errors = append(result.Errors, scanError(path, err))
		return
	}

	var hf hooksFile
	if err := json.Unmarshal(data, &hf); err != nil {
		result.Errors = append(result.Errors, scanError(path, fmt.Errorf("malformed hooks.json: %w", err)))
		return
	}

	for event, raw := range hf.Hooks {
		result.Descriptors = append(result.Descriptors, capability.RawDescriptor{
			Type:        capability.TypeHook,
			Plugin:      manifest.Name,
			Name:        strings.ToLower(event),
			Description: fmt.Sprintf("Runs automatically on %s events", event),
			Keywords:    manifest.Keywords,
			Path:        path,
			Metadata:    map[string]any{"event": event, "config": json.RawMessage(raw)},
		})
	}
}

// mcpFile is the .mcp.json structure, matching the newer plugin format
type mcpFile struct {
	MCPServers map[string]mcpServerDef `json:"mcpServers"`
}

type mcpServerDef struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// collectMCPServers emits one descriptor per declared MCP server
func (c *Collector) collectMCPServers(dir string, manifest pluginManifest, result *capability.LocationResult) {
	path := filepath.Join(dir, ".mcp.json")
	data, err := c.readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		result.Errors = append(result.Errors, scanError(path, err))
		return
	}

	var mf mcpFile
	if err := json.Unmarshal(data, &mf); err != nil {
		result.Errors = append(result.Errors, scanError(path, fmt.Errorf("malformed .mcp.json: %w", err)))
		return
	}

	for name, def := range mf.MCPServers {
		metadata := map[string]any{"command": def.Command}
		if len(def.Args) > 0 {
			metadata["args"] = def.Args
		}
		result.Descriptors = append(result.Descriptors, capability.RawDescriptor{
			Type:        capability.TypeMCPServer,
			Plugin:      manifest.Name,
			Name:        name,
			Description: fmt.Sprintf("MCP server %s provided by %s", name, manifest.Name),
			Keywords:    manifest.Keywords,
			Path:        path,
			Metadata:    metadata,
		})
	}
}
