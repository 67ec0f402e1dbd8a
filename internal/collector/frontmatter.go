// ABOUTME: Minimal YAML-frontmatter reader and time-bounded file reads
// ABOUTME: Extracts simple key/value and inline-list fields from markdown headers
package collector

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// frontmatter holds the simple key/value pairs from a markdown header
type frontmatter map[string]string

func (fm frontmatter) get(key string) string {
	return fm[key]
}

// list splits a comma-separated or inline-bracketed frontmatter value
func (fm frontmatter) list(key string) []string {
	raw := strings.Trim(fm[key], "[]")
	if raw == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		item := strings.Trim(strings.TrimSpace(part), "\"'")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// readFrontmatter reads the --- delimited header of a markdown file.
// Only flat "key: value" lines are recognized; nested YAML structures
// are ignored rather than rejected.
func (c *Collector) readFrontmatter(path string) (frontmatter, error) {
	data, err := c.readFile(path)
	if err != nil {
		return nil, err
	}

	fm := make(frontmatter)
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	inHeader := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			if inHeader {
				break
			}
			inHeader = true
			continue
		}
		if !inHeader {
			// Content before any frontmatter: nothing to extract.
			break
		}
		key, value, found := strings.Cut(line, ":")
		if !found || strings.HasPrefix(line, " ") {
			continue
		}
		fm[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return fm, nil
}

// readFile reads a file with the collector's per-item deadline. A read
// that exceeds the deadline (hung network mount, FIFO) is abandoned and
// reported as an error for that item alone.
func (c *Collector) readFile(path string) ([]byte, error) {
	timeout := c.ItemTimeout
	if timeout <= 0 {
		timeout = defaultItemTimeout
	}

	type outcome struct {
		data []byte
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- outcome{data, err}
	}()

	select {
	case o := <-done:
		return o.data, o.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("reading %s timed out after %s", path, timeout)
	}
}
