// ABOUTME: In-place scan progress line for TTY output
// ABOUTME: Falls back to plain line-by-line output for pipes and CI
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ScanProgress shows which location a scan is currently reading. On a
// TTY the line updates in place; elsewhere each location prints once.
type ScanProgress struct {
	w       io.Writer
	mu      sync.Mutex
	active  bool
	started int
}

// NewScanProgress creates a progress reporter writing to w
func NewScanProgress(w io.Writer) *ScanProgress {
	return &ScanProgress{w: w}
}

// Start reports that a location is being scanned
func (p *ScanProgress) Start(location string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started++

	if isTerminal(p.w) {
		if p.active {
			fmt.Fprint(p.w, "\033[1A\033[K")
		}
		fmt.Fprintf(p.w, "%s Scanning %s\n", Muted(SymbolArrow), location)
		p.active = true
		return
	}
	fmt.Fprintf(p.w, "Scanning %s\n", location)
}

// Finish clears the in-place line and prints the summary
func (p *ScanProgress) Finish(capabilities, errors int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active && isTerminal(p.w) {
		fmt.Fprint(p.w, "\033[1A\033[K")
		p.active = false
	}

	summary := fmt.Sprintf("Indexed %d capabilities from %d locations", capabilities, p.started)
	if errors > 0 {
		summary += fmt.Sprintf(" (%d errors)", errors)
	}
	fmt.Fprintln(p.w, Success(SymbolSuccess)+" "+summary)
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
