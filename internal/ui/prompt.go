// ABOUTME: Interactive prompt UI functions for user input
// ABOUTME: Handles yes/no confirmations and numbered choices
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PromptYesNo prompts for yes/no confirmation with configurable default
func PromptYesNo(r io.Reader, prompt string, defaultYes bool) bool {
	var hint string
	if defaultYes {
		hint = "[Y/n]"
	} else {
		hint = "[y/N]"
	}

	fmt.Printf("%s %s: ", prompt, hint)

	reader := bufio.NewReader(r)
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// PromptChoice prompts the user to pick one of n numbered options.
// Returns the zero-based choice, or -1 when the user declines.
func PromptChoice(r io.Reader, prompt string, n int) int {
	fmt.Printf("%s [1-%d, or q to cancel]: ", prompt, n)

	reader := bufio.NewReader(r)
	input, err := reader.ReadString('\n')
	if err != nil {
		return -1
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" || input == "q" || input == "quit" {
		return -1
	}
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > n {
		return -1
	}
	return choice - 1
}
