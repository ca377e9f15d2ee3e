package init

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// Prompt handles interactive user input during initialization.
type Prompt struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompt creates a Prompt reading answers from in and writing questions
// to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file
func (p *Prompt) ConfirmOverwrite() bool {
	fmt.Fprintln(p.out, "Configuration file .jira-mcp.yml already exists in this directory or a parent directory.")
	fmt.Fprint(p.out, "Do you want to overwrite it? (y/N): ")

	if p.scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
		return response == "y" || response == "yes"
	}

	return false
}

// GetStringInput prompts for a string input with an optional default value
func (p *Prompt) GetStringInput(prompt string, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" && defaultValue != "" {
			return defaultValue
		}
		return input
	}

	return defaultValue
}

// SelectProject presents a list of projects and allows the user to select one
func (p *Prompt) SelectProject(projects []jira.Project) *jira.Project {
	if len(projects) == 0 {
		return nil
	}

	// If only one project, auto-select with confirmation
	if len(projects) == 1 {
		fmt.Fprintf(p.out, "Found 1 project: %s (%s)\n", projects[0].Name, projects[0].Key)
		fmt.Fprint(p.out, "Use this project as the default? (Y/n): ")
		if p.scanner.Scan() && acceptsDefault(p.scanner.Text()) {
			return &projects[0]
		}
		return nil
	}

	// Multiple projects, show selection menu
	fmt.Fprintf(p.out, "\nFound %d projects:\n", len(projects))
	for i, proj := range projects {
		fmt.Fprintf(p.out, "%3d. %-10s %s\n", i+1, proj.Key, proj.Name)
	}
	fmt.Fprintf(p.out, "  0. Skip project selection\n")
	fmt.Fprintf(p.out, "\nSelect a project (0-%d) or type a key or name: ", len(projects))

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())

		// Try to parse as selection number
		choice, err := strconv.Atoi(input)
		if err == nil && choice >= 0 && choice <= len(projects) {
			if choice == 0 {
				return nil
			}
			return &projects[choice-1]
		}

		// Try to match by project key
		for i := range projects {
			if strings.EqualFold(projects[i].Key, input) {
				return &projects[i]
			}
		}

		// Try to match by project name (partial match)
		lowerInput := strings.ToLower(input)
		for i := range projects {
			if strings.Contains(strings.ToLower(projects[i].Name), lowerInput) {
				fmt.Fprintf(p.out, "Found matching project: %s (%s)\n", projects[i].Name, projects[i].Key)
				fmt.Fprint(p.out, "Use this project? (Y/n): ")
				if p.scanner.Scan() && acceptsDefault(p.scanner.Text()) {
					return &projects[i]
				}
				return nil
			}
		}
	}

	fmt.Fprintln(p.out, "Invalid selection, skipping project selection.")
	return nil
}

// acceptsDefault treats an empty answer as yes.
func acceptsDefault(response string) bool {
	r := strings.ToLower(strings.TrimSpace(response))
	return r == "" || r == "y" || r == "yes"
}
