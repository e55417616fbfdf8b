package command

import (
	"strings"
	"unicode"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the text after the command with its casing and inner spacing
	// kept, so multi-word item names survive.
	RawArgs string
}

// Parse splits a text line into a command and arguments. Any whitespace
// separates the command from its arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	cut := strings.IndexFunc(line, unicode.IsSpace)
	if cut < 0 {
		return ParseResult{Command: strings.ToLower(line)}
	}

	rest := strings.TrimSpace(line[cut:])
	return ParseResult{
		Command: strings.ToLower(line[:cut]),
		Args:    strings.Fields(rest),
		RawArgs: rest,
	}
}
