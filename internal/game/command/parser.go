package command

import "strings"

// ParseResult is one input line split into a verb and its arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining words as typed.
	Args []string
}

// Parse splits line on whitespace.
//
// Postcondition: Command is empty only when line holds no words.
func Parse(line string) ParseResult {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		res.Args = words[1:]
	}
	return res
}
