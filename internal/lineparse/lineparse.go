// Package lineparse implements the line lexer: it consumes one
// preprocessed source line and splits it into an optional label, a
// statement kind (directive or instruction), and the remaining token
// material, without interpreting the tokens themselves.
package lineparse

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLineLength is the longest legal source line, terminator included.
const MaxLineLength = 81

// StatementKind classifies the non-label remainder of a line.
type StatementKind int

const (
	// StatementEmpty marks a blank or comment-only line.
	StatementEmpty StatementKind = iota
	StatementDirective
	StatementInstruction
)

func (k StatementKind) String() string {
	switch k {
	case StatementDirective:
		return "directive"
	case StatementInstruction:
		return "instruction"
	default:
		return "empty"
	}
}

// ColonSyntaxError reports a label terminated by ':' that is immediately
// followed by a non-whitespace, non-end-of-line character.
type ColonSyntaxError struct {
	Line string
}

func (e *ColonSyntaxError) Error() string {
	return fmt.Sprintf("malformed label terminator in line %q", e.Line)
}

// LexError reports a line, or a token within it, that exceeds
// MaxLineLength.
type LexError struct {
	Line string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line exceeds maximum length of %d characters", MaxLineLength)
}

// ErrEmptyLine is returned by Mnemonic/Operands callers that attempt to
// use a Line whose Kind is StatementEmpty; it is not raised by Parse.
var ErrEmptyLine = errors.New("lineparse: line has no statement")

// Line is the result of lexing one source line.
type Line struct {
	// Label is the label prefix, without the trailing colon. Empty when
	// the line carries no label.
	Label string
	// Kind classifies the statement following the label.
	Kind StatementKind
	// Mnemonic is the instruction mnemonic or directive name (with its
	// leading '.' for directives). Empty when Kind is StatementEmpty.
	Mnemonic string
	// Operands is the comma/space/tab-split operand list for an
	// instruction statement. For a directive statement this is nil;
	// directive bodies are exposed unsplit via RawOperands.
	Operands []string
	// RawOperands is the unsplit text following Mnemonic, trimmed of
	// surrounding whitespace. Always populated when Kind != StatementEmpty.
	RawOperands string
}

// Parse lexes a single source line. It strips the line terminator and
// leading whitespace, extracts an optional label, and classifies and
// splits the remainder.
func Parse(line string) (Line, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line)+1 > MaxLineLength {
		return Line{}, &LexError{Line: line}
	}

	trimmed := strings.TrimLeft(line, " \t")

	if isCommentLine(trimmed) || isBlank(trimmed) {
		return Line{Kind: StatementEmpty}, nil
	}

	label, rest, err := extractLabel(trimmed)
	if err != nil {
		return Line{}, err
	}

	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return Line{Label: label, Kind: StatementEmpty}, nil
	}

	if rest[0] == '.' {
		mnemonic, body := splitFirstToken(rest)
		return Line{
			Label:       label,
			Kind:        StatementDirective,
			Mnemonic:    mnemonic,
			RawOperands: strings.TrimSpace(body),
		}, nil
	}

	mnemonic, body := splitFirstToken(rest)
	body = strings.TrimSpace(body)
	return Line{
		Label:       label,
		Kind:        StatementInstruction,
		Mnemonic:    mnemonic,
		Operands:    splitOperands(body),
		RawOperands: body,
	}, nil
}

// extractLabel recognizes the first token ending in ':' as a label. It
// returns the label (without the colon) and the remainder of the line
// starting after the colon. When no colon terminates the first token,
// it returns an empty label and the original text unchanged.
func extractLabel(s string) (label string, rest string, err error) {
	colon := strings.IndexAny(s, " \t:")
	if colon == -1 || s[colon] != ':' {
		return "", s, nil
	}

	label = s[:colon]
	after := s[colon+1:]
	if after != "" && after[0] != ' ' && after[0] != '\t' {
		return "", "", &ColonSyntaxError{Line: s}
	}
	return label, after, nil
}

// splitFirstToken splits s on its first run of whitespace, returning the
// leading token and the remainder (with leading whitespace intact for
// the caller to trim).
func splitFirstToken(s string) (token string, rest string) {
	idx := strings.IndexAny(s, " \t")
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx:]
}

// splitOperands splits an instruction operand list on the delimiter set
// {',', space, tab}, discarding empty fields produced by adjacent
// delimiters (e.g. ", " between a comma and a space).
func splitOperands(body string) []string {
	if body == "" {
		return nil
	}
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isCommentLine(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), ";")
}
