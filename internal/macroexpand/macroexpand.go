// Package macroexpand implements the macro preprocessor that runs before
// the line lexer: it scans a source file for "mcro NAME ... endmcro"
// definitions (no parameters, no nesting, defined before use) and
// rewrites every call site with the macro body.
//
// Grounded in original_source/src/preprocessing.c's two-pass structure
// (ReadMacrosInFile then PerformPreprocessing) and in the teacher's
// regex-driven v0/kasm/preProcessing/macros.go, reworked for a
// parameterless macro form and to report an origins slice the caller
// feeds to internal/lineMap instead of writing a second file.
package macroexpand

import (
	"fmt"
	"strings"

	"github.com/CorpsSansOrganes/casm/internal/asmlang"
)

const (
	macroStart = "mcro"
	macroEnd   = "endmcro"
)

// ErrDuplicateMacro is returned when a macro name is defined more than
// once.
type ErrDuplicateMacro struct{ Name string }

func (e *ErrDuplicateMacro) Error() string {
	return fmt.Sprintf("macro %q is already defined", e.Name)
}

// ErrUnterminatedMacro is returned when a "mcro NAME" line has no
// matching "endmcro".
type ErrUnterminatedMacro struct {
	Name string
	Line int
}

func (e *ErrUnterminatedMacro) Error() string {
	return fmt.Sprintf("macro %q starting at line %d has no matching endmcro", e.Name, e.Line)
}

// ErrReservedMacroName is returned when a macro is named after an
// instruction, directive, or register.
type ErrReservedMacroName struct{ Name string }

func (e *ErrReservedMacroName) Error() string {
	return fmt.Sprintf("macro name %q is reserved", e.Name)
}

// ErrExtraneousCharacters is returned when a "mcro NAME" or "endmcro"
// line carries trailing text beyond what the directive expects.
type ErrExtraneousCharacters struct{ Line int }

func (e *ErrExtraneousCharacters) Error() string {
	return fmt.Sprintf("extraneous characters on macro directive at line %d", e.Line)
}

// macro is one parsed "mcro ... endmcro" block.
type macro struct {
	name string
	body []string
}

// Result is the output of Expand: the fully expanded source, split into
// lines, an origins slice suitable for lineMap.Tracker.Snapshot —
// origins[i] is the 1-based source line that produced expanded line i+1,
// or -1 (origin unknown) for a line inserted by macro expansion — and
// the set of names claimed by a macro definition, which the first pass
// consults to reject a symbol that collides with a macro name.
type Result struct {
	Lines      []string
	Origins    []int
	MacroNames map[string]struct{}
}

// originUnknown mirrors lineMap's sentinel for an untraceable line.
const originUnknown = -1

// Expand scans source for macro definitions, validates them, and
// substitutes every call site with the corresponding body. Macros take no
// parameters. All definitions are collected before any substitution, so
// a call site that precedes its definition is expanded as well; nesting
// is not detected (a "mcro" line inside a body is kept as a body line).
func Expand(source string) (Result, error) {
	lines := splitLines(source)

	macros, defRanges, err := collectMacros(lines)
	if err != nil {
		return Result{}, err
	}

	var outLines []string
	var origins []int

	for i := 0; i < len(lines); i++ {
		lineNumber := i + 1

		if r, isDef := defRanges[lineNumber]; isDef {
			i = r.end - 1 // skip to the line after endmcro
			continue
		}

		name := strings.TrimSpace(lines[i])
		if m, ok := macros[name]; ok && name != "" {
			for _, bodyLine := range m.body {
				outLines = append(outLines, bodyLine)
				origins = append(origins, originUnknown)
			}
			continue
		}

		outLines = append(outLines, lines[i])
		origins = append(origins, lineNumber)
	}

	names := make(map[string]struct{}, len(macros))
	for name := range macros {
		names[name] = struct{}{}
	}

	return Result{Lines: outLines, Origins: origins, MacroNames: names}, nil
}

// defRange records the source-line span [start, end) of a macro
// definition, end being the line after "endmcro".
type defRange struct {
	name string
	end  int
}

// collectMacros performs the first preprocessing pass: it finds every
// "mcro NAME" / "endmcro" block across the whole file and validates the
// directive syntax and name; duplicate names are rejected regardless of
// position. It does not check where call sites appear relative to the
// definitions.
func collectMacros(lines []string) (map[string]macro, map[int]defRange, error) {
	macros := make(map[string]macro)
	ranges := make(map[int]defRange)

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, macroStart+" ") && trimmed != macroStart {
			continue
		}

		lineNumber := i + 1
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, macroStart))
		fields := strings.Fields(rest)
		if len(fields) != 1 {
			return nil, nil, &ErrExtraneousCharacters{Line: lineNumber}
		}
		name := fields[0]

		if asmlang.IsReservedName(name) {
			return nil, nil, &ErrReservedMacroName{Name: name}
		}
		if _, exists := macros[name]; exists {
			return nil, nil, &ErrDuplicateMacro{Name: name}
		}

		var body []string
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if f := strings.Fields(lines[j]); len(f) > 0 && f[0] == macroEnd {
				if len(f) != 1 {
					return nil, nil, &ErrExtraneousCharacters{Line: j + 1}
				}
				end = j + 1
				break
			}
			body = append(body, lines[j])
		}
		if end == -1 {
			return nil, nil, &ErrUnterminatedMacro{Name: name, Line: lineNumber}
		}

		macros[name] = macro{name: name, body: body}
		ranges[lineNumber] = defRange{name: name, end: end}
		i = end - 1
	}

	return macros, ranges, nil
}

func splitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
