package javawrap

import (
	"regexp"

	"github.com/goliatone/go-pderun/pkg/preprocess"
)

type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateString
	stateChar
)

// lineInfo records the lexical context at the start of a line.
type lineInfo struct {
	depth  int
	inCode bool
}

type position struct {
	line, col int
}

type scanResult struct {
	text  string
	lines []lineInfo
}

var (
	colorTypePattern = regexp.MustCompile(`\bcolor\b(\s*\[|\s+[A-Za-z_])`)
	hexColorPattern  = regexp.MustCompile(`#([0-9A-Fa-f]{6})\b`)
)

// scan walks source once, rewriting Processing-only syntax in code spans and
// recording brace depth per line. Unbalanced braces and unterminated literals
// or comments are reported as translation errors.
func scan(name, source string) (scanResult, error) {
	var (
		out   []byte
		code  []byte
		stack []position
		lines = []lineInfo{{depth: 0, inCode: true}}
		state = stateCode
		start position
		line  = 1
		col   = 0
	)

	fail := func(at position, msg string) error {
		return &preprocess.TranslationError{Name: name, Line: at.line, Column: at.col, Message: msg}
	}
	flush := func() {
		if len(code) == 0 {
			return
		}
		out = append(out, rewriteCode(string(code))...)
		code = code[:0]
	}
	newline := func() {
		line++
		col = 0
		lines = append(lines, lineInfo{depth: len(stack), inCode: state == stateCode})
	}

	for i := 0; i < len(source); i++ {
		c := source[i]
		col++
		next := byte(0)
		if i+1 < len(source) {
			next = source[i+1]
		}
		here := position{line: line, col: col}

		switch state {
		case stateCode:
			switch {
			case c == '/' && next == '/':
				flush()
				out = append(out, c, next)
				i++
				col++
				state = stateLineComment
			case c == '/' && next == '*':
				flush()
				out = append(out, c, next)
				i++
				col++
				state = stateBlockComment
				start = here
			case c == '"' || c == '\'':
				flush()
				out = append(out, c)
				state = stateString
				if c == '\'' {
					state = stateChar
				}
				start = here
			case c == '{':
				stack = append(stack, here)
				code = append(code, c)
			case c == '}':
				if len(stack) == 0 {
					return scanResult{}, fail(here, "unexpected }")
				}
				stack = stack[:len(stack)-1]
				code = append(code, c)
			case c == '\n':
				code = append(code, c)
				newline()
			default:
				code = append(code, c)
			}

		case stateLineComment:
			out = append(out, c)
			if c == '\n' {
				state = stateCode
				newline()
			}

		case stateBlockComment:
			out = append(out, c)
			switch {
			case c == '*' && next == '/':
				out = append(out, next)
				i++
				col++
				state = stateCode
			case c == '\n':
				newline()
			}

		case stateString, stateChar:
			quote := byte('"')
			if state == stateChar {
				quote = '\''
			}
			switch {
			case c == '\n':
				return scanResult{}, fail(start, "unterminated literal")
			case c == '\\' && next != 0 && next != '\n':
				out = append(out, c, next)
				i++
				col++
			case c == quote:
				out = append(out, c)
				state = stateCode
			default:
				out = append(out, c)
			}
		}
	}

	switch state {
	case stateString, stateChar:
		return scanResult{}, fail(start, "unterminated literal")
	case stateBlockComment:
		return scanResult{}, fail(start, "unterminated comment")
	}
	flush()

	if len(stack) > 0 {
		return scanResult{}, fail(stack[len(stack)-1], "missing } for block opened here")
	}

	return scanResult{text: string(out), lines: lines}, nil
}

// rewriteCode maps the color type to int and #RRGGBB literals to ARGB ints.
func rewriteCode(code string) string {
	code = colorTypePattern.ReplaceAllString(code, "int$1")
	return hexColorPattern.ReplaceAllString(code, "0xFF$1")
}
