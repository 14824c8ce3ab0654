package preprocess

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Preprocessor translates source into a program whose main type is name.
type Preprocessor interface {
	Preprocess(ctx context.Context, name, source string) (string, error)
}

// Func adapts a function to the Preprocessor interface.
type Func func(ctx context.Context, name, source string) (string, error)

// Preprocess calls f.
func (f Func) Preprocess(ctx context.Context, name, source string) (string, error) {
	return f(ctx, name, source)
}

// TranslationError reports a syntax or translation failure. Line and Column
// are 1-based and zero when unknown.
type TranslationError struct {
	Name    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *TranslationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("preprocess")
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString("translation failed")
	}
	return b.String()
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Is matches sketch.ErrTranslation.
func (e *TranslationError) Is(target error) bool {
	return target == sketch.ErrTranslation
}

var positionPattern = regexp.MustCompile(`^(?:[^:\s]*[^:\s0-9][^:\s]*:)?(\d+):(?:(\d+):)?\s*(.*)$`)

// ParseDiagnostic builds a TranslationError from a diagnostic line such as
// "12:4: unexpected token" or "Sketch.java:12: missing brace". Lines without a
// position keep the whole text as the message.
func ParseDiagnostic(name, line string) *TranslationError {
	line = strings.TrimSpace(line)
	out := &TranslationError{Name: name, Message: line}
	match := positionPattern.FindStringSubmatch(line)
	if match == nil {
		return out
	}
	out.Line, _ = strconv.Atoi(match[1])
	if match[2] != "" {
		out.Column, _ = strconv.Atoi(match[2])
	}
	out.Message = match[3]
	return out
}
