package sketch

import (
	"errors"
	"fmt"
)

// ErrorKind classifies terminal resolution failures.
type ErrorKind string

const (
	KindDecode          ErrorKind = "decode"
	KindEncoding        ErrorKind = "encoding"
	KindIO              ErrorKind = "io"
	KindNoPrimarySource ErrorKind = "no_primary_source"
	KindNoInput         ErrorKind = "no_input"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindTranslation     ErrorKind = "translation"
)

// Sentinels matched with errors.Is against any *Error of the same kind.
var (
	ErrDecode          = errors.New("sketch: malformed base64")
	ErrEncoding        = errors.New("sketch: invalid utf-8")
	ErrIO              = errors.New("sketch: io failure")
	ErrNoPrimarySource = errors.New("sketch: no primary source")
	ErrNoInput         = errors.New("sketch: no input")
	ErrInvalidInput    = errors.New("sketch: invalid input")
	ErrTranslation     = errors.New("sketch: translation failed")
)

var sentinels = map[ErrorKind]error{
	KindDecode:          ErrDecode,
	KindEncoding:        ErrEncoding,
	KindIO:              ErrIO,
	KindNoPrimarySource: ErrNoPrimarySource,
	KindNoInput:         ErrNoInput,
	KindInvalidInput:    ErrInvalidInput,
	KindTranslation:     ErrTranslation,
}

// Error describes a failure raised while resolving a sketch. Op names the
// stage ("decode", "read dir", ...), Path the offending file, parameter, or
// input when one applies.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// NewError builds an *Error.
func NewError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := "sketch: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else if sentinel, ok := sentinels[e.Kind]; ok {
		msg += ": " + sentinel.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there
// is none.
func KindOf(err error) ErrorKind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}

// Errorf is a shorthand for NewError with a formatted cause.
func Errorf(kind ErrorKind, op, path, format string, args ...any) *Error {
	return NewError(kind, op, path, fmt.Errorf(format, args...))
}
