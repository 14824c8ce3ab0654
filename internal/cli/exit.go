package cli

import (
	"errors"

	"github.com/goliatone/go-pderun/pkg/prompt"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Process exit codes. Every terminal error kind has its own code.
const (
	ExitSuccess         = 0
	ExitInternalError   = 1
	ExitNoInput         = 2
	ExitInvalidInput    = 3
	ExitDecode          = 4
	ExitEncoding        = 5
	ExitIO              = 6
	ExitNoPrimarySource = 7
	ExitTranslation     = 8
)

var kindCodes = map[sketch.ErrorKind]int{
	sketch.KindNoInput:         ExitNoInput,
	sketch.KindInvalidInput:    ExitInvalidInput,
	sketch.KindDecode:          ExitDecode,
	sketch.KindEncoding:        ExitEncoding,
	sketch.KindIO:              ExitIO,
	sketch.KindNoPrimarySource: ExitNoPrimarySource,
	sketch.KindTranslation:     ExitTranslation,
}

// ExitError pins an explicit exit code on err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, prompt.ErrAborted) {
		return ExitNoInput
	}
	if code, ok := kindCodes[sketch.KindOf(err)]; ok {
		return code
	}
	return ExitInternalError
}
