// Package toolerr defines the error taxonomy shared by every file tool.
//
// Every failure that leaves a tool is an *Error carrying the operation name and
// one of the sentinel kinds below, so callers can branch with errors.Is without
// parsing messages.
package toolerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds.
var (
	ErrInputRejected   = errors.New("input rejected")
	ErrDecodeFailed    = errors.New("decode failed")
	ErrExternalService = errors.New("external service failed")
	ErrExportFailed    = errors.New("export failed")

	// ErrUnauthorized and ErrQuotaExceeded also match ErrExternalService.
	ErrUnauthorized  = fmt.Errorf("%w: unauthorized", ErrExternalService)
	ErrQuotaExceeded = fmt.Errorf("%w: quota exceeded", ErrExternalService)
)

// Error is a failure of a single tool operation.
type Error struct {
	Op   string // operation name, e.g. "watermark.ExportPDF"
	Kind error  // one of the sentinel kinds
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New wraps err as a failure of kind in op. An err that already is an *Error
// keeps its original kind so the first classification wins.
func New(op string, kind, err error) error {
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Rejected reports invalid user input.
func Rejected(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrInputRejected, Err: fmt.Errorf(format, args...)}
}

// Decode reports corrupt or unsupported content.
func Decode(op string, err error) error {
	return New(op, ErrDecodeFailed, err)
}

// Export reports a library-level failure while producing the artifact.
func Export(op string, err error) error {
	return New(op, ErrExportFailed, err)
}

// KindOf returns the sentinel kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, k := range []error{ErrUnauthorized, ErrQuotaExceeded, ErrExternalService, ErrInputRejected, ErrDecodeFailed, ErrExportFailed} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
