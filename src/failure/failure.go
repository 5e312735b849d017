// Package failure turns failed platform calls into errors that read the way
// they are shown to the user: "<Op> failed" or "<Op> failed (<code>)".
package failure

import (
	"fmt"
	"syscall"

	"github.com/pkg/errors"

	"kagerou-screenshot/src/winapi"
)

// OpError is a failed platform operation. HasCode is set when the platform
// supplied a numeric diagnostic.
type OpError struct {
	Op      string
	Code    uint32
	HasCode bool
}

func (e *OpError) Error() string {
	if e.HasCode {
		return fmt.Sprintf("%s failed (%d)", e.Op, e.Code)
	}
	return e.Op + " failed"
}

// Check returns a generic failure for op when ok is false, nil otherwise.
func Check(ok bool, op string) error {
	if ok {
		return nil
	}
	return errors.WithStack(&OpError{Op: op})
}

// CheckErr returns a diagnostic failure for op when err is non-nil. The code
// is taken from the syscall.Errno inside err; other errors are reported
// without a code.
func CheckErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errors.WithStack(&OpError{Op: op, Code: uint32(errno), HasCode: true})
	}
	return errors.WithStack(&OpError{Op: op})
}

// CheckGDI is Check for GDI calls that signal failure with either NULL or
// HGDI_ERROR.
func CheckGDI(result winapi.HGDIOBJ, op string) error {
	return Check(result != 0 && result != winapi.HGDIError, op)
}

// Op returns the failed operation named by err, or "" if err does not carry one.
func Op(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op
	}
	return ""
}
