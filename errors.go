package region

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedRegion is returned by Query when the address is not part
	// of any mapped region.
	ErrUnmappedRegion = errors.New("address does not contain allocated memory")

	// ErrInvalidParameter matches every *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupported is returned on platforms without a region backend.
	ErrUnsupported = errors.New("virtual memory queries are not supported on this platform")
)

// InvalidParameterError reports a caller contract violation, such as a zero
// size.
type InvalidParameterError struct {
	Param string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.Param)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// ProcfsInputError is returned when the kernel's textual or binary memory
// map does not have the expected shape.
type ProcfsInputError struct {
	Input  string
	Reason string
}

func (e *ProcfsInputError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid procfs input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid procfs input %q: %s", e.Input, e.Reason)
}

// SystemCallError wraps the OS error of a failed system call.
type SystemCallError struct {
	Op  string
	Err error
}

func (e *SystemCallError) Error() string {
	return fmt.Sprintf("system call %s failed: %v", e.Op, e.Err)
}

func (e *SystemCallError) Unwrap() error {
	return e.Err
}

// MachCallError holds a kern_return_t other than KERN_SUCCESS.
type MachCallError struct {
	Op   string
	Code int32
}

func (e *MachCallError) Error() string {
	return fmt.Sprintf("mach call %s failed with: %d", e.Op, e.Code)
}

func invalidParameter(param string) error {
	return &InvalidParameterError{Param: param}
}

func systemCall(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SystemCallError{Op: op, Err: err}
}
