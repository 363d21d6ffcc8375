package sensor

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// ErrTableUnavailable marks a total failure to read the OS sensor table.
// A table that reads fine but contains nothing GPU-related is not an error.
var ErrTableUnavailable = errors.New("sensor table unavailable")

// LibraryError is a structured failure reported by the NVML library itself.
type LibraryError struct {
	Call string      // the NVML call that failed
	Code nvml.Return // the library's error code
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Call, nvml.ErrorString(e.Code))
}

// NotFound reports whether the library signalled its not-found condition,
// which in practice means the driver is not loaded or sees no devices.
func (e *LibraryError) NotFound() bool {
	return e.Code == nvml.ERROR_NOT_FOUND
}

// UnexpectedError is a vendor-path failure outside the library's structured
// error codes, e.g. a panic escaping the bindings.
type UnexpectedError struct {
	Reason string
}

func (e *UnexpectedError) Error() string {
	return e.Reason
}
