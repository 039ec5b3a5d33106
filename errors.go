package fat16

import "fmt"

// FSError is a sentinel error type for the engine, in the same spirit as
// disko's DiskoError: a plain string that implements `error` and can be
// wrapped with additional context without losing its identity for
// errors.Is().
type FSError string

func (e FSError) Error() string {
	return string(e)
}

// WithMessage returns a new error that chains a human-readable message onto
// e while still satisfying errors.Is(result, e).
func (e FSError) WithMessage(message string) *FileSystemError {
	return &FileSystemError{sentinel: e, message: fmt.Sprintf("%s: %s", e, message)}
}

// WrapError returns a new error that chains err's message onto e while still
// satisfying errors.Is(result, e) and errors.Is(result, err).
func (e FSError) WrapError(err error) *FileSystemError {
	return &FileSystemError{
		sentinel: e,
		message:  fmt.Sprintf("%s: %s", e, err.Error()),
		wrapped:  err,
	}
}

const (
	// ErrDuplicateName is returned by CreateFile when a name/extension pair
	// already exists in the root directory.
	ErrDuplicateName = FSError("a file with that name already exists")
	// ErrDirectoryFull is returned by CreateFile when no free root directory
	// slot is available.
	ErrDirectoryFull = FSError("root directory has no free slots")
	// ErrInsufficientSpace is returned by CreateFile when there aren't enough
	// free clusters to satisfy the requested size.
	ErrInsufficientSpace = FSError("not enough free clusters")
	// ErrFreeSlot is returned when an operation targets a root directory slot
	// that is not currently in use.
	ErrFreeSlot = FSError("directory slot is not in use")
	// ErrSlotOutOfRange is returned when a slot index is >= RootEntries.
	ErrSlotOutOfRange = FSError("directory slot index out of range")
	// ErrRangeInvalid is returned when a read or write range falls outside
	// the bounds of a file.
	ErrRangeInvalid = FSError("requested range is outside the file")
	// ErrCursorAhead is returned by ReadFromFileFast when the caller's cursor
	// is positioned after the requested start offset.
	ErrCursorAhead = FSError("read cursor is ahead of requested offset")
	// ErrNotFormatted names a volume that has not been formatted. No function
	// in this package returns it: New mounts a device without checking its
	// format, and GetFormatStatus reports the result in FormatStatus.
	ErrNotFormatted = FSError("volume is not formatted")
)

// FileSystemError is the error value built by WithMessage and WrapError.
// Engine methods return the FSError sentinels above directly (or the flash
// port's own error); a FileSystemError always identifies one of those
// sentinels so callers can use errors.Is against the package-level constants.
type FileSystemError struct {
	sentinel FSError
	message  string
	wrapped  error
}

func (e *FileSystemError) Error() string {
	return e.message
}

func (e *FileSystemError) Is(target error) bool {
	if sentinel, ok := target.(FSError); ok {
		return e.sentinel == sentinel
	}
	return false
}

func (e *FileSystemError) Unwrap() error {
	if e.wrapped != nil {
		return e.wrapped
	}
	return e.sentinel
}

// StatusCode is the uniform 8-bit legacy result code every public Engine
// method except FindFile and GetEmptyClusters returns alongside its Go
// error, mirroring the PIC18 firmware's
// calling convention (fat16.c's bare `return 0xFF`/`0xFE`/`0xFD` literals --
// the source never named these). 0x00 always means success. Unlike the Go
// error returned alongside it, the meaning of a given nonzero value is
// specific to the operation that returned it -- see the doc comment on each
// Engine method. A non-OK code always comes with a non-nil error. The
// reverse isn't true: StatusOK can still come back alongside a non-nil
// error when the failure is something the firmware's closed status set has
// no byte for, such as a Flash I/O error -- callers that need to tell that
// case apart from real success must check the error too.
type StatusCode uint8

const (
	StatusOK StatusCode = 0x00
	Status01 StatusCode = 0x01
	Status02 StatusCode = 0x02
	StatusFD StatusCode = 0xFD
	StatusFE StatusCode = 0xFE
	StatusFF StatusCode = 0xFF
)
