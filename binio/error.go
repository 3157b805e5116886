package binio

import (
	"errors"
	"runtime"
)

// Error handling in binfield reuses a small set of sentinel error kinds for as many cases as possible,
// with extra information wrapped as applicable. Decode failures against bad input return wrapped
// ErrInsufficientData, ErrMalformedCString or ErrInvalidEncoding; they mean the input cannot be
// decoded and say nothing about the session itself. ErrSizeOverflow is an encode-time contract
// error; a field's declared size width cannot represent its data. Panics are only used when there
// is clear misuse of the library; programmer error.
//
// Sentinels can be checked through any number of wrappers with
//
//	if errors.Is(err, binio.ErrInsufficientData) {
//		// handle truncated input
//	}
var (
	// ErrInsufficientData is returned when fewer bytes remain than a fixed-width or length-prefixed read requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformedCString is returned when no 0x00 terminator exists before the end of the buffer.
	ErrMalformedCString = errors.New("malformed c-string")

	// ErrInvalidEncoding is returned when a string payload cannot be represented in the session's text encoding.
	ErrInvalidEncoding = errors.New("invalid text encoding")

	// ErrSizeOverflow is returned when a payload's length cannot be represented in its length prefix width.
	ErrSizeOverflow = errors.New("size overflow")

	// ErrBadType is returned when a type cannot be marshaled; unsupported kinds, or values not passed by reference.
	ErrBadType = errors.New("bad type")

	// ErrNilPointer is returned if a pointer that should not be nil is nil.
	ErrNilPointer = errors.New("nil pointer")

	// ErrBadConfig is returned when a session configuration is unusable, i.e. a DefaultSizeWidth of 3.
	ErrBadConfig = errors.New("bad config")
)

// NewError returns an Error wrapping err with message and the calling function's name.
// skip is the number of stack frames to ascend when resolving the caller; 0 names the
// function calling NewError.
func NewError(err error, message string, skip int) error {
	return Error{
		Err:     err,
		Message: message,
		Caller:  getCaller(skip + 1),
	}
}

// Error wraps one of the sentinel errors with context about where and why it occurred.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error.
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap().
func (e Error) Unwrap() error {
	return e.Err
}

// getCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func getCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "unknown function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
