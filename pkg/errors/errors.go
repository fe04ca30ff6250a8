package errors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknownRegister     Kind = iota // name or id absent from the descriptor table
	KindUnsupportedRegister             // id has no width rule
	KindSerialization                   // class id or stream framing mismatch
)

func (k Kind) String() string {
	switch k {
	case KindUnknownRegister:
		return "unknown register"
	case KindUnsupportedRegister:
		return "unsupported register"
	case KindSerialization:
		return "serialization"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type ArchError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ArchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ArchError) Unwrap() error {
	return e.Cause
}

// IsUnknownRegister checks if err is, or wraps, an unknown-register error
func IsUnknownRegister(err error) bool {
	return hasKind(err, KindUnknownRegister)
}

// IsUnsupportedRegister checks if err is, or wraps, an unsupported-register error
func IsUnsupportedRegister(err error) bool {
	return hasKind(err, KindUnsupportedRegister)
}

// IsSerialization checks if err is, or wraps, a serialization error
func IsSerialization(err error) bool {
	return hasKind(err, KindSerialization)
}

func hasKind(err error, kind Kind) bool {
	var archErr *ArchError
	for err != nil {
		if !errors.As(err, &archErr) {
			return false
		}
		if archErr.Kind == kind {
			return true
		}
		err = archErr.Cause
	}
	return false
}

// UnknownRegisterf creates a new unknown-register error with formatted message
func UnknownRegisterf(format string, args ...interface{}) *ArchError {
	return &ArchError{
		Kind:    KindUnknownRegister,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnsupportedRegisterf creates a new unsupported-register error with formatted message
func UnsupportedRegisterf(format string, args ...interface{}) *ArchError {
	return &ArchError{
		Kind:    KindUnsupportedRegister,
		Message: fmt.Sprintf(format, args...),
	}
}

// Serializationf creates a new serialization error with formatted message
func Serializationf(format string, args ...interface{}) *ArchError {
	return &ArchError{
		Kind:    KindSerialization,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapSerialization wraps an existing error (typically an I/O failure on the
// sink or source) as a serialization error
func WrapSerialization(err error, message string) *ArchError {
	return &ArchError{
		Kind:    KindSerialization,
		Message: message,
		Cause:   err,
	}
}
