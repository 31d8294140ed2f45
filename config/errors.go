package config

import (
	"fmt"
)

// LineErrorKind classifies why a single configuration line was rejected.
type LineErrorKind int

const (
	Malformed LineErrorKind = iota
	UnknownOption
	UnknownModifier
	UnknownKey
	ExpectedBool
	ExpectedInt
	ModifierWithNoKey
)

func (k LineErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case UnknownOption:
		return "unknown option"
	case UnknownModifier:
		return "unknown modifier"
	case UnknownKey:
		return "unknown key"
	case ExpectedBool:
		return "expected bool"
	case ExpectedInt:
		return "expected int"
	case ModifierWithNoKey:
		return "modifier with no key"
	default:
		return "unknown"
	}
}

// LineError describes a rejected line. Value holds the offending token or
// value; Err holds the underlying cause for ExpectedInt.
type LineError struct {
	Kind  LineErrorKind
	Value string
	Err   error
}

func (e *LineError) Error() string {
	switch e.Kind {
	case Malformed:
		return "line must be an option, followed by an equals sign, followed by a value"
	case UnknownOption:
		return fmt.Sprintf("unknown option `%s`", e.Value)
	case UnknownModifier:
		return fmt.Sprintf("unknown modifier `%s`", e.Value)
	case UnknownKey:
		return fmt.Sprintf("unknown key `%s`", e.Value)
	case ExpectedBool:
		return fmt.Sprintf("expected value to be one of `true` or `false`, got %s", e.Value)
	case ExpectedInt:
		return fmt.Sprintf("expected value to be a positive integer less than or equal to %d, but failed to parse: %v",
			uint64(^uint(0)), e.Err)
	case ModifierWithNoKey:
		return "it doesn't make sense to have an empty key (none) with any modifiers, or other tokens"
	default:
		return e.Kind.String()
	}
}

func (e *LineError) Unwrap() error { return e.Err }

func expectedInt(value string, err error) *LineError {
	return &LineError{Kind: ExpectedInt, Value: value, Err: err}
}

// ParseError is returned by Parse. Exactly one of Cause and IO is set.
type ParseError struct {
	// Line is the 0-based index of the rejected line.
	Line  int
	Cause *LineError
	IO    error
}

func (e *ParseError) Error() string {
	if e.IO != nil {
		return fmt.Sprintf("I/O error: %v", e.IO)
	}
	return fmt.Sprintf("error at line %d: %v", e.Line+1, e.Cause)
}

func (e *ParseError) Unwrap() error {
	if e.IO != nil {
		return e.IO
	}
	return e.Cause
}
