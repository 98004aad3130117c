package yamp

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-checkable classification of runtime failures.
type ErrorKind int8

// Kinds of runtime failures.
const (
	KindUnknown ErrorKind = iota
	KindArgumentNumber
	KindArgumentType
	KindOperationInvalid
	KindSymbolUnknown
	KindDimension
	KindIndex
	KindLength
	KindConvergence
	KindOverflow
	KindFormatUnsupported
	KindScript
)

var kindNames = [...]string{
	"unknown failure",
	"argument number invalid",
	"argument type invalid",
	"operation invalid",
	"symbol unknown",
	"dimension mismatch",
	"index out of bounds",
	"wrong length",
	"no convergence",
	"numeric overflow",
	"format not supported",
	"script failure",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Failure is the base interface of all runtime failures.
type Failure interface {
	error
	Kind() ErrorKind
}

// KindOf returns the kind of a failure anywhere in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var f Failure
	if errors.As(err, &f) {
		return f.Kind()
	}
	return KindUnknown
}

// --- Resolution failures ---------------------------------------------------

// ArgumentNumberError is raised if a function is called with a number of
// arguments no overload accepts. Expected is the closest accepted count.
type ArgumentNumberError struct {
	Function string
	Given    int
	Expected int
}

func (e *ArgumentNumberError) Error() string {
	return fmt.Sprintf("%s: %d argument(s) given, but %d expected", e.Function, e.Given, e.Expected)
}

// Kind returns KindArgumentNumber.
func (e *ArgumentNumberError) Kind() ErrorKind {
	return KindArgumentNumber
}

// ArgumentTypeError is raised if an argument is not of the type a function
// expects at a position. Index counts from 1.
type ArgumentTypeError struct {
	Function string
	Index    int
	Actual   string
	Expected string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("%s: argument %d is of type %s, but %s expected",
		e.Function, e.Index, e.Actual, e.Expected)
}

// Kind returns KindArgumentType.
func (e *ArgumentTypeError) Kind() ErrorKind {
	return KindArgumentType
}

// OperationInvalidError is raised if an operator is not defined for the types
// of its operands. Right is empty for unary operators.
type OperationInvalidError struct {
	Operator string
	Left     string
	Right    string
}

func (e *OperationInvalidError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("operator %s is not defined for %s", e.Operator, e.Left)
	}
	return fmt.Sprintf("operator %s is not defined for %s and %s", e.Operator, e.Left, e.Right)
}

// Kind returns KindOperationInvalid.
func (e *OperationInvalidError) Kind() ErrorKind {
	return KindOperationInvalid
}

// SymbolError is raised if a name resolves to neither a variable, nor a
// function, nor a constant.
type SymbolError struct {
	Name string
	Msg  string
}

func (e *SymbolError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Msg)
	}
	return fmt.Sprintf("symbol %q is not defined", e.Name)
}

// Kind returns KindSymbolUnknown.
func (e *SymbolError) Kind() ErrorKind {
	return KindSymbolUnknown
}

// --- Domain failures -------------------------------------------------------

// DomainError is raised by functions and operators for arguments outside of
// their domain.
type DomainError struct {
	kind     ErrorKind
	Function string
	Msg      string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Function, e.kind, e.Msg)
}

// Kind returns the kind of domain failure.
func (e *DomainError) Kind() ErrorKind {
	return e.kind
}

func domainError(kind ErrorKind, fn string, format string, args ...interface{}) *DomainError {
	return &DomainError{kind: kind, Function: fn, Msg: fmt.Sprintf(format, args...)}
}

// DimensionError creates a failure for operands of incompatible dimensions.
func DimensionError(fn string, format string, args ...interface{}) *DomainError {
	return domainError(KindDimension, fn, format, args...)
}

// IndexError creates a failure for an index outside of a value's bounds.
func IndexError(fn string, format string, args ...interface{}) *DomainError {
	return domainError(KindIndex, fn, format, args...)
}

// LengthError creates a failure for an argument of wrong length.
func LengthError(fn string, format string, args ...interface{}) *DomainError {
	return domainError(KindLength, fn, format, args...)
}

// ConvergenceError creates a failure for an iteration which did not converge.
func ConvergenceError(fn string, format string, args ...interface{}) *DomainError {
	return domainError(KindConvergence, fn, format, args...)
}

// OverflowError creates a failure for a result which is not representable.
func OverflowError(fn string, format string, args ...interface{}) *DomainError {
	return domainError(KindOverflow, fn, format, args...)
}

// --- Other failures --------------------------------------------------------

// FormatError is raised when restoring a value from an unknown type tag or
// from a corrupt payload.
type FormatError struct {
	Tag string
	Msg string
}

func (e *FormatError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("format not supported: %q", e.Tag)
	}
	return fmt.Sprintf("format not supported: %q: %s", e.Tag, e.Msg)
}

// Kind returns KindFormatUnsupported.
func (e *FormatError) Kind() ErrorKind {
	return KindFormatUnsupported
}

// ScriptError wraps a failure of a scripted function.
type ScriptError struct {
	Function string
	Err      error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Function, e.Err)
}

// Unwrap returns the wrapped error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Kind returns KindScript.
func (e *ScriptError) Kind() ErrorKind {
	return KindScript
}
