package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in a call the error occurred
type Phase string

const (
	PhaseParam    Phase = "param"    // argument validation
	PhaseOracle   Phase = "oracle"   // capacity queries
	PhaseMarshal  Phase = "marshal"  // scratch buffers
	PhaseEncode   Phase = "encode"   // host value to native layout
	PhaseDecode   Phase = "decode"   // native layout to host value
	PhaseNative   Phase = "native"   // native library status
	PhaseDispatch Phase = "dispatch" // operation table
	PhaseHost     Phase = "host"     // embedding surfaces (wasm, cli)
)

// Kind categorizes the error
type Kind string

const (
	KindArity         Kind = "arity"
	KindTypeMismatch  Kind = "type_mismatch"
	KindFieldMissing  Kind = "field_missing"
	KindPrecisionLoss Kind = "precision_loss"
	KindOutOfRange    Kind = "out_of_range"
	KindNativeFailure Kind = "native_failure"
	KindAllocation    Kind = "allocation"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindRegistration  Kind = "registration"
	KindUnavailable   Kind = "unavailable"
	KindInternal      Kind = "internal"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Op       string
	Expected string
	Got      string
	Detail   string
	Path     []string
	Code     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	typed := e.Expected != "" || e.Got != ""
	if typed {
		b.WriteString(": ")
		switch {
		case e.Expected != "" && e.Got != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Got)
		case e.Expected != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		default:
			b.WriteString("got ")
			b.WriteString(e.Got)
		}
	}

	if e.Detail != "" {
		if typed {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Code != 0 {
		b.WriteString(" (status ")
		b.WriteString(strconv.Itoa(e.Code))
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(name string) *Builder {
	b.err.Op = name
	return b
}

// Path sets the argument or field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the expected kind or type
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
	return b
}

// Got sets the received kind or type
func (b *Builder) Got(t string) *Builder {
	b.err.Got = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Code sets the native status code
func (b *Builder) Code(code int) *Builder {
	b.err.Code = code
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// WithOp returns err annotated with the operation name when it is an *Error
// that has none yet. Other errors are returned unchanged.
func WithOp(err error, op string) error {
	if e, ok := err.(*Error); ok && e.Op == "" {
		c := *e
		c.Op = op
		return &c
	}
	return err
}

// Convenience constructors for common error patterns

// Arity creates an argument count error
func Arity(op string, want, got int) *Error {
	return &Error{
		Phase:  PhaseParam,
		Kind:   KindArity,
		Op:     op,
		Detail: fmt.Sprintf("expects %d argument(s), got %d", want, got),
		Value:  got,
	}
}

// TypeMismatch creates a kind mismatch error
func TypeMismatch(phase Phase, path []string, expected, got string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Expected: expected,
		Got:      got,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// PrecisionLoss creates an error for a number that cannot be represented exactly
func PrecisionLoss(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindPrecisionLoss,
		Path:     path,
		Expected: target,
		Detail:   fmt.Sprintf("value %v is not exactly representable", value),
		Value:    value,
	}
}

// OutOfRange creates an out of range error
func OutOfRange(phase Phase, path []string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: detail,
		Value:  value,
	}
}

// NativeFailure creates an error for a non-zero native status
func NativeFailure(op string, code int) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindNativeFailure,
		Op:     op,
		Detail: "native call reported failure",
		Code:   code,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, count, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d slot(s) of %d bytes", count, size),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s", name),
		Cause:  cause,
	}
}

// Unavailable creates an error for a missing native library
func Unavailable(detail string) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindUnavailable,
		Detail: detail,
	}
}

// Internal creates an error for a recovered fault
func Internal(op string, value any) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindInternal,
		Op:     op,
		Detail: fmt.Sprintf("recovered: %v", value),
		Value:  value,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Sentinels for errors.Is matching on kind alone.
var (
	ErrNativeFailure = &Error{Kind: KindNativeFailure}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrUnavailable   = &Error{Kind: KindUnavailable}
)

// IsParam reports whether err is an argument validation error.
func IsParam(err error) bool {
	var e *Error
	if !As(err, &e) {
		return false
	}
	return e.Phase == PhaseParam
}

// IsNativeFailure reports whether err carries a native failure status.
func IsNativeFailure(err error) bool {
	return Is(err, ErrNativeFailure)
}
