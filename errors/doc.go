// Package errors provides structured error types for the h3 bridge.
//
// Errors are categorized by Phase (where in a call the error occurred) and
// Kind (error category). The Error type carries the operation name, the
// argument path, expected and received kinds, a native status code and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParam, errors.KindTypeMismatch).
//		Op("kRing").
//		Path("k").
//		Expected("int").
//		Got("string").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Arity("kRing", 2, 1)
//	err := errors.NativeFailure("hexRange", 1)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind; a target without a Phase matches on Kind only.
package errors
