package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseParam,
				Kind:     KindTypeMismatch,
				Op:       "polyfill",
				Path:     []string{"polygon", "holes", "0"},
				Expected: "seq",
				Got:      "string",
				Detail:   "hole must be a ring",
			},
			contains: []string{"[param]", "type_mismatch", "in polyfill", "polygon.holes.0", "expected seq", "got string", "hole must be a ring"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfRange,
			},
			contains: []string{"[decode]", "out_of_range"},
		},
		{
			name:     "native status",
			err:      NativeFailure("hexRange", 1),
			contains: []string{"[native]", "native_failure", "hexRange", "(status 1)"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMarshal,
				Kind:   KindAllocation,
				Detail: "scratch buffer",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[marshal]", "allocation", "scratch buffer", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseParam,
		Kind:  KindTypeMismatch,
		Path:  []string{"k"},
	}

	if !err.Is(&Error{Phase: PhaseParam, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseParam, Kind: KindArity}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindTypeMismatch}) {
		t.Error("Is should match kind when target has no phase")
	}
	if !errors.Is(err, &Error{Phase: PhaseParam, Kind: KindTypeMismatch}) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParam, KindTypeMismatch).
		Op("kRing").
		Path("args", "1").
		Expected("int").
		Got("string").
		Value("seven").
		Code(3).
		Cause(cause).
		Detail("radius must be %s", "integral").
		Build()

	if err.Phase != PhaseParam {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParam)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Op != "kRing" {
		t.Errorf("Op = %v, want kRing", err.Op)
	}
	if len(err.Path) != 2 || err.Path[0] != "args" || err.Path[1] != "1" {
		t.Errorf("Path = %v, want [args 1]", err.Path)
	}
	if err.Expected != "int" || err.Got != "string" {
		t.Errorf("Expected=%v Got=%v", err.Expected, err.Got)
	}
	if err.Value != "seven" {
		t.Errorf("Value = %v, want seven", err.Value)
	}
	if err.Code != 3 {
		t.Errorf("Code = %d, want 3", err.Code)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "radius must be integral" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Arity", func(t *testing.T) {
		err := Arity("kRing", 2, 3)
		if err.Phase != PhaseParam || err.Kind != KindArity {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Error(), "expects 2 argument(s), got 3") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("PrecisionLoss", func(t *testing.T) {
		err := PrecisionLoss(PhaseParam, []string{"h"}, 1.5, "cell")
		if err.Kind != KindPrecisionLoss {
			t.Errorf("Kind = %v, want %v", err.Kind, KindPrecisionLoss)
		}
		if err.Value != 1.5 {
			t.Errorf("Value = %v, want 1.5", err.Value)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseOracle, []string{"k"}, -1, "radius must be non-negative")
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseMarshal, 1024, 8)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain count", err.Detail)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseEncode, []string{"polygon"}, "geofence")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseDispatch, "operation", "nope")
		if !errors.Is(err, ErrNotFound) {
			t.Error("NotFound should match ErrNotFound")
		}
	})

	t.Run("Internal", func(t *testing.T) {
		err := Internal("kRing", "boom")
		if err.Kind != KindInternal || !strings.Contains(err.Detail, "boom") {
			t.Errorf("unexpected %v", err)
		}
	})
}

func TestWithOp(t *testing.T) {
	base := TypeMismatch(PhaseParam, []string{"h"}, "int", "string")
	got := WithOp(base, "h3ToGeo")

	var e *Error
	if !As(got, &e) {
		t.Fatal("expected *Error")
	}
	if e.Op != "h3ToGeo" {
		t.Errorf("Op = %q, want h3ToGeo", e.Op)
	}
	if base.Op != "" {
		t.Error("WithOp must not mutate its input")
	}

	plain := errors.New("plain")
	if WithOp(plain, "x") != plain {
		t.Error("WithOp should pass through foreign errors")
	}
}

func TestClassifiers(t *testing.T) {
	if !IsParam(Arity("x", 1, 0)) {
		t.Error("arity error should be a param error")
	}
	if IsParam(NativeFailure("x", 1)) {
		t.Error("native failure is not a param error")
	}
	if !IsNativeFailure(Wrap(PhaseMarshal, KindNativeFailure, nil, "fill")) {
		t.Error("marshal-phase native failure should classify")
	}
	if IsNativeFailure(errors.New("other")) {
		t.Error("foreign error should not classify")
	}
}
