package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	cases := map[string]struct {
		kind    *Error
		err     error
		want          bool
	}{
		"instance of the same root": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"wrapped instance of the same root": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"deeply wrapped": {
			kind: ErrAmount,
			err:  Wrap(Wrap(ErrAmount, "one"), "two"),
			want: true,
		},
		"different root": {
			kind: ErrNotFound,
			err:  ErrUnauthorized,
			want: false,
		},
		"wrapped different root": {
			kind: ErrNotFound,
			err:  Wrap(ErrUnauthorized, "nope"),
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  stderrors.New("not found"),
			want: false,
		},
		"nil error": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %v", err)
	}
}

func TestWrappedErrorMessage(t *testing.T) {
	err := Wrap(ErrState, "claimed twice")
	const want = "claimed twice: invalid state"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestABCICode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":                {err: nil, want: 0},
		"root":               {err: ErrUnauthorized, want: 2},
		"wrapped root":       {err: Wrap(ErrUnauthorized, "no sig"), want: 2},
		"twice wrapped root": {err: Wrap(Wrap(ErrOverflow, "a"), "b"), want: 16},
		"stdlib":             {err: stderrors.New("whatever"), want: internalABCICode},
		"custom code":        {err: Wrap(custom, "custom"), want: 9999},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := ABCICode(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

var custom = Register(9999, "custom test error")

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when registering a used code")
		}
	}()
	Register(2, "conflicting with ErrUnauthorized")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("kaboom")
	}()

	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
	if got := fmt.Sprint(err); got != "kaboom: panic" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWrapPreservesStackTrace(t *testing.T) {
	err := Wrap(ErrHuman, "inner")
	if stackTrace(err) == nil {
		t.Fatal("first wrap must attach a stack trace")
	}

	outer := Wrap(err, "outer")
	// A second wrap must not shadow the original trace.
	if fmt.Sprintf("%v", stackTrace(outer)) != fmt.Sprintf("%v", stackTrace(err)) {
		t.Fatal("wrapping must not replace the original stack trace")
	}
}
