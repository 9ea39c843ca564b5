package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestTimingErrorString(t *testing.T) {
	err := &TimingError{
		Op:   "test.operation",
		Kind: KindParsing,
		Err:  &ParseError{DataType: "easing", Input: "wobble"},
	}
	got := err.Error()
	want := `test.operation [parsing]: failed to parse easing from "wobble"`
	if got != want {
		t.Errorf("TimingError.Error() = %q, want %q", got, want)
	}
}

func TestTimingErrorWithField(t *testing.T) {
	err := &TimingError{
		Op:    "animation.NewTimingParams",
		Kind:  KindValidation,
		Field: "iterations",
		Err:   stderrors.New("must be non-negative"),
	}
	got := err.Error()
	want := "field=iterations"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestTimingErrorUnwrap(t *testing.T) {
	inner := &ParseError{DataType: "fill", Input: "sideways"}
	err := &TimingError{Op: "test.op", Kind: KindParsing, Err: inner}

	var pe *ParseError
	if !stderrors.As(err, &pe) {
		t.Fatal("expected errors.As to find the ParseError")
	}
	if pe.Input != "sideways" {
		t.Errorf("Input = %q, want %q", pe.Input, "sideways")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindValidation, "validation"},
		{KindParsing, "parsing"},
		{KindConfig, "config"},
		{KindInvariant, "invariant"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "cmd.sample",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in cmd.sample: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorWithReason(t *testing.T) {
	err := &ParseError{DataType: "easing", Input: "steps(0)", Reason: "step count must be positive"}
	got := err.Error()
	want := `failed to parse easing from "steps(0)": step count must be positive`
	if got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *TimingError
	handler := &testHandler{
		onError: func(err *TimingError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&TimingError{
		Op:   "test.op",
		Kind: KindConfig,
		Err:  stderrors.New("missing timing section"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestAssert(t *testing.T) {
	var captured *InvariantError
	handler := &testHandler{
		onInvariant: func(err *InvariantError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Assert(true, "test.assert", "never reported")
	if captured != nil {
		t.Fatal("a holding invariant should not be reported")
	}

	defer func() {
		r := recover()
		ie, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("recovered %T, want *InvariantError", r)
		}
		if ie.Op != "test.assert" {
			t.Errorf("Op = %q, want %q", ie.Op, "test.assert")
		}
		if captured == nil {
			t.Error("expected handler to see the invariant before the panic")
		}
	}()
	Assert(false, "test.assert", "progress must be finite")
	t.Error("Assert(false) should not return")
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Verbose: true, Out: &buf}

	h.HandleError(&TimingError{
		Op:         "config.Load",
		Kind:       KindConfig,
		Field:      "timing.fill",
		Err:        stderrors.New("bad fill"),
		StackTrace: "frame",
	})
	h.HandlePanic(&PanicError{Op: "cmd.plot", Value: "boom"})
	h.HandleInvariant(&InvariantError{Op: "animation.ComputeTimingAt", Message: "progress must be finite"})

	got := buf.String()
	for _, want := range []string{
		"[timing error] config.Load [config] field=timing.fill: bad fill",
		"Stack trace:\nframe",
		"[timing panic] cmd.plot: boom",
		"[timing invariant] invariant violated in animation.ComputeTimingAt: progress must be finite",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q should contain %q", got, want)
		}
	}
}

type testHandler struct {
	onError     func(*TimingError)
	onPanic     func(*PanicError)
	onInvariant func(*InvariantError)
}

func (h *testHandler) HandleError(err *TimingError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleInvariant(err *InvariantError) {
	if h.onInvariant != nil {
		h.onInvariant(err)
	}
}
