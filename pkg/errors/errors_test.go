package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New("render.Mount", KindRender, "boom")
	want := "render.Mount [render]: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := &Error{Op: "op", Kind: KindSync, Err: cause}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is failed to reach the wrapped cause")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindUnknown:  "unknown",
		KindIndex:    "index",
		KindContract: "contract",
		KindRender:   "render",
		KindSync:     "sync",
		Kind(99):     "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIndexErrorMessage(t *testing.T) {
	err := &IndexError{Op: "list.Get", Index: 5, Length: 2}
	want := "list.Get: index 5 out of range with length 2"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

type capturingHandler struct {
	errs []*Error
}

func (h *capturingHandler) HandleError(err *Error) {
	h.errs = append(h.errs, err)
}

func TestReportUsesConfiguredHandler(t *testing.T) {
	captured := &capturingHandler{}
	SetHandler(captured)
	defer SetHandler(nil)

	Report(nil)
	Report(New("op", KindContract, "violated"))

	if len(captured.errs) != 1 {
		t.Fatalf("handler received %d errors, want 1", len(captured.errs))
	}
	if captured.errs[0].Kind != KindContract {
		t.Errorf("Kind = %v, want KindContract", captured.errs[0].Kind)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("CaptureStack returned an empty stack")
	}
	if !strings.Contains(stack, ".go:") {
		t.Errorf("stack lacks file:line frames:\n%s", stack)
	}
}

func TestReportCapturesStack(t *testing.T) {
	captured := &capturingHandler{}
	SetHandler(captured)
	defer SetHandler(nil)

	Report(New("op", KindRender, "boom"))
	if len(captured.errs) != 1 {
		t.Fatalf("handler received %d errors, want 1", len(captured.errs))
	}
	if captured.errs[0].StackTrace == "" {
		t.Error("Report did not capture a stack trace")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("handler after SetHandler(nil) = %T, want *LogHandler", Handler())
	}
}
