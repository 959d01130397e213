package clipboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/portside-app/portside/internal/errors"
	"github.com/portside-app/portside/internal/logging"
)

func newCopier(native, osc52 func(string) error) *Copier {
	c := New(logging.NopLogger())
	c.native = native
	c.osc52 = osc52
	return c
}

func TestNativeFirst(t *testing.T) {
	var nativeGot, oscCalled string
	c := newCopier(
		func(s string) error { nativeGot = s; return nil },
		func(s string) error { oscCalled = s; return nil },
	)

	method, err := c.Copy("JBSWY3DPEHPK3PXP")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if method != MethodNative {
		t.Errorf("method = %v, want native", method)
	}
	if nativeGot != "JBSWY3DPEHPK3PXP" {
		t.Errorf("native received %q", nativeGot)
	}
	if oscCalled != "" {
		t.Error("osc52 backend should not run when native succeeds")
	}
}

func TestFallsBackToOSC52(t *testing.T) {
	var oscGot string
	c := newCopier(
		func(string) error { return errors.New("no display") },
		func(s string) error { oscGot = s; return nil },
	)

	method, err := c.Copy("1111-2222\n3333-4444")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("method = %v, want osc52", method)
	}
	if oscGot == "" {
		t.Error("osc52 backend never received the text")
	}
}

func TestManualCopyRequired(t *testing.T) {
	c := newCopier(
		func(string) error { return errors.New("no display") },
		func(string) error { return errors.New("no tty") },
	)

	method, err := c.Copy("secret")
	if !errors.Is(err, errors.ErrManualCopyRequired) {
		t.Fatalf("err = %v, want ErrManualCopyRequired", err)
	}
	if method != MethodNone {
		t.Errorf("method = %v, want none", method)
	}
}

func TestEmptyText(t *testing.T) {
	c := newCopier(
		func(string) error { t.Error("backend should not run"); return nil },
		func(string) error { t.Error("backend should not run"); return nil },
	)
	if _, err := c.Copy(""); err == nil {
		t.Error("copying nothing should error")
	}
}

func TestWriteOSC52Sequence(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOSC52To(&buf, "hello"); err != nil {
		t.Fatalf("writeOSC52To() error = %v", err)
	}
	out := buf.String()
	// OSC 52 wraps a base64 payload in ESC ] 52 ; c ; ... BEL/ST.
	if !strings.Contains(out, "52;c;") {
		t.Errorf("output does not look like an OSC 52 sequence: %q", out)
	}
	if !strings.Contains(out, "aGVsbG8=") {
		t.Errorf("payload is not the base64 text: %q", out)
	}
}
