package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "null anchor",
			code:    "E101",
			wantMsg: "Tooltip shown without an anchor",
			wantCat: CategoryRuntime,
		},
		{
			name:    "star size",
			code:    "E201",
			wantMsg: "Unknown star size",
			wantCat: CategoryValidation,
		},
		{
			name:    "protocol error",
			code:    "E401",
			wantMsg: "Malformed live message",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tmpl, ok := Lookup("E402")
	if !ok {
		t.Fatal("E402 not registered")
	}
	if tmpl.Category != CategoryProtocol || !strings.HasSuffix(tmpl.DocURL, "/E402") {
		t.Errorf("template = %+v", tmpl)
	}
	if got := New("E402"); got.Message != tmpl.Message || got.DocURL != tmpl.DocURL {
		t.Errorf("New(E402) = %+v, want template %+v", got, tmpl)
	}

	if _, ok := Lookup("E999"); ok {
		t.Error("E999 reported as registered")
	}
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("E102").WithElement("tip").Wrap(cause)

	got := err.Error()
	want := `E102: Tooltip placement failed (element "tip"): boom`
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("E101"))

	if !stderrors.Is(err, New("E101")) {
		t.Error("expected match on same code")
	}
	if stderrors.Is(err, New("E102")) {
		t.Error("unexpected match on different code")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("x: %w", New("E302"))); got != "E302" {
		t.Errorf("CodeOf = %q, want E302", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E301") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E401")
	if FromError(orig, "E301") != orig {
		t.Error("FromError should return RatingError unchanged")
	}

	wrapped := FromError(fmt.Errorf("eof"), "E301")
	if wrapped.Code != "E301" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E101").
		WithElement("tip-1").
		WithSuggestion("assign a target").
		Format()

	for _, want := range []string{
		"ERROR E101: Tooltip shown without an anchor",
		"element #tip-1",
		"Hint: assign a target",
		"Learn more: https://vango.dev/docs/rating/errors/E101",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	got := New("E402").WithElement("star-9").FormatCompact()
	if got != "E402: Unknown element id #star-9" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprintPlainError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("disk full"))
	if !strings.Contains(buf.String(), "ERROR: disk full") {
		t.Errorf("Fprint = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
