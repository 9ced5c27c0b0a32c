package javadoc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single line block", "/** Simple text. */", " Simple text. "},
		{"empty block", "/**/", ""},
		{"multi line block", "/**\n * First line.\n *\n * Second line.\n */", "First line.\n\nSecond line.\n "},
		{"tabs after star", "/**\n *\tIndented.\n */", "Indented.\n "},
		{"line comment", "// note // kept", " note // kept"},
		{"plain text", "  already clean\n", "already clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripMarkers(tt.input, nil)
			if err != nil {
				t.Fatalf("StripMarkers: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripMarkersMalformed(t *testing.T) {
	_, err := StripMarkers("/** never closed", nil)
	if !errors.Is(err, ErrMalformedBlockComment) {
		t.Errorf("got %v, want %v", err, ErrMalformedBlockComment)
	}

	_, err = Decode("/* trailing */ text")
	if !errors.Is(err, ErrMalformedBlockComment) {
		t.Errorf("Decode: got %v, want %v", err, ErrMalformedBlockComment)
	}
}

func TestStripMarkersNoopOnCleanText(t *testing.T) {
	inputs := []string{"plain", "two\nlines", "a * b", "", "@param x y"}
	for _, input := range inputs {
		got, err := StripMarkers(input, nil)
		if err != nil {
			t.Fatalf("StripMarkers(%q): %v", input, err)
		}
		if got != input {
			t.Errorf("StripMarkers(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a &lt; b", "a < b"},
		{"&amp;lt;T&amp;gt;", "<T>"},
		{"&amp;amp;amp;", "&"},
		{"&#64;param", "@param"},
		{"no entities", "no entities"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, _ := Unescape(tt.input, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			again, _ := Unescape(got, nil)
			if again != got {
				t.Errorf("not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestCollapseBlankRuns(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\n\n\nb", "ab"},
		{"a\r\n\r\n\r\nb", "ab"},
		{"a\n\r\n\nb", "ab"},
		{"a\n\nb", "a\n\nb"},
		{"a\nb", "a\nb"},
		{"a\n\n\n\n\n\nb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, _ := CollapseBlankRuns(tt.input, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "\n\n\n") {
				t.Errorf("%q still contains a blank run", got)
			}
		})
	}
}

func TestDecodeMethod(t *testing.T) {
	raw := `/**
 * Registers a listener.
 *
 * @param listener the listener
 *        to add
 * @param listener duplicated on purpose
 * @param flags &lt;optional&gt;
 * @return true when added
 * @exception IllegalStateException if closed
 * @exception IOException on I/O failure
 */`

	doc, err := DecodeMethod(raw)
	if err != nil {
		t.Fatalf("DecodeMethod: %v", err)
	}

	wantParams := []Hint{
		{Name: "listener", Text: "the listener\nto add"},
		{Name: "listener", Text: "duplicated on purpose"},
		{Name: "flags", Text: "<optional>"},
	}
	if !reflect.DeepEqual(doc.Params, wantParams) {
		t.Errorf("params = %#v, want %#v", doc.Params, wantParams)
	}

	if doc.Return == nil || doc.Return.Text != "true when added" {
		t.Errorf("return = %#v", doc.Return)
	}

	wantExceptions := []Hint{
		{Name: "IllegalStateException", Text: "if closed"},
		// the closing " */" line leaves "\n " behind
		{Name: "IOException", Text: "on I/O failure\n "},
	}
	if !reflect.DeepEqual(doc.Exceptions, wantExceptions) {
		t.Errorf("exceptions = %#v, want %#v", doc.Exceptions, wantExceptions)
	}

	for _, tag := range []string{"@param", "@return", "@exception"} {
		if strings.Contains(doc.Text, tag) {
			t.Errorf("residual text %q still contains %s", doc.Text, tag)
		}
	}
	if !strings.Contains(doc.Text, "Registers a listener.") {
		t.Errorf("residual text %q lost the description", doc.Text)
	}
	if doc.Raw != raw {
		t.Errorf("Raw was modified")
	}
}

func TestDecodeMethodCounts(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		params     int
		exceptions int
		hasReturn  bool
	}{
		{"none", "Just text.", 0, 0, false},
		{"only return", "Text.\n@return value", 0, 0, true},
		{"two returns keep one", "@return first\n@return second", 0, 0, true},
		{"params and exceptions", "@param a x\n@param b y\n@exception E z", 2, 1, false},
		{"all", "Desc.\n@param a x\n@return r\n@exception E z\n@exception F w", 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeMethod(tt.body)
			if err != nil {
				t.Fatalf("DecodeMethod: %v", err)
			}
			if len(doc.Params) != tt.params {
				t.Errorf("got %d params, want %d", len(doc.Params), tt.params)
			}
			if len(doc.Exceptions) != tt.exceptions {
				t.Errorf("got %d exceptions, want %d", len(doc.Exceptions), tt.exceptions)
			}
			if (doc.Return != nil) != tt.hasReturn {
				t.Errorf("return = %v, want present=%v", doc.Return, tt.hasReturn)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, decode := range []func(string) (*Documentation, error){Decode, DecodeMethod} {
		doc, err := decode("")
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !doc.IsEmpty() {
			t.Errorf("got %#v, want empty", doc)
		}
	}
}

func TestDecodeIdempotentOnCleanInput(t *testing.T) {
	inputs := []string{"Returns the name.", "Line one.\nLine two.", "a < b"}
	for _, input := range inputs {
		once, err := DecodeMethod(input)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := DecodeMethod(once.Text)
		if err != nil {
			t.Fatal(err)
		}
		if once.Text != input || twice.Text != once.Text {
			t.Errorf("%q -> %q -> %q", input, once.Text, twice.Text)
		}
	}
}

func TestDeclarationChainKeepsTags(t *testing.T) {
	doc, err := Decode("/** Type docs.\n * @param T element type */")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Params) != 0 {
		t.Errorf("declaration chain absorbed params: %v", doc.Params)
	}
	if !strings.Contains(doc.Text, "@param T") {
		t.Errorf("text = %q", doc.Text)
	}
}

func TestChainBuilder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return func(text string, _ *Documentation) (string, error) {
			order = append(order, name)
			return text + name, nil
		}
	}

	c := NewChain().Then(stage("a")).Then(stage("b"), stage("c"))
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	doc, err := c.Decode(">")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text != ">abc" {
		t.Errorf("got %q, want %q", doc.Text, ">abc")
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", order)
	}

	if got := MethodChain().Len(); got != 7 {
		t.Errorf("MethodChain has %d stages, want 7", got)
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	c := NewChain().Then(
		func(string, *Documentation) (string, error) { return "", boom },
		func(text string, _ *Documentation) (string, error) { called = true; return text, nil },
	)
	if _, err := c.Decode("x"); !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
	if called {
		t.Errorf("stage after the failing one ran")
	}
}
