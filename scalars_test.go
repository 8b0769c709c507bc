package apexJSON

import (
	"testing"
	"time"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "plain", "with \"quote\"", "line\nbreak", "tab\ttab", "unicode: é中"}
	c := String()
	for _, s := range cases {
		out, err := Marshal[string](c, s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		got, err := Unmarshal[string](c, out)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != s {
			t.Fatalf("got %q, want %q", got, s)
		}
	}
}

func TestStringDecodeEscapes(t *testing.T) {
	got, err := Unmarshal[string](String(), []byte(`"a\tb\nc\"d\\eA"`))
	if err != nil {
		t.Fatal(err)
	}
	want := "a\tb\nc\"d\\eA"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringDecodeSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE as a UTF-16 surrogate pair.
	got, err := Unmarshal[string](String(), []byte("\"\\uD83D\\uDE00\""))
	if err != nil {
		t.Fatal(err)
	}
	want := "\U0001F600"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	c := Bool()
	for _, b := range []bool{true, false} {
		out, err := Marshal[bool](c, b)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unmarshal[bool](c, out)
		if err != nil || got != b {
			t.Fatalf("got %v, %v, want %v", got, err, b)
		}
	}
}

func TestNumberIntRoundTrip(t *testing.T) {
	c := Number[int]()
	for _, n := range []int{0, 1, -1, 12345, -98765} {
		out, err := Marshal[int](c, n)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unmarshal[int](c, out)
		if err != nil || got != n {
			t.Fatalf("got %v, %v, want %v", got, err, n)
		}
	}
}

func TestNumberFloatRoundTrip(t *testing.T) {
	c := Number[float64]()
	for _, f := range []float64{0, 1.5, -2.25, 1e10, -1e-10} {
		out, err := Marshal[float64](c, f)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unmarshal[float64](c, out)
		if err != nil || got != f {
			t.Fatalf("got %v, %v, want %v", got, err, f)
		}
	}
}

func TestNumberUintRoundTrip(t *testing.T) {
	c := Number[uint64]()
	out, err := Marshal[uint64](c, 18446744073709551615)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal[uint64](c, out)
	if err != nil || got != 18446744073709551615 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestNullableRoundTrip(t *testing.T) {
	c := Nullable(String())

	got, err := Unmarshal[*string](c, []byte("null"))
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}

	s := "hi"
	out, err := Marshal[*string](c, &s)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"hi"` {
		t.Fatalf("got %q", out)
	}
	got, err = Unmarshal[*string](c, []byte(`"hi"`))
	if err != nil || got == nil || *got != "hi" {
		t.Fatalf("got %v, %v", got, err)
	}
}

// Marshaling an uninitialized optional directly has no enclosing field to
// omit it from, so it is reported as an error rather than silently encoding
// "null" or panicking.
func TestMarshalUninitializedOptionalErrors(t *testing.T) {
	c := Nullable(String())
	_, err := Marshal[*string](c, nil)
	if err == nil {
		t.Fatal("expected error marshaling a nil optional directly")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Msg != msgUninitializedOpt {
		t.Fatalf("err = %v, want msgUninitializedOpt", err)
	}
}

func TestNullableShouldEncode(t *testing.T) {
	c := Nullable(String())
	if c.ShouldEncode(nil) {
		t.Fatal("nil optional should not encode")
	}
	s := "x"
	if !c.ShouldEncode(&s) {
		t.Fatal("non-nil optional should encode")
	}
}

func TestSliceRoundTrip(t *testing.T) {
	c := Slice(Number[int]())
	in := []int{1, 2, 3}
	out, err := Marshal[[]int](c, in)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[1,2,3]" {
		t.Fatalf("got %q", out)
	}
	got, err := Unmarshal[[]int](c, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestSliceEmpty(t *testing.T) {
	c := Slice(Number[int]())
	got, err := Unmarshal[[]int](c, []byte("[]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	out, err := Marshal[[]int](c, []int{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[]" {
		t.Fatalf("got %q", out)
	}
}

func TestMapRoundTripSortedKeys(t *testing.T) {
	c := Map(Number[int]())
	in := map[string]int{"b": 2, "a": 1, "c": 3}
	out, err := Marshal[map[string]int](c, in)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":1,"b":2,"c":3}` {
		t.Fatalf("got %q, want sorted-key encoding", out)
	}
	got, err := Unmarshal[map[string]int](c, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got["a"] != 1 || got["b"] != 2 || got["c"] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	c := Time()
	tm := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	out, err := Marshal[time.Time](c, tm)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal[time.Time](c, out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(tm) {
		t.Fatalf("got %v, want %v", got, tm)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	c := Duration()
	d := 90 * time.Second
	out, err := Marshal[time.Duration](c, d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "90000000000" {
		t.Fatalf("got %q", out)
	}
	got, err := Unmarshal[time.Duration](c, out)
	if err != nil || got != d {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestCodecTypeErrorOnKindMismatch(t *testing.T) {
	_, err := Unmarshal[int](Number[int](), []byte(`"not a number"`))
	if err == nil {
		t.Fatal("expected error")
	}
	cte, ok := err.(*CodecTypeError)
	if !ok {
		t.Fatalf("err = %T, want *CodecTypeError", err)
	}
	if cte.JSONKind != "string" || cte.GoType != "int" {
		t.Fatalf("got %+v", cte)
	}

	_, err = Unmarshal[bool](Bool(), []byte(`42`))
	if _, ok := err.(*CodecTypeError); !ok {
		t.Fatalf("err = %T, want *CodecTypeError", err)
	}

	_, err = Unmarshal[string](String(), []byte(`true`))
	if _, ok := err.(*CodecTypeError); !ok {
		t.Fatalf("err = %T, want *CodecTypeError", err)
	}
}

func TestDefaultCodecResolution(t *testing.T) {
	if _, err := Unmarshal[int](DefaultCodec[int](), []byte("42")); err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal[string](DefaultCodec[string](), []byte(`"x"`)); err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal[bool](DefaultCodec[bool](), []byte("true")); err != nil {
		t.Fatal(err)
	}
}
