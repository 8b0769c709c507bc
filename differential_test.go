package apexJSON_test

import (
	"encoding/json"
	"testing"

	apexJSON "github.com/blockspacer/spotify-json"
	"github.com/bytedance/sonic"
	goccy "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	segmentio "github.com/segmentio/encoding/json"
)

// Differential coverage against the same libraries the teacher's own
// benchmark suite measures itself against (apexJSON_test.go in the original
// repo): since this library's object codec is schema-driven rather than
// reflection/tag-driven, the comparison point is structural: decode the
// same document with each library into a struct and compare field-by-field,
// rather than asserting byte-identical output (field order and number
// formatting legitimately differ across encoders).

type diffAddress struct {
	Street  string
	City    string
	Country string
}

func addressCodec() *apexJSON.ObjectCodec[diffAddress] {
	o := apexJSON.Object[diffAddress]()
	apexJSON.Required(o, "street", func(a *diffAddress) *string { return &a.Street }, apexJSON.String())
	apexJSON.Required(o, "city", func(a *diffAddress) *string { return &a.City }, apexJSON.String())
	apexJSON.Required(o, "country", func(a *diffAddress) *string { return &a.Country }, apexJSON.String())
	return o
}

// jsonAddress mirrors diffAddress with encoding/json-style tags for the
// reference libraries under comparison.
type jsonAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func TestDifferentialAddressDecode(t *testing.T) {
	doc := []byte(`{"street":"1 Main St","city":"Anytown","country":"USA"}`)

	got, err := apexJSON.Unmarshal[diffAddress](addressCodec(), doc)
	if err != nil {
		t.Fatal(err)
	}

	var stdRef jsonAddress
	if err := json.Unmarshal(doc, &stdRef); err != nil {
		t.Fatal(err)
	}
	if got.Street != stdRef.Street || got.City != stdRef.City || got.Country != stdRef.Country {
		t.Fatalf("apexJSON result %+v disagrees with encoding/json result %+v", got, stdRef)
	}

	var sonicRef jsonAddress
	if err := sonic.Unmarshal(doc, &sonicRef); err != nil {
		t.Fatal(err)
	}
	if got.Street != sonicRef.Street {
		t.Fatalf("disagrees with sonic: %+v vs %+v", got, sonicRef)
	}

	var goccyRef jsonAddress
	if err := goccy.Unmarshal(doc, &goccyRef); err != nil {
		t.Fatal(err)
	}
	if got.City != goccyRef.City {
		t.Fatalf("disagrees with goccy: %+v vs %+v", got, goccyRef)
	}

	var jsoniterRef jsonAddress
	if err := jsoniter.Unmarshal(doc, &jsoniterRef); err != nil {
		t.Fatal(err)
	}
	if got.Country != jsoniterRef.Country {
		t.Fatalf("disagrees with jsoniter: %+v vs %+v", got, jsoniterRef)
	}

	var segmentioRef jsonAddress
	if err := segmentio.Unmarshal(doc, &segmentioRef); err != nil {
		t.Fatal(err)
	}
	if got.Street != segmentioRef.Street {
		t.Fatalf("disagrees with segmentio: %+v vs %+v", got, segmentioRef)
	}
}

func TestDifferentialAddressEncodeParsesBack(t *testing.T) {
	in := diffAddress{Street: "22 Side Ave", City: "Smallville", Country: "USA"}
	out, err := apexJSON.Marshal[diffAddress](addressCodec(), in)
	if err != nil {
		t.Fatal(err)
	}

	var viaStd jsonAddress
	if err := json.Unmarshal(out, &viaStd); err != nil {
		t.Fatalf("encoding/json could not parse our output: %v", err)
	}
	if viaStd.Street != in.Street || viaStd.City != in.City || viaStd.Country != in.Country {
		t.Fatalf("got %+v, want %+v", viaStd, in)
	}

	var viaSonic jsonAddress
	if err := sonic.Unmarshal(out, &viaSonic); err != nil {
		t.Fatalf("sonic could not parse our output: %v", err)
	}
	if viaSonic != viaStd {
		t.Fatalf("sonic disagrees with encoding/json: %+v vs %+v", viaSonic, viaStd)
	}
}

func TestDifferentialNumberFormatting(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159, 1e20, -1e-20}
	c := apexJSON.Number[float64]()
	for _, v := range values {
		out, err := apexJSON.Marshal[float64](c, v)
		if err != nil {
			t.Fatalf("%v: marshal failed: %v", v, err)
		}

		var stdRef float64
		if err := json.Unmarshal(out, &stdRef); err != nil {
			t.Fatalf("%v: encoding/json could not parse %q: %v", v, out, err)
		}
		if stdRef != v {
			t.Fatalf("%v: round trip via encoding/json gave %v", v, stdRef)
		}

		var sonicRef float64
		if err := sonic.Unmarshal(out, &sonicRef); err != nil {
			t.Fatalf("%v: sonic could not parse %q: %v", v, out, err)
		}
		if sonicRef != v {
			t.Fatalf("%v: round trip via sonic gave %v", v, sonicRef)
		}
	}
}
