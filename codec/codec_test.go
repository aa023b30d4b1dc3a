package codec

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type book struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type profile struct {
	DisplayName string
	UserID      int
	Nickname    *string
	Internal    string `json:"-"`
	secret      string
}

type timestamps struct {
	CreatedAt string
}

type article struct {
	timestamps
	Title string
	Tags  map[string]int
	Notes []string `json:",omitempty"`
}

type tree struct {
	Name     string  `json:"name"`
	Children []*tree `json:"children,omitempty"`
}

func TestEncode_Tags(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b := book{ID: 1, Title: "Dune", Author: "Herbert", CreatedAt: created}

	data, err := Encode(b, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"id":1,"title":"Dune","author":"Herbert","createdAt":"2024-01-02T03:04:05Z"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestEncode_CaseStrategies(t *testing.T) {
	p := profile{DisplayName: "ann", UserID: 7, Internal: "x", secret: "y"}

	tests := []struct {
		strategy CaseStrategy
		want     string
	}{
		{Preserve, `{"DisplayName":"ann","UserID":7,"Nickname":null}`},
		{CamelCase, `{"displayName":"ann","userID":7,"nickname":null}`},
		{SnakeCase, `{"display_name":"ann","user_id":7,"nickname":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			data, err := EncoderFor[profile](NewCache(), Options{Case: tt.strategy})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := data(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEncode_EmbeddedMapsAndOmitEmpty(t *testing.T) {
	a := article{
		timestamps: timestamps{CreatedAt: "now"},
		Title:      "Go",
		Tags:       map[string]int{"b": 2, "a": 1},
	}
	got, err := Encode(a, Options{Case: CamelCase})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"createdAt":"now","title":"Go","tags":{"a":1,"b":2}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRoundTrip_RecursiveType(t *testing.T) {
	in := tree{Name: "root", Children: []*tree{{Name: "a"}, {Name: "b", Children: []*tree{{Name: "c"}}}}}
	data, err := Encode(in, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Decode[tree](data, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Children) != 2 || out.Children[1].Children[0].Name != "c" {
		t.Errorf("expected nested children to survive, got %+v", out)
	}
}

func TestDecode_ReportsEveryMissingField(t *testing.T) {
	_, err := Decode[book]([]byte(`{"id": 1}`), Options{})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T (%v)", err, err)
	}
	want := []string{"$.title", "$.author", "$.createdAt"}
	if len(de.Issues) != len(want) {
		t.Fatalf("expected %d issues, got %d: %v", len(want), len(de.Issues), de)
	}
	for i, path := range want {
		if de.Issues[i].Path != path {
			t.Errorf("issue %d: expected path %s, got %s", i, path, de.Issues[i].Path)
		}
		if de.Issues[i].Message != "required field is missing" {
			t.Errorf("issue %d: expected missing-field message, got %q", i, de.Issues[i].Message)
		}
	}
	if !strings.Contains(err.Error(), "$.title: required field is missing") {
		t.Errorf("expected rendered issue in message, got %q", err.Error())
	}
}

func TestDecode_OptionalFields(t *testing.T) {
	b, err := Decode[book]([]byte(`{"id":1,"title":"t","author":"a","createdAt":"2024-01-02T03:04:05Z"}`), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.UpdatedAt != nil {
		t.Errorf("expected nil UpdatedAt, got %v", b.UpdatedAt)
	}

	p, err := Decode[profile]([]byte(`{"display_name":"ann","user_id":3,"nickname":null}`), Options{Case: SnakeCase})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DisplayName != "ann" || p.UserID != 3 || p.Nickname != nil {
		t.Errorf("expected decoded profile, got %+v", p)
	}
}

func TestDecode_TypeMismatches(t *testing.T) {
	type item struct {
		Count int      `json:"count"`
		Names []string `json:"names"`
		Flag  bool     `json:"flag"`
	}
	_, err := Decode[item]([]byte(`{"count":"abc","names":["x",2],"flag":null}`), Options{})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	want := map[string]string{
		"$.count":    `expected int, got string "abc"`,
		"$.names[1]": "expected string, got number 2",
		"$.flag":     "expected bool, got null",
	}
	if len(de.Issues) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), de.Issues)
	}
	for _, issue := range de.Issues {
		if want[issue.Path] != issue.Message {
			t.Errorf("%s: expected %q, got %q", issue.Path, want[issue.Path], issue.Message)
		}
	}
}

func TestDecode_EmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "$: empty body, expected object"},
		{"whitespace", "  \n", "$: empty body, expected object"},
		{"malformed", `{"id":`, "$: malformed JSON document"},
		{"wrong shape", `[1,2]`, "$: expected object, got array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[book]([]byte(tt.body), Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
			if got.ID != 0 || got.Title != "" {
				t.Errorf("expected zero value on failure, got %+v", got)
			}
		})
	}
}

func TestDecode_ArraysAndAny(t *testing.T) {
	pair, err := Decode[[2]int]([]byte(`[1,2]`), Options{})
	if err != nil || pair != [2]int{1, 2} {
		t.Errorf("expected [1 2], got %v (%v)", pair, err)
	}
	if _, err := Decode[[2]int]([]byte(`[1]`), Options{}); err == nil {
		t.Error("expected length mismatch error")
	}

	v, err := Decode[any]([]byte(`{"a":[1,"x"]}`), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", v)
	}
	if len(m["a"].([]any)) != 2 {
		t.Errorf("expected two elements, got %v", m["a"])
	}
}

func TestDerive_UnsupportedType(t *testing.T) {
	type withChan struct {
		Events chan int
	}
	_, err := EncoderFor[withChan](NewCache(), Options{})
	var ue *UnsupportedTypeError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnsupportedTypeError, got %v", err)
	}
	if !strings.HasSuffix(ue.Path, ".Events") {
		t.Errorf("expected path ending in .Events, got %s", ue.Path)
	}
}

type cents int64

func TestRegistry_Overrides(t *testing.T) {
	enc := func(c cents) ([]byte, error) {
		return []byte(strconv.Quote(strconv.FormatFloat(float64(c)/100, 'f', 2, 64))), nil
	}
	dec := func(data []byte) (cents, error) {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		return cents(math.Round(f * 100)), err
	}
	type invoice struct {
		Total cents `json:"total"`
	}

	reg := Register(nil, enc, dec)
	if reg.Len() != 1 {
		t.Fatalf("expected 1 coder, got %d", reg.Len())
	}
	extended := Register[bool](reg, nil, nil)
	if extended.ID() == reg.ID() || reg.Len() != 1 {
		t.Error("expected Register to return a new registry and leave the original untouched")
	}

	cache := NewCache()
	opts := Options{Extra: reg}
	e, err := EncoderFor[invoice](cache, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := e(invoice{Total: 1250})
	if string(data) != `{"total":"12.50"}` {
		t.Errorf("expected custom encoding, got %s", data)
	}

	d, err := DecoderFor[invoice](cache, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := d([]byte(`{"total":"3.10"}`))
	if err != nil || got.Total != 310 {
		t.Errorf("expected 310, got %d (%v)", got.Total, err)
	}

	plain, _ := Encode(invoice{Total: 5}, Options{})
	if string(plain) != `{"total":5}` {
		t.Errorf("expected derived encoding without registry, got %s", plain)
	}
}

func TestCache_DerivesOncePerKey(t *testing.T) {
	cache := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := DecoderFor[book](cache, Options{}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := cache.Derivations(); got != 1 {
		t.Errorf("expected 1 derivation, got %d", got)
	}
	if _, err := EncoderFor[book](cache, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cache.Derivations(); got != 1 {
		t.Errorf("expected encoder to share the cached codec, got %d derivations", got)
	}
	if _, err := DecoderFor[book](cache, Options{Case: SnakeCase}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cache.Len(); got != 2 {
		t.Errorf("expected 2 cached codecs, got %d", got)
	}

	cache.Reset()
	if cache.Len() != 0 || cache.Derivations() != 0 {
		t.Errorf("expected empty cache after Reset, got len=%d derivations=%d", cache.Len(), cache.Derivations())
	}
}
