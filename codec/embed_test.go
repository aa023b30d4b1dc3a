package codec

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

type base struct {
	ID int `json:"id"`
}

type Kind struct {
	Kind string `json:"kind"`
}

type item struct {
	base
	*Kind
	Name string `json:"name"`
}

type hiddenPointer struct {
	*base
	Name string `json:"name"`
}

func TestEmbedded_FlattenedLikeEncodingJSON(t *testing.T) {
	tests := []struct {
		name string
		in   item
	}{
		{"pointer set", item{base{ID: 7}, &Kind{Kind: "k"}, "n"}},
		{"pointer nil", item{base: base{ID: 1}, Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Encode(tt.in, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(want) {
				t.Errorf("expected %s, got %s", want, got)
			}

			out, err := Decode[item](want, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(out, tt.in) {
				t.Errorf("expected %+v, got %+v", tt.in, out)
			}
		})
	}
}

func TestEmbedded_UnexportedPointerCannotBeAllocated(t *testing.T) {
	got, err := Encode(hiddenPointer{base: &base{ID: 3}, Name: "a"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"id":3,"name":"a"}` {
		t.Errorf("expected promoted id, got %s", got)
	}

	_, err = Decode[hiddenPointer]([]byte(`{"id":3,"name":"a"}`), Options{})
	if err == nil || !strings.Contains(err.Error(), "$.id: cannot set embedded pointer to unexported struct codec.base") {
		t.Errorf("expected allocation issue at $.id, got %v", err)
	}
}

type leftSide struct {
	Name   string
	Shared string
}

type rightSide struct {
	Shared string
	Picked string `json:"pick"`
}

type conflicted struct {
	leftSide
	rightSide
	Name string
}

type taggedV struct {
	V string `json:"v"`
}

type untaggedV struct {
	V string
}

type tieV struct {
	W string `json:"v"`
}

func TestEmbedded_NameConflicts(t *testing.T) {
	in := conflicted{leftSide{"inner", "s1"}, rightSide{"s2", "t"}, "outer"}
	want, _ := json.Marshal(in)
	got, err := Encode(in, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) || string(got) != `{"pick":"t","Name":"outer"}` {
		t.Errorf("expected %s, got %s", want, got)
	}

	type taggedWins struct {
		taggedV
		untaggedV
	}
	got, _ = Encode(taggedWins{taggedV{"tag"}, untaggedV{"plain"}}, Options{Case: CamelCase})
	if string(got) != `{"v":"tag"}` {
		t.Errorf("expected tagged field to win, got %s", got)
	}

	type tie struct {
		taggedV
		tieV
	}
	got, _ = Encode(tie{taggedV{"a"}, tieV{"b"}}, Options{})
	if string(got) != `{}` {
		t.Errorf("expected ambiguous name to be dropped, got %s", got)
	}
}

type counters struct {
	Hits  int64   `json:"h,string"`
	Ratio float64 `json:"r,string"`
	On    bool    `json:"on,string"`
	Label string  `json:"label,string"`
	Limit *int    `json:"limit,string,omitempty"`
}

func TestQuotedScalars(t *testing.T) {
	limit := 5
	in := counters{Hits: 42, Ratio: 0.5, On: true, Label: "x", Limit: &limit}
	want, _ := json.Marshal(in)

	got, err := Encode(in, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	out, err := Decode[counters](want, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("expected %+v, got %+v", in, out)
	}

	_, err = Decode[counters]([]byte(`{"h":42,"r":"0.5","on":"true","label":"\"x\""}`), Options{})
	if err == nil || err.Error() != `$.h: expected int64 in a string, got number 42` {
		t.Errorf("expected quoted-number issue, got %v", err)
	}
}
