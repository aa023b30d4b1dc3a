package codec

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
)

const maxDescribed = 32

type decodeState struct {
	issues []Issue
}

func (s *decodeState) addf(path, format string, args ...any) {
	s.issues = append(s.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (s *decodeState) mismatch(path string, n *node, raw []byte) {
	s.addf(path, "expected %s, got %s", n.expected(), describe(raw))
}

// decodeDocument decodes data into v, which must be addressable.
func (n *node) decodeDocument(data []byte, v reflect.Value) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &DecodeError{Issues: []Issue{{Path: "$", Message: "empty body, expected " + n.expected()}}}
	}
	if !gojson.Valid(trimmed) {
		return &DecodeError{Issues: []Issue{{Path: "$", Message: "malformed JSON document"}}}
	}
	s := &decodeState{}
	n.decode(s, "$", trimmed, v)
	if len(s.issues) > 0 {
		return &DecodeError{Issues: s.issues}
	}
	return nil
}

func (n *node) decode(s *decodeState, path string, raw []byte, v reflect.Value) {
	raw = bytes.TrimSpace(raw)
	isNull := bytes.Equal(raw, []byte("null"))

	switch n.kind {
	case customNode:
		if n.custom.decode == nil {
			n.fallback.decode(s, path, raw, v)
			return
		}
		if err := n.custom.decode(raw, v); err != nil {
			s.addf(path, "%v", err)
		}

	case anyNode:
		if isNull {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		var out any
		if err := gojson.Unmarshal(raw, &out); err != nil {
			s.addf(path, "%v", err)
			return
		}
		v.Set(reflect.ValueOf(&out).Elem())

	case pointerNode:
		if isNull {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		target := reflect.New(n.typ.Elem())
		n.elem.decode(s, path, raw, target.Elem())
		v.Set(target)

	case leafNode:
		n.decodeLeaf(s, path, raw, isNull, v)

	case sliceNode:
		if isNull {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		items, ok := splitArray(raw)
		if !ok {
			s.mismatch(path, n, raw)
			return
		}
		out := reflect.MakeSlice(n.typ, len(items), len(items))
		for i, item := range items {
			n.elem.decode(s, path+"["+strconv.Itoa(i)+"]", item, out.Index(i))
		}
		v.Set(out)

	case arrayNode:
		items, ok := splitArray(raw)
		if !ok {
			s.mismatch(path, n, raw)
			return
		}
		if len(items) != n.typ.Len() {
			s.addf(path, "expected array of length %d, got %d elements", n.typ.Len(), len(items))
			return
		}
		for i, item := range items {
			n.elem.decode(s, path+"["+strconv.Itoa(i)+"]", item, v.Index(i))
		}

	case mapNode:
		if isNull {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		members, ok := splitObject(raw)
		if !ok {
			s.mismatch(path, n, raw)
			return
		}
		keys := make([]string, 0, len(members))
		for k := range members {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := reflect.MakeMapWithSize(n.typ, len(members))
		for _, k := range keys {
			elem := reflect.New(n.typ.Elem()).Elem()
			n.elem.decode(s, path+"."+k, members[k], elem)
			out.SetMapIndex(reflect.ValueOf(k).Convert(n.typ.Key()), elem)
		}
		v.Set(out)

	case structNode:
		members, ok := splitObject(raw)
		if !ok {
			s.mismatch(path, n, raw)
			return
		}
		for i := range n.fields {
			f := &n.fields[i]
			member, present := members[f.name]
			if !present {
				if !f.optional {
					s.addf(path+"."+f.name, "required field is missing")
				}
				continue
			}
			fv, err := allocFieldByIndex(v, f.index)
			if err != nil {
				s.addf(path+"."+f.name, "%v", err)
				continue
			}
			f.decodeValue(s, path+"."+f.name, member, fv)
		}
	}
}

func (f *field) decodeValue(s *decodeState, path string, raw []byte, v reflect.Value) {
	raw = bytes.TrimSpace(raw)
	if !f.quoted || bytes.Equal(raw, []byte("null")) {
		f.node.decode(s, path, raw, v)
		return
	}
	var inner string
	if len(raw) == 0 || raw[0] != '"' || gojson.Unmarshal(raw, &inner) != nil {
		s.addf(path, "expected %s in a string, got %s", f.node.expected(), describe(raw))
		return
	}
	if !gojson.Valid([]byte(inner)) {
		s.addf(path, "expected %s in a string, got string %s", f.node.expected(), truncate(strconv.Quote(inner)))
		return
	}
	f.node.decode(s, path, []byte(inner), v)
}

// allocFieldByIndex follows index through embedded pointers, allocating nil
// ones. Pointers to unexported embedded structs cannot be allocated.
func allocFieldByIndex(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot set embedded pointer to unexported struct %s", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

func (n *node) decodeLeaf(s *decodeState, path string, raw []byte, isNull bool, v reflect.Value) {
	if isNull {
		if n.basic && n.typ.Kind() == reflect.Slice {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		s.mismatch(path, n, raw)
		return
	}
	if n.basic && !leafAccepts(n.typ.Kind(), raw[0]) {
		s.mismatch(path, n, raw)
		return
	}
	if err := gojson.Unmarshal(raw, v.Addr().Interface()); err != nil {
		s.addf(path, "cannot decode %s into %s: %v", describe(raw), n.typ, err)
	}
}

func leafAccepts(k reflect.Kind, first byte) bool {
	switch k {
	case reflect.Bool:
		return first == 't' || first == 'f'
	case reflect.String, reflect.Slice:
		return first == '"'
	default:
		return first == '-' || (first >= '0' && first <= '9')
	}
}

func splitArray(raw []byte) ([]gojson.RawMessage, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []gojson.RawMessage
	if err := gojson.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func splitObject(raw []byte) (map[string]gojson.RawMessage, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var members map[string]gojson.RawMessage
	if err := gojson.Unmarshal(raw, &members); err != nil {
		return nil, false
	}
	return members, true
}

// describe names a raw JSON value for issue messages: `string "abc"`, `number 12`.
func describe(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean " + string(raw)
	case '"':
		return "string " + truncate(string(raw))
	default:
		return "number " + truncate(string(raw))
	}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxDescribed {
		return s
	}
	return string([]rune(s)[:maxDescribed]) + "..."
}
