package codec

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
	"strings"

	gojson "github.com/goccy/go-json"
)

func (n *node) encode(buf *bytes.Buffer, v reflect.Value) error {
	switch n.kind {
	case customNode:
		if n.custom.encode == nil {
			return n.fallback.encode(buf, v)
		}
		b, err := n.custom.encode(v)
		if err != nil {
			return fmt.Errorf("codec: encoding %s: %w", n.typ, err)
		}
		buf.Write(b)
		return nil

	case leafNode:
		var target any
		if v.CanAddr() {
			target = v.Addr().Interface()
		} else {
			target = v.Interface()
		}
		b, err := gojson.Marshal(target)
		if err != nil {
			return fmt.Errorf("codec: encoding %s: %w", n.typ, err)
		}
		buf.Write(b)
		return nil

	case anyNode:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		b, err := gojson.Marshal(v.Interface())
		if err != nil {
			return fmt.Errorf("codec: encoding %s: %w", n.typ, err)
		}
		buf.Write(b)
		return nil

	case pointerNode:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return n.elem.encode(buf, v.Elem())

	case sliceNode:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return n.encodeList(buf, v)

	case arrayNode:
		return n.encodeList(buf, v)

	case mapNode:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := gojson.Marshal(k.String())
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := n.elem.encode(buf, v.MapIndex(k)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case structNode:
		buf.WriteByte('{')
		first := true
		for i := range n.fields {
			f := &n.fields[i]
			fv, ok := fieldByIndex(v, f.index)
			if !ok || (f.omitEmpty && isEmptyValue(fv)) {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.Write(f.key)
			if err := f.encodeValue(buf, fv); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	return fmt.Errorf("codec: no encoder for %s", n.typ)
}

func (f *field) encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	if !f.quoted {
		return f.node.encode(buf, v)
	}
	var inner bytes.Buffer
	if err := f.node.encode(&inner, v); err != nil {
		return err
	}
	if inner.String() == "null" {
		buf.WriteString("null")
		return nil
	}
	b, err := gojson.Marshal(inner.String())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// fieldByIndex follows index through embedded pointers. ok is false when
// one of them is nil.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func (n *node) encodeList(buf *bytes.Buffer, v reflect.Value) error {
	buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := n.elem.encode(buf, v.Index(i)); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
