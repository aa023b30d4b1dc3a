package codec

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

type nodeKind int

const (
	leafNode nodeKind = iota
	anyNode
	structNode
	pointerNode
	sliceNode
	arrayNode
	mapNode
	customNode
)

// node is the derived shape of one Go type. Nodes of recursive types point
// back at themselves, so a node graph may contain cycles.
type node struct {
	kind nodeKind
	typ  reflect.Type

	// basic marks leaves decoded by kind rather than by a Marshaler.
	basic bool

	elem   *node
	fields []field

	custom   coder
	fallback *node
}

type field struct {
	name      string
	key       []byte
	index     []int
	omitEmpty bool
	optional  bool
	// quoted carries a scalar inside a JSON string (`json:",string"`).
	quoted bool
	node   *node
}

var (
	jsonMarshalerType   = reflect.TypeFor[gojson.Marshaler]()
	jsonUnmarshalerType = reflect.TypeFor[gojson.Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func definesJSON(t reflect.Type) bool {
	for _, c := range []reflect.Type{t, reflect.PointerTo(t)} {
		if c.Implements(jsonMarshalerType) || c.Implements(jsonUnmarshalerType) ||
			c.Implements(textMarshalerType) || c.Implements(textUnmarshalerType) {
			return true
		}
	}
	return false
}

type deriver struct {
	opts Options
	seen map[reflect.Type]*node
}

func derive(t reflect.Type, opts Options) (*node, error) {
	d := &deriver{opts: opts, seen: make(map[reflect.Type]*node)}
	return d.derive(t, t.String())
}

func (d *deriver) derive(t reflect.Type, path string) (*node, error) {
	if n, ok := d.seen[t]; ok {
		return n, nil
	}
	n := &node{typ: t}
	d.seen[t] = n

	c, ok := d.opts.Extra.lookup(t)
	if !ok {
		return n, d.fill(n, t, path)
	}
	n.kind = customNode
	n.custom = c
	if c.encode == nil || c.decode == nil {
		n.fallback = &node{typ: t}
		if err := d.fill(n.fallback, t, path); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (d *deriver) fill(n *node, t reflect.Type, path string) error {
	if t.Kind() == reflect.Pointer {
		elem, err := d.derive(t.Elem(), path)
		if err != nil {
			return err
		}
		n.kind = pointerNode
		n.elem = elem
		return nil
	}
	if t.Kind() == reflect.Interface {
		if t.NumMethod() > 0 {
			return &UnsupportedTypeError{Type: t, Path: path}
		}
		n.kind = anyNode
		return nil
	}
	if definesJSON(t) {
		n.kind = leafNode
		return nil
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		n.kind = leafNode
		n.basic = true
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			n.kind = leafNode
			n.basic = true
			return nil
		}
		elem, err := d.derive(t.Elem(), path+"[]")
		if err != nil {
			return err
		}
		n.kind = sliceNode
		n.elem = elem
		return nil
	case reflect.Array:
		elem, err := d.derive(t.Elem(), path+"[]")
		if err != nil {
			return err
		}
		n.kind = arrayNode
		n.elem = elem
		return nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: t, Path: path}
		}
		elem, err := d.derive(t.Elem(), path+"{}")
		if err != nil {
			return err
		}
		n.kind = mapNode
		n.elem = elem
		return nil
	case reflect.Struct:
		n.kind = structNode
		return d.fillFields(n, t, path)
	default:
		return &UnsupportedTypeError{Type: t, Path: path}
	}
}

// fillFields lays out the JSON members of struct t. Embedded structs and
// pointers to structs are flattened, exported or not; name conflicts are
// settled as encoding/json does: the shallowest field wins, a tagged field
// beats untagged ones at the same depth, and remaining ties drop the name.
func (d *deriver) fillFields(n *node, t reflect.Type, path string) error {
	var all []candidate
	if err := d.collect(&all, t, nil, path, false, map[reflect.Type]bool{t: true}); err != nil {
		return err
	}
	n.fields = dominantFields(all)
	return nil
}

type candidate struct {
	field
	depth  int
	tagged bool
}

func (d *deriver) collect(out *[]candidate, t reflect.Type, parent []int, path string, viaPointer bool, chain map[reflect.Type]bool) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		tagName, opts, _ := strings.Cut(tag, ",")
		index := append(append([]int(nil), parent...), i)

		if sf.Anonymous {
			ft := sf.Type
			isPtr := ft.Kind() == reflect.Pointer
			if isPtr {
				ft = ft.Elem()
			}
			if tagName == "" && ft.Kind() == reflect.Struct && d.flattens(ft) {
				if chain[ft] {
					continue
				}
				chain[ft] = true
				err := d.collect(out, ft, index, path+"."+sf.Name, viaPointer || isPtr, chain)
				delete(chain, ft)
				if err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		name := tagName
		if name == "" {
			name = d.opts.Case.FieldName(sf.Name)
		}
		child, err := d.derive(sf.Type, path+"."+sf.Name)
		if err != nil {
			return err
		}
		omitEmpty := hasOption(opts, "omitempty")
		*out = append(*out, candidate{
			field: field{
				name:      name,
				key:       []byte(strconv.Quote(name) + ":"),
				index:     index,
				omitEmpty: omitEmpty,
				optional:  omitEmpty || viaPointer || sf.Type.Kind() == reflect.Pointer,
				quoted:    hasOption(opts, "string") && quotable(sf.Type),
				node:      child,
			},
			depth:  len(index),
			tagged: tagName != "",
		})
	}
	return nil
}

// flattens reports whether an embedded struct type contributes its fields
// rather than appearing as one member.
func (d *deriver) flattens(t reflect.Type) bool {
	_, custom := d.opts.Extra.lookup(t)
	return !custom && !definesJSON(t)
}

func dominantFields(all []candidate) []field {
	byName := make(map[string][]int, len(all))
	for i, c := range all {
		byName[c.name] = append(byName[c.name], i)
	}
	keep := make([]bool, len(all))
	for _, idx := range byName {
		if len(idx) == 1 {
			keep[idx[0]] = true
			continue
		}
		minDepth := all[idx[0]].depth
		for _, i := range idx[1:] {
			minDepth = min(minDepth, all[i].depth)
		}
		var shallow, tagged []int
		for _, i := range idx {
			if all[i].depth != minDepth {
				continue
			}
			shallow = append(shallow, i)
			if all[i].tagged {
				tagged = append(tagged, i)
			}
		}
		switch {
		case len(shallow) == 1:
			keep[shallow[0]] = true
		case len(tagged) == 1:
			keep[tagged[0]] = true
		}
	}
	var fields []field
	for i, c := range all {
		if keep[i] {
			fields = append(fields, c.field)
		}
	}
	return fields
}

// quotable reports whether the ",string" option applies to t.
func quotable(t reflect.Type) bool {
	if t.Name() == "" && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return !definesJSON(t)
	}
	return false
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// expected names the JSON shape a node accepts, for issue messages.
func (n *node) expected() string {
	switch n.kind {
	case structNode, mapNode:
		return "object"
	case sliceNode, arrayNode:
		return "array"
	case anyNode:
		return "any value"
	case pointerNode:
		return n.elem.expected()
	}
	if n.basic && n.typ.Kind() == reflect.Slice {
		return "base64 string"
	}
	return n.typ.String()
}
