package scene

import "github.com/rive-app/rivecore/registry"

// ValueTag discriminates a Value's wire primitive.
type ValueTag uint8

const (
	TagUint ValueTag = iota
	TagBool
	TagFloat
	TagString
	TagColor
)

// Value is a tagged property value. The tag determines the wire
// primitive the encoder uses; it must be compatible with the
// property's registry-declared backing type (uint/bool share the
// uint_or_bool family, float maps to float, string to string, color
// to color).
type Value struct {
	Tag    ValueTag
	Uint   uint64
	Bool   bool
	Float  float32
	String string
	Color  uint32 // 32-bit ARGB
}

func Uint(v uint64) Value    { return Value{Tag: TagUint, Uint: v} }
func Bool(v bool) Value      { return Value{Tag: TagBool, Bool: v} }
func Float(v float32) Value  { return Value{Tag: TagFloat, Float: v} }
func String(v string) Value  { return Value{Tag: TagString, String: v} }
func Color(v uint32) Value   { return Value{Tag: TagColor, Color: v} }

// Equal reports whether two values are the wire-equivalent (used by
// default-elision comparisons and round-trip tests).
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		// uint/bool are wire-compatible: a registry default declared
		// as a Go bool compares equal to the 0/1 uint encoding and
		// vice versa.
		if (v.Tag == TagUint && o.Tag == TagBool) || (v.Tag == TagBool && o.Tag == TagUint) {
			return v.AsUint() == o.AsUint()
		}
		return false
	}
	switch v.Tag {
	case TagUint:
		return v.Uint == o.Uint
	case TagBool:
		return v.Bool == o.Bool
	case TagFloat:
		return v.Float == o.Float
	case TagString:
		return v.String == o.String
	case TagColor:
		return v.Color == o.Color
	}
	return false
}

// AsUint returns the 0/1 or literal uint64 representation of a
// uint-or-bool-family value, regardless of whether it was constructed
// as Uint or Bool.
func (v Value) AsUint() uint64 {
	if v.Tag == TagBool {
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.Uint
}

// Prop is a single (property_key, value) pair on an Object.
type Prop struct {
	Key   registry.PropertyKey
	Value Value
}

// Object is a tuple (type_key, ordered list of (property_key, value)).
// Property order is significant only where registry.EmissionOrder
// mandates it for the object's class.
type Object struct {
	Type  registry.TypeKey
	Props []Prop

	// Name is carried out-of-band for builder-time name resolution and
	// diagnostics; it duplicates PropName when that property is also
	// emitted (Artboard, named nodes, ...).
	Name string
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key registry.PropertyKey) (Value, bool) {
	for _, p := range o.Props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Set overwrites or appends a property, preserving first-seen order
// for appends.
func (o *Object) Set(key registry.PropertyKey, v Value) {
	for i := range o.Props {
		if o.Props[i].Key == key {
			o.Props[i].Value = v
			return
		}
	}
	o.Props = append(o.Props, Prop{Key: key, Value: v})
}

// ObjectList is the ordered, flat object graph the builder produces
// and the encoder consumes.
type ObjectList []Object
