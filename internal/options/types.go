package options

import (
	"fmt"
	"math"
	"reflect"
)

// Type is a named predicate over option values
type Type struct {
	name  string
	match func(value interface{}) bool
}

func (t Type) String() string {
	return t.name
}

// Matches returns true if value is of this type
func (t Type) Matches(value interface{}) bool {
	return t.match(value)
}

var (
	String = Type{name: "string", match: func(value interface{}) bool {
		_, ok := value.(string)
		return ok
	}}
	Bool = Type{name: "bool", match: func(value interface{}) bool {
		_, ok := value.(bool)
		return ok
	}}
	// Int matches all integer kinds and floats without a fractional part, as decoded from JSON or YAML
	Int = Type{name: "int", match: func(value interface{}) bool {
		_, ok := asInt(value)
		return ok
	}}
	// Port matches integers in 1..65535
	Port = Type{name: "port", match: func(value interface{}) bool {
		i, ok := asInt(value)
		return ok && i >= 1 && i <= math.MaxUint16
	}}
	Float = Type{name: "float", match: func(value interface{}) bool {
		switch value.(type) {
		case float32, float64:
			return true
		}
		return false
	}}
	Mapping = Type{name: "mapping", match: func(value interface{}) bool {
		v := reflect.ValueOf(value)
		return v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String
	}}
	Sequence = Type{name: "sequence", match: func(value interface{}) bool {
		v := reflect.ValueOf(value)
		return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
	}}
)

// TypeOf returns a Type matching values assignable to T. T may be an interface.
func TypeOf[T any]() Type {
	return Type{
		name: reflect.TypeOf((*T)(nil)).Elem().String(),
		match: func(value interface{}) bool {
			_, ok := value.(T)
			return ok
		},
	}
}

// TypeName is the name used in error messages for the runtime type of value
func TypeName(value interface{}) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

func asInt(value interface{}) (int, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u <= math.MaxInt {
			return int(u), true
		}
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		// float64(math.MaxInt) rounds up to 2^63, which is already out of range
		if f == math.Trunc(f) && f >= math.MinInt && f < math.MaxInt {
			return int(f), true
		}
	}
	return 0, false
}
