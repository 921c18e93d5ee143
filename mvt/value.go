package mvt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"
)

// ValueType tags the populated case of a Value.
type ValueType uint8

const (
	// ValueUnknown marks a value table entry none of whose variants was set.
	ValueUnknown ValueType = iota
	ValueString
	ValueInteger
	ValueDecimal
	ValueBool
)

func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "string"
	case ValueInteger:
		return "integer"
	case ValueDecimal:
		return "decimal"
	case ValueBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a resolved attribute value. Exactly the field matching Type is
// meaningful. All integer encodings are normalized to Int and both float
// widths to Float.
type Value struct {
	Type  ValueType
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

func StringValue(s string) Value   { return Value{Type: ValueString, Str: s} }
func IntegerValue(i int64) Value   { return Value{Type: ValueInteger, Int: i} }
func DecimalValue(f float64) Value { return Value{Type: ValueDecimal, Float: f} }
func BoolValue(b bool) Value       { return Value{Type: ValueBool, Bool: b} }

// Interface returns the Go scalar held by v, or nil for an unknown value.
func (v Value) Interface() interface{} {
	switch v.Type {
	case ValueString:
		return v.Str
	case ValueInteger:
		return v.Int
	case ValueDecimal:
		return v.Float
	case ValueBool:
		return v.Bool
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Type {
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueInteger:
		return strconv.FormatInt(v.Int, 10)
	case ValueDecimal:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "<unknown>"
	}
}

// MarshalJSON writes the scalar itself. Unknown values and non finite
// decimals, which JSON cannot carry, are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Type == ValueDecimal && (math.IsNaN(v.Float) || math.IsInf(v.Float, 0)) {
		return []byte("null"), nil
	}
	return json.Marshal(v.Interface())
}

// variant is the populated case of a raw value table entry.
type variant uint8

const (
	variantNone variant = iota
	variantInt
	variantSint
	variantUint
	variantString
	variantBool
	variantFloat
	variantDouble
)

// populated returns the first set variant in resolution priority order:
// int, sint, uint, string, bool, float, double.
func populated(v *vectorTile.Tile_Value) variant {
	switch {
	case v == nil:
		return variantNone
	case v.IntValue != nil:
		return variantInt
	case v.SintValue != nil:
		return variantSint
	case v.UintValue != nil:
		return variantUint
	case v.StringValue != nil:
		return variantString
	case v.BoolValue != nil:
		return variantBool
	case v.FloatValue != nil:
		return variantFloat
	case v.DoubleValue != nil:
		return variantDouble
	default:
		return variantNone
	}
}

// ResolveValue converts a raw value table entry into a Value. The returned
// FaultKind is FaultNone unless the entry was empty (FaultUnresolvedValue,
// with an unknown Value) or an unsigned value overflowed int64
// (FaultValueOverflow, with the two's complement value).
func ResolveValue(raw *vectorTile.Tile_Value) (Value, FaultKind) {
	switch vr := populated(raw); vr {
	case variantInt:
		return IntegerValue(*raw.IntValue), FaultNone
	case variantSint:
		return IntegerValue(*raw.SintValue), FaultNone
	case variantUint:
		u := *raw.UintValue
		if u > math.MaxInt64 {
			return IntegerValue(int64(u)), FaultValueOverflow
		}
		return IntegerValue(int64(u)), FaultNone
	case variantString:
		return StringValue(*raw.StringValue), FaultNone
	case variantBool:
		return BoolValue(*raw.BoolValue), FaultNone
	case variantFloat:
		return DecimalValue(float64(*raw.FloatValue)), FaultNone
	case variantDouble:
		return DecimalValue(*raw.DoubleValue), FaultNone
	case variantNone:
		return Value{Type: ValueUnknown}, FaultUnresolvedValue
	default:
		panic(fmt.Sprintf("mvt: unhandled value variant %d", vr))
	}
}
