// Package dict gives typed access to the loosely typed maps that provider
// configuration is decoded into.
package dict

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Dicter is the read interface a provider is configured through.
type Dicter interface {
	String(key string, def *string) (string, error)
	StringSlice(key string) ([]string, error)
	Bool(key string, def *bool) (bool, error)
	Int(key string, def *int) (int, error)
	Uint(key string, def *uint) (uint, error)
	Float(key string, def *float64) (float64, error)
	Interface(key string) (v interface{}, ok bool)
	Keys() []string
}

// ErrKeyRequired is returned when a key without a default is missing.
type ErrKeyRequired string

func (err ErrKeyRequired) Error() string {
	return fmt.Sprintf("%v is required", string(err))
}

// ErrKeyType is returned when the value of a key can not be converted.
type ErrKeyType struct {
	Key   string
	Value interface{}
	T     reflect.Type
}

func (err ErrKeyType) Error() string {
	return fmt.Sprintf("%v value needs to be of type %v. Value is of type %T", err.Key, err.T, err.Value)
}

// Dict is a Dicter over a plain map, as produced by the TOML and YAML
// decoders.
type Dict map[string]interface{}

func (d Dict) String(key string, def *string) (string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		if def == nil {
			return "", ErrKeyRequired(key)
		}
		return *def, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(s)}
	}
	return s, nil
}

// StringSlice returns nil, not an error, for a missing key.
func (d Dict) StringSlice(key string) ([]string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, len(val))
		for i := range val {
			s, ok := val[i].(string)
			if !ok {
				return nil, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(out)}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf([]string{})}
	}
}

func (d Dict) Bool(key string, def *bool) (bool, error) {
	v, ok := d[key]
	if !ok || v == nil {
		if def == nil {
			return false, ErrKeyRequired(key)
		}
		return *def, nil
	}

	b, ok := v.(bool)
	if !ok {
		return false, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(b)}
	}
	return b, nil
}

// toInt64 accepts the integer types the TOML (int64) and YAML (int) decoders
// produce, and floats without a fractional part.
func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return int64(val), val <= math.MaxInt64
	case uint32:
		return int64(val), true
	case uint64:
		return int64(val), val <= math.MaxInt64
	case float64:
		return int64(val), val == math.Trunc(val)
	default:
		return 0, false
	}
}

func (d Dict) Int(key string, def *int) (int, error) {
	v, ok := d[key]
	if !ok || v == nil {
		if def == nil {
			return 0, ErrKeyRequired(key)
		}
		return *def, nil
	}

	i, ok := toInt64(v)
	if !ok {
		return 0, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(int(0))}
	}
	return int(i), nil
}

func (d Dict) Uint(key string, def *uint) (uint, error) {
	v, ok := d[key]
	if !ok || v == nil {
		if def == nil {
			return 0, ErrKeyRequired(key)
		}
		return *def, nil
	}

	i, ok := toInt64(v)
	if !ok || i < 0 {
		return 0, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(uint(0))}
	}
	return uint(i), nil
}

func (d Dict) Float(key string, def *float64) (float64, error) {
	v, ok := d[key]
	if !ok || v == nil {
		if def == nil {
			return 0, ErrKeyRequired(key)
		}
		return *def, nil
	}

	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), nil
	}
	return 0, ErrKeyType{Key: key, Value: v, T: reflect.TypeOf(float64(0))}
}

func (d Dict) Interface(key string) (v interface{}, ok bool) {
	v, ok = d[key]
	return v, ok
}

// Keys returns the keys of the dict in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
