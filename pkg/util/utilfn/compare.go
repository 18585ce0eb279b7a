// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilfn

import (
	"math"
	"reflect"
)

// PropValEqual is the "did this prop change" test used when diffing property sets.
// It is a shallow equal: comparable values use ==, numbers of different types are
// compared as float64, and funcs, slices and maps compare by identity.
func PropValEqual(a, b any) bool {
	aNil := IsNilValue(a)
	bNil := IsNilValue(b)
	if aNil || bNil {
		return aNil && bNil
	}
	typeA := reflect.TypeOf(a)
	typeB := reflect.TypeOf(b)
	if typeA == typeB && typeA.Comparable() {
		return a == b
	}
	if IsNumericType(a) && IsNumericType(b) {
		return CompareAsFloat64(a, b)
	}
	if typeA != typeB {
		return false
	}
	valA := reflect.ValueOf(a)
	valB := reflect.ValueOf(b)
	switch valA.Kind() {
	case reflect.Func:
		return valA.Pointer() == valB.Pointer()
	case reflect.Slice:
		return valA.Pointer() == valB.Pointer() && valA.Len() == valB.Len()
	case reflect.Map:
		return valA.Pointer() == valB.Pointer()
	}
	return false
}

// IsNilValue reports nil interfaces as well as typed nil pointers, maps, slices and funcs.
func IsNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func IsNumericType(val any) bool {
	switch val.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func CompareAsFloat64(a, b any) bool {
	valA, okA := ToFloat64(a)
	valB, okB := ToFloat64(b)
	return okA && okB && valA == valB
}

func ToFloat64(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// ToInt converts integer types, and floats with no fractional part (JSON/YAML numbers).
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case float32:
		if math.Trunc(float64(v)) != float64(v) {
			return 0, false
		}
		return int(v), true
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	}
	f, ok := ToFloat64(val)
	if !ok {
		return 0, false
	}
	return int(f), true
}
