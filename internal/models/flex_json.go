package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMaps caches JSON tag -> struct field index mappings per type
var fieldMaps sync.Map

func getFieldMap(t reflect.Type) map[string]int {
	if cached, ok := fieldMaps.Load(t); ok {
		return cached.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		m[name] = i
	}
	fieldMaps.Store(t, m)
	return m
}

// UnmarshalJSON accepts scores encoded as strings or floats. The scoring
// backend relays model output, which is not always typed the way we ask.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias AnalysisResult
	return flexUnmarshal(data, (*Alias)(r))
}

// UnmarshalJSON accepts avg_rizz and total_scores as strings.
func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	type Alias LeaderboardEntry
	return flexUnmarshal(data, (*Alias)(e))
}

func flexUnmarshal(data []byte, target interface{}) error {
	// Fast path: standard unmarshal works when all types match natively
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	v := reflect.ValueOf(target).Elem()
	fieldMap := getFieldMap(v.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// "score": 72.6 into an int field
		var f float64
		if err := json.Unmarshal(rawVal, &f); err == nil {
			coerceFloatToField(fv, f)
			continue
		}

		// Value is a JSON string but target is numeric
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			coerceStringToField(fv, s)
		}
	}

	return nil
}

func coerceFloatToField(fv reflect.Value, f float64) {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fv.SetInt(int64(math.Round(f)))
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(f)
	}
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// "72.5" rounds to 73
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(math.Round(n)))
		}
	case reflect.String:
		fv.SetString(s)
	}
}
