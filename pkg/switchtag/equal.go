// Copyright 2025 Philipp Hossner
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package switchtag

import (
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolalohinski/gonja/v2/exec"
)

// exportAll lets cmp descend into structs with unexported fields instead of
// panicking on them.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// valuesEqual compares a switch subject with a case value.
//
// Scalars use Gonja's own equality, the same as the == operator. Lists, dicts
// and other composite values are compared structurally: a list literal equals
// a context slice with the same elements, and a dict literal equals a context
// map with the same entries.
func valuesEqual(subject, value *exec.Value) bool {
	if isScalar(subject.Interface()) && isScalar(value.Interface()) {
		return subject.EqualValueTo(value)
	}

	return cmp.Equal(normalize(subject.Interface()), normalize(value.Interface()), exportAll)
}

func isScalar(v interface{}) bool {
	if v == nil {
		return true
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// normalize converts v into plain []interface{}, map[interface{}]interface{}
// and widened scalars, so values built by the template and values passed in
// the context compare equal when their contents are.
func normalize(v interface{}) interface{} {
	switch typed := v.(type) {
	case nil:
		return nil
	case *exec.Value:
		if typed == nil {
			return nil
		}
		return normalize(typed.Interface())
	case *exec.Dict:
		if typed == nil {
			return nil
		}
		return normalizePairs(typed.Pairs)
	case exec.Dict:
		return normalizePairs(typed.Pairs)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u)
		}
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = normalize(rv.Index(i).Interface())
		}
		return items
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Map:
		entries := make(map[interface{}]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries[mapKey(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return entries
	default:
		return v
	}
}

func normalizePairs(pairs []*exec.Pair) map[interface{}]interface{} {
	entries := make(map[interface{}]interface{}, len(pairs))
	for _, pair := range pairs {
		if pair == nil {
			continue
		}
		entries[mapKey(pair.Key)] = normalize(pair.Value)
	}
	return entries
}

// mapKey keeps a normalized key only if it can still be used as a map key.
func mapKey(key interface{}) interface{} {
	normalized := normalize(key)
	if normalized == nil || reflect.TypeOf(normalized).Comparable() {
		return normalized
	}
	return key
}
