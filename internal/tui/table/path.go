// ABOUTME: Safe dotted-path lookup into arbitrary records
// ABOUTME: Walks maps, structs and slices; never evaluates code

package table

import (
	"reflect"
	"strconv"
	"strings"
)

// Lookup resolves a dotted accessor path against a record. It walks string
// maps, struct fields (by json tag or name) and slice indexes segment by
// segment. Any missing segment returns ok=false so the caller renders an
// empty cell instead of failing.
func Lookup(record any, path string) (any, bool) {
	if path == "" || record == nil {
		return nil, false
	}

	v := reflect.ValueOf(record)
	for _, seg := range strings.Split(path, ".") {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}

		switch v.Kind() {
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v = v.MapIndex(reflect.ValueOf(seg))
		case reflect.Struct:
			field, ok := structField(v, seg)
			if !ok {
				return nil, false
			}
			v = field
		case reflect.Slice, reflect.Array:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= v.Len() {
				return nil, false
			}
			v = v.Index(idx)
		default:
			return nil, false
		}

		if !v.IsValid() {
			return nil, false
		}
	}

	v = indirect(v)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// indirect unwraps pointers and interfaces down to the concrete value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// structField finds a field by json tag first, then by case-insensitive
// field name.
func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if comma := strings.IndexByte(tag, ','); comma >= 0 {
			tag = tag[:comma]
		}
		if tag == name {
			return v.FieldByIndex(f.Index), true
		}
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return v.FieldByIndex(f.Index), true
		}
	}
	return reflect.Value{}, false
}
