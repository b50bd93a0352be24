// Package fieldplan caches the per-struct field layout used by the codec to
// encode documents and to check required keys before decoding.
package fieldplan

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

// TagName is the struct tag read for field overrides: `codec:"name,optional"` or `codec:"-"`.
const TagName = "codec"

var timeType = reflect.TypeOf(time.Time{})

// IsTime reports whether t is time.Time.
func IsTime(t reflect.Type) bool { return t == timeType }

type Field struct {
	Name     string // tag name if set, otherwise the Go field name
	Index    []int  // for reflect.Value.FieldByIndex
	Type     reflect.Type
	Optional bool // may be absent or null in a document
}

type Plan struct {
	Fields []Field
}

var plans sync.Map // reflect.Type -> *Plan

// For returns the plan of struct type t. Anonymous struct fields without a tag
// name are flattened into the parent, matching mapstructure's squash.
func For(t reflect.Type) *Plan {
	if p, ok := plans.Load(t); ok {
		return p.(*Plan)
	}
	p := &Plan{Fields: collect(t, nil)}
	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*Plan)
}

func collect(t reflect.Type, parent []int) []Field {
	var out []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, optional, skip := parseTag(sf.Tag.Get(TagName))
		if skip {
			continue
		}
		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct && !IsTime(sf.Type) {
			out = append(out, collect(sf.Type, index)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, Field{
			Name:     name,
			Index:    index,
			Type:     sf.Type,
			Optional: optional || nullable(sf.Type),
		})
	}
	return out
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func parseTag(tag string) (name string, optional, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "optional" {
			optional = true
		}
	}
	return name, optional, false
}
