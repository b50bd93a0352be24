package taskcodec

import (
	"fmt"
	"reflect"
	"sort"
)

// Variant binds a discriminator tag to a description type and the constructor
// that turns a decoded description into a T. Build variants with Define.
type Variant[T any] struct {
	tag     string
	desc    reflect.Type
	newDesc func() any
	build   func(desc, env any) (T, error)
	err     error
}

// Define declares variant tag with description type D. build receives the
// decoded description and the env passed to Decode, unexamined.
func Define[T, D any](tag string, build func(desc D, env any) (T, error)) Variant[T] {
	v := Variant[T]{tag: tag, desc: reflect.TypeOf((*D)(nil)).Elem()}
	switch {
	case tag == "":
		v.err = ErrEmptyTag
	case build == nil:
		v.err = fmt.Errorf("%w: %q", ErrNilConstructor, tag)
	case v.desc.Kind() != reflect.Struct:
		v.err = fmt.Errorf("%w: %q is %s", ErrNotStruct, tag, v.desc)
	}
	v.newDesc = func() any { return new(D) }
	v.build = func(desc, env any) (T, error) { return build(*desc.(*D), env) }
	return v
}

func (v Variant[T]) Tag() string { return v.tag }

// DescType is the description struct type decoded for this variant.
func (v Variant[T]) DescType() reflect.Type { return v.desc }

// Registry is the immutable tag -> variant table. Safe for concurrent reads.
type Registry[T any] struct {
	variants map[string]Variant[T]
}

// NewRegistry validates and indexes variants. Tags must be unique.
func NewRegistry[T any](variants ...Variant[T]) (*Registry[T], error) {
	r := &Registry[T]{variants: make(map[string]Variant[T], len(variants))}
	for _, v := range variants {
		if v.err != nil {
			return nil, v.err
		}
		if _, dup := r.variants[v.tag]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVariant, v.tag)
		}
		r.variants[v.tag] = v
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. Handy for package-level tables.
func MustRegistry[T any](variants ...Variant[T]) *Registry[T] {
	r, err := NewRegistry(variants...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry[T]) Lookup(tag string) (Variant[T], bool) {
	v, ok := r.variants[tag]
	return v, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry[T]) Tags() []string {
	out := make([]string, 0, len(r.variants))
	for tag := range r.variants {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func (r *Registry[T]) Len() int { return len(r.variants) }
