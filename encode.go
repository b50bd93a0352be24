package taskcodec

import (
	"fmt"
	"reflect"
	"time"

	"github.com/unkn0wn-root/taskcodec/internal/fieldplan"
)

// Encode converts a struct (or pointer to struct) into a Document. Every
// exported field is emitted under its naming-policy key; absent values are
// explicit nil unless OmitNulls is set. It only fails for values the document
// model cannot hold (channels, functions, non-string map keys).
func (c *Codec[T]) Encode(v any) (Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedType, v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || fieldplan.IsTime(rv.Type()) {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrUnsupportedType, v)
	}
	doc, err := c.encodeStruct(rv)
	if err != nil {
		return nil, err
	}
	if t, ok := v.(Tagged); ok {
		if _, set := doc[c.disc]; !set {
			doc[c.disc] = t.VariantTag()
		}
	}
	return doc, nil
}

// Marshal encodes v and serializes it with the configured Format.
func (c *Codec[T]) Marshal(v any) ([]byte, error) {
	doc, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return c.format.Marshal(doc)
}

// MarshalString is Marshal for text formats.
func (c *Codec[T]) MarshalString(v any) (string, error) {
	b, err := c.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Codec[T]) encodeStruct(rv reflect.Value) (Document, error) {
	plan := fieldplan.For(rv.Type())
	doc := make(Document, len(plan.Fields))
	for _, f := range plan.Fields {
		val, err := c.encodeValue(rv.FieldByIndex(f.Index))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		if val == nil && c.omitNulls {
			continue
		}
		doc[c.naming.Key(f.Name)] = val
	}
	return doc, nil
}

func (c *Codec[T]) encodeValue(v reflect.Value) (any, error) {
	if fieldplan.IsTime(v.Type()) {
		return FormatTimestamp(v.Interface().(time.Time)), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return c.encodeValue(v.Elem())
	case reflect.Struct:
		return c.encodeStruct(v)
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		return c.encodeList(v)
	case reflect.Array:
		return c.encodeList(v)
	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %s", ErrUnsupportedType, v.Type().Key())
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val, err := c.encodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = val // map keys are data, not field names
		}
		return out, nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
}

func (c *Codec[T]) encodeList(v reflect.Value) ([]any, error) {
	out := make([]any, v.Len())
	for i := range out {
		val, err := c.encodeValue(v.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}
