package taskcodec

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/gjson"

	"github.com/unkn0wn-root/taskcodec/format"
	"github.com/unkn0wn-root/taskcodec/internal/fieldplan"
)

// Decode parses data with the configured Format, then behaves like DecodeDocument.
func (c *Codec[T]) Decode(data []byte, env any) (T, error) {
	var zero T
	doc, err := c.format.Unmarshal(data)
	if err != nil {
		var tl *format.TooLargeError
		if errors.As(err, &tl) {
			c.hooks.PayloadTooLarge(tl.Size, tl.Limit)
		}
		return zero, c.reject(&DecodeError{Kind: KindMalformed, Err: err})
	}
	return c.DecodeDocument(doc, env)
}

// DecodeDocument resolves the variant named by the discriminator, decodes the
// description and hands it, together with env, to the variant constructor.
// Every failure is a *DecodeError; nothing is returned half-built.
func (c *Codec[T]) DecodeDocument(doc Document, env any) (T, error) {
	var zero T
	if doc == nil {
		return zero, c.reject(&DecodeError{Kind: KindMalformed, Err: format.ErrNotObject})
	}
	v, derr := c.variantOf(doc)
	if derr != nil {
		return zero, c.reject(derr)
	}
	desc, derr := c.decodeDesc(v, doc)
	if derr != nil {
		return zero, c.reject(derr)
	}
	task, err := v.build(desc, env)
	if err != nil {
		return zero, c.reject(&DecodeError{Kind: KindConstructionFailed, Tag: v.tag, Err: err})
	}
	return task, nil
}

// Peek reads only the discriminator of a payload and checks that it names a
// registered variant. JSON payloads are scanned without building a document;
// other formats are unmarshalled first. It does not log or call hooks.
func (c *Codec[T]) Peek(data []byte) (string, error) {
	if c.format.ID() != format.IDJSON {
		doc, err := c.format.Unmarshal(data)
		if err != nil {
			return "", &DecodeError{Kind: KindMalformed, Err: err}
		}
		tag, _ := doc[c.disc].(string)
		return c.peekTag(tag)
	}
	if !gjson.ValidBytes(data) {
		return "", &DecodeError{Kind: KindMalformed, Err: errors.New("invalid json")}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return "", &DecodeError{Kind: KindMalformed, Err: format.ErrNotObject}
	}
	var tag gjson.Result
	root.ForEach(func(key, value gjson.Result) bool {
		if key.String() == c.disc {
			tag = value
			return false
		}
		return true
	})
	if tag.Type != gjson.String {
		return c.peekTag("")
	}
	return c.peekTag(tag.Str)
}

func (c *Codec[T]) peekTag(tag string) (string, error) {
	if tag == "" {
		return "", &DecodeError{Kind: KindMissingOrInvalidType, Field: c.disc}
	}
	if _, ok := c.registry.Lookup(tag); !ok {
		return tag, &DecodeError{Kind: KindUnknownVariant, Tag: tag}
	}
	return tag, nil
}

func (c *Codec[T]) variantOf(doc Document) (Variant[T], *DecodeError) {
	tag, ok := doc[c.disc].(string)
	if !ok || tag == "" {
		return Variant[T]{}, &DecodeError{Kind: KindMissingOrInvalidType, Field: c.disc}
	}
	v, ok := c.registry.Lookup(tag)
	if !ok {
		return Variant[T]{}, &DecodeError{Kind: KindUnknownVariant, Tag: tag}
	}
	return v, nil
}

func (c *Codec[T]) decodeDesc(v Variant[T], doc Document) (any, *DecodeError) {
	if derr := c.checkFields(v.tag, v.desc, doc, ""); derr != nil {
		return nil, derr
	}

	var unknown []string
	byField := c.toFieldNames(v.desc, doc, "", &unknown)

	out := v.newDesc()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    fieldplan.TagName,
		Squash:     true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(timestampHook, integralHook),
		MatchName:  func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return nil, &DecodeError{Kind: KindInvalidField, Tag: v.tag, Err: err}
	}
	if err := dec.Decode(byField); err != nil {
		return nil, &DecodeError{Kind: KindInvalidField, Tag: v.tag, Err: err}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		if c.strict {
			return nil, &DecodeError{Kind: KindUnknownField, Tag: v.tag, Field: unknown[0]}
		}
		c.hooks.UnknownFieldsIgnored(v.tag, unknown)
		c.log.Debug("unknown fields ignored", Fields{"tag": v.tag, "keys": strings.Join(unknown, ",")})
	}
	return out, nil
}

// toFieldNames rewrites doc so that every key a field claims under the naming
// policy is stored under the field's own name, which is what mapstructure
// matches. Keys no field claims are dropped and appended to unknown as
// document paths. The top-level discriminator is never unknown.
func (c *Codec[T]) toFieldNames(t reflect.Type, doc map[string]any, prefix string, unknown *[]string) map[string]any {
	fields := fieldplan.For(t).Fields
	out := make(map[string]any, len(fields))
	claimed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := c.naming.Key(f.Name)
		claimed[key] = struct{}{}
		if raw, ok := doc[key]; ok {
			out[f.Name] = c.renameValue(f.Type, raw, prefix+key, unknown)
		}
	}
	for k := range doc {
		if _, ok := claimed[k]; ok || (prefix == "" && k == c.disc) {
			continue
		}
		*unknown = append(*unknown, prefix+k)
	}
	return out
}

func (c *Codec[T]) renameValue(t reflect.Type, raw any, path string, unknown *[]string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case fieldplan.IsTime(t):
	case t.Kind() == reflect.Struct:
		if m, ok := raw.(map[string]any); ok {
			return c.toFieldNames(t, m, path+".", unknown)
		}
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		if items, ok := raw.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = c.renameValue(t.Elem(), item, fmt.Sprintf("%s[%d]", path, i), unknown)
			}
			return out
		}
	case t.Kind() == reflect.Map:
		if m, ok := raw.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for k, item := range m {
				out[k] = c.renameValue(t.Elem(), item, path+"."+k, unknown)
			}
			return out
		}
	}
	return raw
}

// checkFields walks the field plan before mapstructure runs so that missing
// keys and bad timestamps are reported with their document path.
func (c *Codec[T]) checkFields(tag string, t reflect.Type, doc map[string]any, prefix string) *DecodeError {
	for _, f := range fieldplan.For(t).Fields {
		key := c.naming.Key(f.Name)
		raw, ok := doc[key]
		if !ok || raw == nil {
			if f.Optional {
				continue
			}
			return &DecodeError{Kind: KindMissingField, Tag: tag, Field: prefix + key}
		}
		if derr := c.checkValue(tag, f.Type, raw, prefix+key); derr != nil {
			return derr
		}
	}
	return nil
}

func (c *Codec[T]) checkValue(tag string, t reflect.Type, raw any, path string) *DecodeError {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case fieldplan.IsTime(t):
		if s, ok := raw.(string); ok {
			if _, err := ParseTimestamp(s); err != nil {
				return &DecodeError{Kind: KindBadTimestamp, Tag: tag, Field: path, Err: err}
			}
		}
	case t.Kind() == reflect.Struct:
		if m, ok := raw.(map[string]any); ok {
			return c.checkFields(tag, t, m, path+".")
		}
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		if items, ok := raw.([]any); ok {
			for i, item := range items {
				if item == nil {
					continue
				}
				if derr := c.checkValue(tag, t.Elem(), item, fmt.Sprintf("%s[%d]", path, i)); derr != nil {
					return derr
				}
			}
		}
	case t.Kind() == reflect.Map:
		if m, ok := raw.(map[string]any); ok {
			for k, item := range m {
				if item == nil {
					continue
				}
				if derr := c.checkValue(tag, t.Elem(), item, path+"."+k); derr != nil {
					return derr
				}
			}
		}
	}
	return nil
}

func (c *Codec[T]) reject(err *DecodeError) error {
	c.log.Warn("decode rejected", Fields{
		"tag":   err.Tag,
		"kind":  err.Kind.String(),
		"field": err.Field,
		"err":   err.Error(),
	})
	c.hooks.DecodeRejected(err.Tag, err.Kind, err)
	return err
}

var timestampHook mapstructure.DecodeHookFuncType = func(_, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || !fieldplan.IsTime(to) {
		return data, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// integralHook refuses to truncate fractional numbers into integer fields and
// rejects values the field's width cannot hold, whatever numeric type the
// format produced.
var integralHook mapstructure.DecodeHookFuncType = func(_, to reflect.Type, data any) (any, error) {
	var signed bool
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		signed = true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	field := reflect.Zero(to)
	var overflow bool
	switch dv := reflect.ValueOf(data); dv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := dv.Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", f)
		}
		if signed {
			overflow = f < math.MinInt64 || f >= math.MaxInt64 || field.OverflowInt(int64(f))
		} else {
			overflow = f < 0 || f >= math.MaxUint64 || field.OverflowUint(uint64(f))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := dv.Int()
		if signed {
			overflow = field.OverflowInt(i)
		} else {
			overflow = i < 0 || field.OverflowUint(uint64(i))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := dv.Uint()
		if signed {
			overflow = u > math.MaxInt64 || field.OverflowInt(int64(u))
		} else {
			overflow = field.OverflowUint(u)
		}
	default:
		return data, nil
	}
	if overflow {
		return nil, fmt.Errorf("%v overflows %s", data, to)
	}
	return data, nil
}
