package taskcodec

import (
	"errors"
	"fmt"
)

// Kind classifies why a decode failed.
type Kind uint8

const (
	KindMalformed Kind = iota + 1
	KindMissingOrInvalidType
	KindUnknownVariant
	KindMissingField
	KindBadTimestamp
	KindInvalidField
	KindUnknownField
	KindConstructionFailed
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindMissingOrInvalidType:
		return "missing_or_invalid_type"
	case KindUnknownVariant:
		return "unknown_variant"
	case KindMissingField:
		return "missing_field"
	case KindBadTimestamp:
		return "bad_timestamp"
	case KindInvalidField:
		return "invalid_field"
	case KindUnknownField:
		return "unknown_field"
	case KindConstructionFailed:
		return "construction_failed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var (
	ErrMalformed            = errors.New("taskcodec: malformed payload")
	ErrMissingOrInvalidType = errors.New("taskcodec: missing or invalid type")
	ErrUnknownVariant       = errors.New("taskcodec: unknown variant")
	ErrMissingField         = errors.New("taskcodec: missing field")
	ErrBadTimestamp         = errors.New("taskcodec: bad timestamp")
	ErrInvalidField         = errors.New("taskcodec: invalid field")
	ErrUnknownField         = errors.New("taskcodec: unknown field")
	ErrConstructionFailed   = errors.New("taskcodec: construction failed")

	ErrUnsupportedType = errors.New("taskcodec: unsupported type")

	ErrEmptyTag         = errors.New("taskcodec: empty variant tag")
	ErrDuplicateVariant = errors.New("taskcodec: duplicate variant tag")
	ErrNilConstructor   = errors.New("taskcodec: nil variant constructor")
	ErrNotStruct        = errors.New("taskcodec: variant description must be a struct")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMalformed:
		return ErrMalformed
	case KindMissingOrInvalidType:
		return ErrMissingOrInvalidType
	case KindUnknownVariant:
		return ErrUnknownVariant
	case KindMissingField:
		return ErrMissingField
	case KindBadTimestamp:
		return ErrBadTimestamp
	case KindInvalidField:
		return ErrInvalidField
	case KindUnknownField:
		return ErrUnknownField
	case KindConstructionFailed:
		return ErrConstructionFailed
	default:
		return nil
	}
}

// DecodeError is returned by every decode path. errors.Is matches the sentinel
// of its Kind (ErrUnknownVariant, ErrMissingField, ...) as well as the cause.
type DecodeError struct {
	Kind  Kind
	Tag   string // discriminator value; empty if it could not be read
	Field string // dotted document key path, when the failure is field specific
	Err   error  // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	where := "decode"
	if e.Tag != "" {
		where = fmt.Sprintf("decode %q", e.Tag)
	}
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("taskcodec: %s: %s %q: %v", where, e.Kind, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("taskcodec: %s: %s %q", where, e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("taskcodec: %s: %s: %v", where, e.Kind, e.Err)
	default:
		return fmt.Sprintf("taskcodec: %s: %s", where, e.Kind)
	}
}

func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports the Kind of a decode error, or 0 if err is not a *DecodeError.
func KindOf(err error) Kind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
