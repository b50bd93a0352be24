package taskcodec

import (
	"errors"

	"github.com/unkn0wn-root/taskcodec/format"
)

// DefaultDiscriminator is the document key naming the variant.
const DefaultDiscriminator = "type"

// Document is the generic object form of an encoded value.
type Document = map[string]any

// Tagged values get the discriminator key added by Encode.
type Tagged interface {
	VariantTag() string
}

// Options configure a Codec. Only Registry is required; the rest have defaults
// matching the measurement wire format.
type Options[T any] struct {
	// Required
	Registry *Registry[T]

	Format         format.Format // nil => format.JSON{}
	Naming         NamingPolicy  // nil => SnakeCase
	Discriminator  string        // "" => "type"
	OmitNulls      bool          // default false: absent values are written as null
	Strict         bool          // default false: unknown keys are ignored (and reported to Hooks)
	MaxDecodeBytes int           // <= 0 => unlimited
	Logger         Logger        // nil => NopLogger
	Hooks          Hooks         // nil => NopHooks
}

// Codec decodes documents into T via the registry and encodes arbitrary
// structs into documents. Safe for concurrent use.
type Codec[T any] struct {
	registry  *Registry[T]
	format    format.Format
	naming    NamingPolicy
	disc      string
	omitNulls bool
	strict    bool
	log       Logger
	hooks     Hooks
}

func New[T any](opts Options[T]) (*Codec[T], error) {
	if opts.Registry == nil {
		return nil, errors.New("taskcodec: registry is required")
	}
	c := &Codec[T]{
		registry:  opts.Registry,
		omitNulls: opts.OmitNulls,
		strict:    opts.Strict,
	}

	// defaults
	c.format = coalesce[format.Format](opts.Format, format.JSON{})
	c.naming = coalesce[NamingPolicy](opts.Naming, SnakeCase)
	c.disc = coalesce(opts.Discriminator, DefaultDiscriminator)
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if opts.MaxDecodeBytes > 0 {
		c.format = format.Limit{Inner: c.format, MaxDecode: opts.MaxDecodeBytes}
	}
	return c, nil
}

// Must is like New but panics on error.
func Must[T any](opts Options[T]) *Codec[T] {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec[T]) Registry() *Registry[T] { return c.registry }
func (c *Codec[T]) Format() format.Format  { return c.format }
func (c *Codec[T]) Discriminator() string  { return c.disc }
func (c *Codec[T]) Naming() NamingPolicy   { return c.naming }
