package taskcodec

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// NamingPolicy maps a Go field name (or its codec tag name) to a document key.
// The same policy is used in both directions.
type NamingPolicy interface {
	Key(field string) string
}

// NamingFunc adapts a plain function to NamingPolicy.
type NamingFunc func(field string) string

func (f NamingFunc) Key(field string) string { return f(field) }

var (
	// SnakeCase is the default: StartTimestamp -> start_timestamp.
	// Digits stay attached to the word before them: Ipv6Host -> ipv6_host.
	SnakeCase NamingPolicy = NamingFunc(toSnake)
	// LowerCamel: StartTimestamp -> startTimestamp.
	LowerCamel NamingPolicy = NamingFunc(strcase.ToLowerCamel)
	// Verbatim keeps Go field names as-is.
	Verbatim NamingPolicy = NamingFunc(func(field string) string { return field })
)

// toSnake splits words where a digit is followed by an upper-case letter and
// lets strcase handle each word, dropping the underscores it places around
// digits.
func toSnake(field string) string {
	var words []string
	start := 0
	for i := 1; i < len(field); i++ {
		if isDigit(field[i-1]) && field[i] >= 'A' && field[i] <= 'Z' {
			words = append(words, snakeWord(field[start:i]))
			start = i
		}
	}
	words = append(words, snakeWord(field[start:]))
	return strings.Join(words, "_")
}

func snakeWord(w string) string {
	s := strcase.ToSnake(w)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && ((i > 0 && isDigit(s[i-1])) || (i+1 < len(s) && isDigit(s[i+1]))) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
