package taskcodec

import (
	"errors"
	"reflect"
	"testing"
)

func buildPing(d pingDesc, _ any) (task, error) { return task{desc: d}, nil }

func TestRegistryLookupAndTags(t *testing.T) {
	r := newTestRegistry(t)
	if r.Len() != 4 {
		t.Fatalf("Len=%d", r.Len())
	}
	if got := r.Tags(); !reflect.DeepEqual(got, []string{"fail", "ping", "sample", "traceroute"}) {
		t.Fatalf("Tags=%v", got)
	}
	v, ok := r.Lookup("ping")
	if !ok || v.Tag() != "ping" || v.DescType() != reflect.TypeOf(pingDesc{}) {
		t.Fatalf("Lookup(ping)=%v,%v", v.Tag(), ok)
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatalf("Lookup(nope) should miss")
	}
}

func TestRegistryRejectsBadVariants(t *testing.T) {
	cases := []struct {
		name string
		vs   []Variant[task]
		want error
	}{
		{"empty tag", []Variant[task]{Define("", buildPing)}, ErrEmptyTag},
		{"duplicate", []Variant[task]{Define("ping", buildPing), Define("ping", buildPing)}, ErrDuplicateVariant},
		{"nil constructor", []Variant[task]{Define[task, pingDesc]("ping", nil)}, ErrNilConstructor},
		{"not a struct", []Variant[task]{Define("s", func(string, any) (task, error) { return task{}, nil })}, ErrNotStruct},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRegistry(tc.vs...); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}
}

func TestMustRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustRegistry(Define("", buildPing))
}
