package fieldplan

import (
	"reflect"
	"testing"
	"time"
)

type base struct {
	ID string
}

type sample struct {
	base
	Name     string
	Retries  int `codec:",optional"`
	Renamed  string `codec:"alias"`
	Skipped  string `codec:"-"`
	Started  time.Time
	Ended    *time.Time
	Tags     []string
	Extra    map[string]any
	internal int
}

func names(p *Plan) []string {
	out := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = f.Name
	}
	return out
}

func TestPlanFlattensAndSkips(t *testing.T) {
	p := For(reflect.TypeOf(sample{}))
	want := []string{"ID", "Name", "Retries", "alias", "Started", "Ended", "Tags", "Extra"}
	if got := names(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("fields=%v want %v", got, want)
	}
}

func TestPlanOptionality(t *testing.T) {
	p := For(reflect.TypeOf(sample{}))
	optional := map[string]bool{}
	for _, f := range p.Fields {
		optional[f.Name] = f.Optional
	}
	for name, want := range map[string]bool{
		"ID": false, "Name": false, "Retries": true, "alias": false,
		"Started": false, "Ended": true, "Tags": true, "Extra": true,
	} {
		if optional[name] != want {
			t.Fatalf("%s optional=%v want %v", name, optional[name], want)
		}
	}
}

func TestPlanIndexReachesEmbeddedField(t *testing.T) {
	v := sample{base: base{ID: "x"}}
	p := For(reflect.TypeOf(v))
	got := reflect.ValueOf(v).FieldByIndex(p.Fields[0].Index).String()
	if got != "x" {
		t.Fatalf("embedded field via index = %q", got)
	}
}

func TestPlanIsCached(t *testing.T) {
	a := For(reflect.TypeOf(sample{}))
	b := For(reflect.TypeOf(sample{}))
	if a != b {
		t.Fatalf("expected cached plan pointer")
	}
}
