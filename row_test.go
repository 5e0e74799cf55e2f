package csvdoc

import (
	"errors"
	"reflect"
	"testing"
)

func TestRowLookup(t *testing.T) {
	t.Parallel()

	row := Row{
		values: []string{"1", "Go", "2009"},
		proj:   headerProjection([]string{"id", "", "year", "extra"}),
	}

	tests := []struct {
		key  Key
		want string
		ok   bool
	}{
		{key: Name("id"), want: "1", ok: true},
		{key: Pos(0), ok: false},
		{key: Pos(1), want: "Go", ok: true},
		{key: Name("year"), want: "2009", ok: true},
		{key: Name("Year"), ok: false},
		{key: Name("extra"), ok: false},
		{key: Pos(3), ok: false},
		{key: Pos(-1), ok: false},
	}

	for _, tc := range tests {
		got, err := row.Get(tc.key)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("Get(%s) = %q, %v, want %q", tc.key, got, err, tc.want)
			}
		} else if !errors.Is(err, ErrFieldNotFound) {
			t.Fatalf("Get(%s) error = %v, want ErrFieldNotFound", tc.key, err)
		}
		if row.Has(tc.key) != tc.ok {
			t.Fatalf("Has(%s) = %v, want %v", tc.key, !tc.ok, tc.ok)
		}
	}

	for p, want := range []string{"1", "Go", "2009"} {
		if got, err := row.At(p); err != nil || got != want {
			t.Fatalf("At(%d) = %q, %v, want %q", p, got, err, want)
		}
	}
	if _, err := row.At(3); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("At(3) error = %v, want ErrFieldNotFound", err)
	}
}

func TestRowIteration(t *testing.T) {
	t.Parallel()

	row := Row{
		values: []string{"1", "Go", "2009"},
		proj:   headerProjection([]string{"id", "", "year"}),
	}

	wantKeys := []Key{Name("id"), Pos(1), Name("year")}
	if got := row.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}

	var keys []Key
	var values []string
	for k, v := range row.All() {
		keys = append(keys, k)
		values = append(values, v)
	}
	if !reflect.DeepEqual(keys, wantKeys) || !reflect.DeepEqual(values, []string{"1", "Go", "2009"}) {
		t.Fatalf("All() = %v %q", keys, values)
	}

	if got, want := row.Map(), map[string]string{"id": "1", "year": "2009"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Map() = %v, want %v", got, want)
	}
	if row.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", row.Len())
	}
}

func TestRowValuesIsCopy(t *testing.T) {
	t.Parallel()

	raw := []string{"a", "b"}
	row := Row{values: raw, proj: headerProjection(nil)}
	values := row.Values()
	values[0] = "changed"
	if raw[0] != "a" {
		t.Fatalf("Values() exposed the cached slice")
	}
}

func TestZeroRow(t *testing.T) {
	t.Parallel()

	var row Row
	if row.Len() != 0 || row.Has(Pos(0)) || len(row.Keys()) != 0 || len(row.Map()) != 0 {
		t.Fatalf("zero Row is not empty")
	}
}
