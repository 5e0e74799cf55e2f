package csvdoc

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestProjectionApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   []string
		layers []FieldMap
		want   map[int]string
	}{
		{
			name:   "listForm",
			layers: []FieldMap{Names("a", "b", "", "c")},
			want:   map[int]string{0: "a", 1: "b", 3: "c"},
		},
		{
			name:   "positionalSkipClearsHeaderName",
			base:   []string{"id", "name", "age"},
			layers: []FieldMap{Names("", "", "")},
			want:   map[int]string{},
		},
		{
			name:   "renameKeepsOthers",
			base:   []string{"id", "name", "age"},
			layers: []FieldMap{Rename("name", "fullName")},
			want:   map[int]string{0: "id", 1: "fullName", 2: "age"},
		},
		{
			name:   "namedSkipIsNoop",
			base:   []string{"id", "name"},
			layers: []FieldMap{{{Source: Name("name"), Name: ""}}},
			want:   map[int]string{0: "id", 1: "name"},
		},
		{
			name:   "unknownNameIgnored",
			base:   []string{"id"},
			layers: []FieldMap{Rename("missing", "x")},
			want:   map[int]string{0: "id"},
		},
		{
			name:   "negativePositionIgnored",
			layers: []FieldMap{{{Source: Pos(-1), Name: "x"}}},
			want:   map[int]string{},
		},
		{
			name:   "positionBeyondRowsKeptSparse",
			base:   []string{"id"},
			layers: []FieldMap{{{Source: Pos(3), Name: "extra"}}},
			want:   map[int]string{0: "id", 3: "extra"},
		},
		{
			name:   "maxPosition",
			base:   []string{"id"},
			layers: []FieldMap{{{Source: Pos(math.MaxInt), Name: "far"}, {Source: Pos(math.MaxInt - 1), Name: "huge"}}},
			want:   map[int]string{0: "id", math.MaxInt: "far", math.MaxInt - 1: "huge"},
		},
		{
			name:   "swapResolvesAgainstPreviousNames",
			base:   []string{"x", "y"},
			layers: []FieldMap{Rename("x", "y", "y", "x")},
			want:   map[int]string{0: "y", 1: "x"},
		},
		{
			name:   "layersCompose",
			layers: []FieldMap{Names("a", "b"), Rename("a", "alpha"), Rename("alpha", "first")},
			want:   map[int]string{0: "first", 1: "b"},
		},
		{
			name: "duplicateFirstWins",
			base: []string{"dup", "other", "dup"},
			want: map[int]string{0: "dup", 1: "other"},
		},
		{
			name:   "duplicateFromMapFirstWins",
			base:   []string{"a", "b"},
			layers: []FieldMap{{{Source: Pos(1), Name: "a"}}},
			want:   map[int]string{0: "a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := headerProjection(tc.base)
			for _, m := range tc.layers {
				p = p.apply(m)
			}
			if !reflect.DeepEqual(p.names, tc.want) {
				t.Fatalf("names = %v, want %v", p.names, tc.want)
			}
			for pos, name := range p.names {
				if p.index[name] != pos {
					t.Fatalf("index[%q] = %d, want %d", name, p.index[name], pos)
				}
			}
		})
	}
}

func TestProjectionOutOfRangePosition(t *testing.T) {
	t.Parallel()

	doc := New(strings.NewReader("1,2\n"), Options{Fields: FieldMap{{Source: Pos(math.MaxInt), Name: "x"}}})
	row, err := doc.Get(0)
	if err != nil {
		t.Fatalf("Get(0) error = %v", err)
	}
	if row.Has(Name("x")) {
		t.Fatalf("Has(x) = true for a position no row reaches")
	}
	if _, err := row.Get(Name("x")); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("Get(x) error = %v, want ErrFieldNotFound", err)
	}
	if want := []Key{Pos(0), Pos(1)}; !reflect.DeepEqual(row.Keys(), want) {
		t.Fatalf("Keys() = %v, want %v", row.Keys(), want)
	}
}

func TestRenameIgnoresUnpairedName(t *testing.T) {
	t.Parallel()

	got := Rename("a", "b", "c")
	want := FieldMap{{Source: Name("a"), Name: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rename() = %+v, want %+v", got, want)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if p, ok := Pos(3).Position(); !ok || p != 3 {
		t.Fatalf("Pos(3).Position() = %d, %v", p, ok)
	}
	if _, ok := Pos(3).FieldName(); ok {
		t.Fatalf("Pos(3).FieldName() reported a name")
	}
	if n, ok := Name("title").FieldName(); !ok || n != "title" {
		t.Fatalf("Name(title).FieldName() = %q, %v", n, ok)
	}
	if _, ok := Name("title").Position(); ok {
		t.Fatalf("Name(title).Position() reported a position")
	}
	if Pos(0) == Name("") {
		t.Fatalf("Pos(0) and Name(\"\") must be different keys")
	}
	if got := Pos(7).String(); got != "7" {
		t.Fatalf("Pos(7).String() = %q", got)
	}
	if got := Name("a b").String(); got != `"a b"` {
		t.Fatalf("Name(a b).String() = %q", got)
	}
}
