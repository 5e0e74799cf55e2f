package csvdoc

import (
	"maps"
	"slices"
	"strconv"
)

// Key addresses a field of a Row, either by position or by name.
type Key struct {
	name  string
	pos   int
	named bool
}

// Pos returns the key of the field at position p.
func Pos(p int) Key {
	return Key{pos: p}
}

// Name returns the key of the field called name. Names are case-sensitive.
func Name(name string) Key {
	return Key{name: name, named: true}
}

// Position returns the position held by k, if k is positional.
func (k Key) Position() (int, bool) {
	return k.pos, !k.named
}

// FieldName returns the name held by k, if k is a name.
func (k Key) FieldName() (string, bool) {
	return k.name, k.named
}

func (k Key) String() string {
	if k.named {
		return strconv.Quote(k.name)
	}
	return strconv.Itoa(k.pos)
}

// FieldEntry assigns Name to the column found under Source.
//
// Source is a position or a name that already exists before the map is applied.
// An empty Name with a positional Source removes the name at that position, so
// the column is reachable by position only. An empty Name with a named Source
// leaves that column as it is.
type FieldEntry struct {
	Source Key
	Name   string
}

// FieldMap is an ordered list of field entries. Later entries override earlier
// ones for the same column.
type FieldMap []FieldEntry

// Names builds a field map that names columns in list order: names[i] is
// assigned to position i. An empty string skips that position.
func Names(names ...string) FieldMap {
	m := make(FieldMap, len(names))
	for i, name := range names {
		m[i] = FieldEntry{Source: Pos(i), Name: name}
	}
	return m
}

// Rename builds a field map from old/new name pairs, in order.
// A trailing unpaired name is ignored.
func Rename(pairs ...string) FieldMap {
	m := make(FieldMap, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m = append(m, FieldEntry{Source: Name(pairs[i]), Name: pairs[i+1]})
	}
	return m
}

// projection maps positions to names for every row of a Document.
// Rows keep their raw values; only the projection changes when field maps change.
// Positions are kept sparse: a field map may name a position no row reaches.
type projection struct {
	names map[int]string // position -> name
	index map[string]int // name -> position
}

// newProjection indexes names. When a name occurs more than once the lowest
// position keeps it and the others become unnamed.
func newProjection(names map[int]string) *projection {
	p := &projection{
		names: make(map[int]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, pos := range slices.Sorted(maps.Keys(names)) {
		name := names[pos]
		if name == "" {
			continue
		}
		if _, ok := p.index[name]; ok {
			continue
		}
		p.names[pos] = name
		p.index[name] = pos
	}
	return p
}

// headerProjection builds the base projection from header names in column order.
func headerProjection(names []string) *projection {
	m := make(map[int]string, len(names))
	for pos, name := range names {
		m[pos] = name
	}
	return newProjection(m)
}

// apply returns the projection produced by layering m over p. Named sources
// resolve against p, before any entry of m takes effect.
func (p *projection) apply(m FieldMap) *projection {
	names := maps.Clone(p.names)
	for _, e := range m {
		pos, ok := p.resolve(e.Source)
		if !ok {
			continue
		}
		if e.Name == "" && e.Source.named {
			continue
		}
		if e.Name == "" {
			delete(names, pos)
			continue
		}
		names[pos] = e.Name
	}
	return newProjection(names)
}

func (p *projection) resolve(k Key) (int, bool) {
	if k.named {
		pos, ok := p.index[k.name]
		return pos, ok
	}
	return k.pos, k.pos >= 0
}

// nameAt returns the name of position pos, or "" when it has none.
func (p *projection) nameAt(pos int) string {
	return p.names[pos]
}

// lookup resolves k to a position within a row of width fields.
func (p *projection) lookup(k Key, width int) (int, bool) {
	if k.named {
		pos, ok := p.index[k.name]
		return pos, ok && pos < width
	}
	return k.pos, k.pos >= 0 && k.pos < width && p.nameAt(k.pos) == ""
}

// keyAt returns the key a row exposes for position pos.
func (p *projection) keyAt(pos int) Key {
	if name := p.nameAt(pos); name != "" {
		return Name(name)
	}
	return Pos(pos)
}
