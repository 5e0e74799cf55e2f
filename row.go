package csvdoc

import (
	"iter"
	"slices"
)

// Row is an immutable view of one parsed record.
//
// Every position of the record is exposed under exactly one key: its name when
// the active field map names it, its position otherwise. At gives raw positional
// access regardless of naming.
type Row struct {
	values []string
	proj   *projection
}

// Len returns the number of raw fields in the row.
func (r Row) Len() int {
	return len(r.values)
}

// At returns the raw value at position p, whether or not p is named.
func (r Row) At(p int) (string, error) {
	if p < 0 || p >= len(r.values) {
		return "", fieldNotFound(Pos(p))
	}
	return r.values[p], nil
}

// Get returns the value stored under k.
func (r Row) Get(k Key) (string, error) {
	pos, ok := r.lookup(k)
	if !ok {
		return "", fieldNotFound(k)
	}
	return r.values[pos], nil
}

// Has reports whether the row has a value under k.
func (r Row) Has(k Key) bool {
	_, ok := r.lookup(k)
	return ok
}

// Keys returns the row's keys in column order.
func (r Row) Keys() []Key {
	keys := make([]Key, len(r.values))
	for pos := range r.values {
		keys[pos] = r.keyAt(pos)
	}
	return keys
}

// All yields the row's keys and values in column order.
func (r Row) All() iter.Seq2[Key, string] {
	return func(yield func(Key, string) bool) {
		for pos, v := range r.values {
			if !yield(r.keyAt(pos), v) {
				return
			}
		}
	}
}

// Map returns a copy of the named fields of the row.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	if r.proj == nil {
		return m
	}
	for pos, v := range r.values {
		if name := r.proj.nameAt(pos); name != "" {
			m[name] = v
		}
	}
	return m
}

// Values returns a copy of the raw values of the row.
func (r Row) Values() []string {
	return slices.Clone(r.values)
}

// Set always fails with ErrWriteNotSupported.
func (r Row) Set(Key, string) error {
	return ErrWriteNotSupported
}

// Delete always fails with ErrWriteNotSupported.
func (r Row) Delete(Key) error {
	return ErrWriteNotSupported
}

func (r Row) lookup(k Key) (int, bool) {
	if r.proj == nil {
		return k.pos, !k.named && k.pos >= 0 && k.pos < len(r.values)
	}
	return r.proj.lookup(k, len(r.values))
}

func (r Row) keyAt(pos int) Key {
	if r.proj == nil {
		return Pos(pos)
	}
	return r.proj.keyAt(pos)
}
