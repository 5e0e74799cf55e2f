package csvdoc

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/afero"
)

// Options configures a Document. Zero values select the defaults.
type Options struct {
	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// Header makes the first physical row the source of field names.
	Header bool
	// Fields is applied over the header names, if any.
	Fields FieldMap
	// StrictQuotes rejects quotes inside unquoted fields instead of keeping them literally.
	StrictQuotes bool
	// Logger receives debug events about parsing progress. Default discards them.
	Logger *slog.Logger
}

// Document is a read-only, lazily parsed CSV document.
//
// Rows are addressed by their physical index in the source. In header mode
// index 0 holds the header and is never returned as a row.
//
// A Document is not safe for concurrent use.
type Document struct {
	ctl    *controller
	header headerResolver
	closer io.Closer

	layers []FieldMap
	proj   *projection
	err    error
}

// New creates a Document over src, panicking if src is nil. Nothing is read
// from src until a row, the size, or the header names are requested.
func New(src io.Reader, opts Options) *Document {
	if src == nil {
		panic("csvdoc: document source cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Document{
		ctl:    newController(newCursor(src, opts.Comma, opts.Quote, opts.StrictQuotes), logger),
		header: headerResolver{enabled: opts.Header},
	}
	if len(opts.Fields) > 0 {
		d.layers = append(d.layers, slices.Clone(opts.Fields))
	}
	return d
}

// Open opens name on fsys and returns a Document reading it. Close releases the file.
func Open(fsys afero.Fs, name string, opts Options) (*Document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("csvdoc: open %s: %w", name, err)
	}
	d := New(f, opts)
	d.closer = f
	return d, nil
}

// Close releases the source. Rows parsed so far remain readable; anything that
// needs more of the source fails with ErrClosed.
func (d *Document) Close() error {
	d.ctl.close()
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// Get returns the row at index i, parsing as far as needed.
// It fails with ErrRowNotFound when i is the header index or lies past the end
// of the source.
func (d *Document) Get(i int) (Row, error) {
	proj, err := d.projection()
	if err != nil {
		return Row{}, err
	}
	if !d.header.addressable(i) {
		return Row{}, rowNotFound(i)
	}
	values, err := d.ctl.rowAt(i)
	if err != nil {
		return Row{}, err
	}
	return Row{values: values, proj: proj}, nil
}

// Has reports whether a row exists at index i.
func (d *Document) Has(i int) bool {
	_, err := d.Get(i)
	return err == nil
}

// Size returns the number of data rows. It reads the whole source.
func (d *Document) Size() (int, error) {
	if err := d.header.resolve(d.ctl); err != nil {
		return 0, err
	}
	n, err := d.ctl.count()
	if err != nil {
		return 0, err
	}
	return d.header.data(n), nil
}

// ParseUpTo ensures the first n data rows are cached, or all of them when the
// source holds fewer. Callers wanting bounded work use it instead of Size.
func (d *Document) ParseUpTo(n int) error {
	if err := d.header.resolve(d.ctl); err != nil {
		return err
	}
	return d.ctl.parseUpTo(d.header.physical(n))
}

// ParseAll reads the whole source.
func (d *Document) ParseAll() error {
	return d.ctl.parseAll()
}

// Parsed returns the number of data rows cached so far without reading more.
func (d *Document) Parsed() int {
	return d.header.data(len(d.ctl.rows))
}

// State reports how far the source has been read.
func (d *Document) State() State {
	return d.ctl.state()
}

// Names returns the field names keyed by position. Unnamed positions are absent.
func (d *Document) Names() (map[int]string, error) {
	proj, err := d.projection()
	if err != nil {
		return nil, err
	}
	return maps.Clone(proj.names), nil
}

// MapFields layers m over the current field names. Rows returned afterwards,
// including rows parsed earlier, use the new names; their values are unchanged.
func (d *Document) MapFields(m FieldMap) {
	d.layers = append(d.layers, slices.Clone(m))
	d.proj = nil
}

// ResetFields drops every field map, leaving only the header names, if any.
func (d *Document) ResetFields() {
	d.layers = nil
	d.proj = nil
}

// All yields the data rows in order, parsing lazily. Iteration stops at the end
// of the source or at the first error, which Err then reports.
func (d *Document) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		d.err = nil
		for i := d.header.offset(); ; i++ {
			row, err := d.Get(i)
			if errors.Is(err, ErrRowNotFound) {
				return
			}
			if err != nil {
				d.err = err
				return
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

// Err returns the error that stopped the last iteration, if any.
func (d *Document) Err() error {
	return d.err
}

// Set always fails with ErrWriteNotSupported.
func (d *Document) Set(int, Row) error {
	return ErrWriteNotSupported
}

// Delete always fails with ErrWriteNotSupported.
func (d *Document) Delete(int) error {
	return ErrWriteNotSupported
}

// projection returns the active projection, resolving the header first.
func (d *Document) projection() (*projection, error) {
	if d.proj != nil {
		return d.proj, nil
	}
	if err := d.header.resolve(d.ctl); err != nil {
		return nil, err
	}
	proj := headerProjection(d.header.names)
	for _, m := range d.layers {
		proj = proj.apply(m)
	}
	d.proj = proj
	return proj, nil
}
