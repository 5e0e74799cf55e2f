// # csvdoc: A Lazily Parsed, Read-Only CSV Document for Go
//
// csvdoc exposes CSV text as a read-only, array-like Document. Rows are parsed on demand
// through a resumable cursor, cached by position, and projected through a replaceable field
// map into immutable Row views with both positional and named lookup.
//
// # Features
//
// - Lazy parsing: `Document.Get`, `Document.ParseUpTo` and `Document.Size` parse only as far as they must.
// - Custom field and quote separators, quoted fields with embedded delimiters and newlines, doubled-quote escapes.
// - Header mode: the first physical row becomes the field names and is never addressable as a data row.
// - Field maps (`Names`, `Rename`) layered over header names without touching cached values.
// - Structured error reporting via `ParseError`, `ErrMalformedRow`, `ErrRowNotFound`, `ErrFieldNotFound`, and `ErrWriteNotSupported`.
//
// # Concurrency
//
// A Document is not safe for concurrent use. Guard it with a mutex when sharing it between goroutines.
//
// # Getting Started
//
//	doc := csvdoc.New(strings.NewReader("id;title\n1;Go\n"), csvdoc.Options{Comma: ';', Header: true})
//	row, err := doc.Get(1)
//	if err != nil {
//		// handle error
//	}
//	title, _ := row.Get(csvdoc.Name("title"))
package csvdoc
