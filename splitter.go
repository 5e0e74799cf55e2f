package csvdoc

import (
	"bytes"
	"io"
	"strings"
)

// Split parses text holding exactly one CSV record into its fields.
// Quoted fields may contain the delimiter, line breaks, and doubled quotes.
// A trailing record terminator is optional. Empty text yields a nil record.
func Split(text string, comma, quote byte) ([]string, error) {
	c := newCursor(strings.NewReader(text), comma, quote, false)
	record, err := c.next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := c.next(); err != io.EOF {
		if err == nil {
			err = &ParseError{Line: c.line, Column: 1, Err: ErrTrailingData}
		}
		return nil, err
	}
	return record, nil
}

// splitter assembles one record from the physical lines handed to it by the cursor.
// It keeps the quote state between lines so a quoted field may span several of them.
type splitter struct {
	comma  byte
	quote  byte
	strict bool

	record   []string
	field    []byte
	begun    bool
	inQuotes bool
	quoted   bool
	lastLen  int
}

func newSplitter(comma, quote byte, strict bool) splitter {
	if comma == 0 {
		comma = ','
	}
	if quote == 0 {
		quote = '"'
	}
	return splitter{
		comma:  comma,
		quote:  quote,
		strict: strict,
		field:  make([]byte, 0, 64),
	}
}

// reset prepares the splitter for the next record. The previous record slice is
// handed out to the caller, so a fresh one is started.
func (s *splitter) reset() {
	s.record = nil
	s.field = s.field[:0]
	s.begun = false
	s.inQuotes = false
	s.quoted = false
	s.lastLen = 0
}

// feed consumes one physical line without its terminator. term is the terminator
// that ended the line ("" at EOF); it becomes part of the field when the line ends
// inside quotes. feed reports whether the record is complete.
func (s *splitter) feed(content []byte, term string, line int) (bool, error) {
	s.begun = true
	s.lastLen = len(content)

	for i := 0; i < len(content); i++ {
		b := content[i]

		if s.inQuotes {
			if b == s.quote {
				// Double quote inside quotes represents an escaped quote.
				if i+1 < len(content) && content[i+1] == s.quote {
					s.field = append(s.field, s.quote)
					i++
					continue
				}
				s.inQuotes = false
				continue
			}
			// Copy the plain run up to the next quote in one step.
			run := bytes.IndexByte(content[i:], s.quote)
			if run < 0 {
				run = len(content) - i
			}
			s.field = append(s.field, content[i:i+run]...)
			i += run - 1
			continue
		}

		switch b {
		case s.comma:
			s.endField()
		case s.quote:
			// A quote starts a quoted field only if nothing was buffered for the field yet.
			if len(s.field) == 0 && !s.quoted {
				s.inQuotes = true
				s.quoted = true
				continue
			}
			if s.strict {
				return false, &ParseError{Line: line, Column: i + 1, Err: ErrBareQuote}
			}
			s.field = append(s.field, b)
		default:
			run := 1
			for run < len(content)-i {
				c := content[i+run]
				if c == s.comma || c == s.quote {
					break
				}
				run++
			}
			s.field = append(s.field, content[i:i+run]...)
			i += run - 1
		}
	}

	if s.inQuotes {
		s.field = append(s.field, term...)
		return false, nil
	}
	s.endField()
	return true, nil
}

// finish is called at EOF for a record that is still open.
func (s *splitter) finish(line int) ([]string, error) {
	if s.inQuotes {
		return nil, &ParseError{Line: line, Column: s.lastLen + 1, Err: ErrUnterminatedQuote}
	}
	s.endField()
	return s.record, nil
}

func (s *splitter) endField() {
	s.record = append(s.record, string(s.field))
	s.field = s.field[:0]
	s.quoted = false
}
