package csvdoc

import (
	"bytes"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// cursor pulls physical lines from src and hands them to the splitter until a
// record is complete. It is forward-only: once next returns io.EOF it keeps
// returning io.EOF.
type cursor struct {
	src io.Reader
	sp  splitter

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	scratch  []byte
	finished bool
	line     int
}

func newCursor(src io.Reader, comma, quote byte, strict bool) *cursor {
	return &cursor{
		src:     src,
		sp:      newSplitter(comma, quote, strict),
		buf:     make([]byte, defaultBufferSize),
		scratch: make([]byte, 0, 256),
	}
}

// next returns the fields of the next logical record. Blank physical lines
// between records are skipped.
func (c *cursor) next() ([]string, error) {
	if c.finished {
		return nil, io.EOF
	}

	c.sp.reset()
	for {
		content, term, err := c.readLine()
		if err == io.EOF {
			c.finished = true
			if c.sp.begun {
				// Data ended inside a quoted field.
				return c.sp.finish(c.line)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		c.line++

		if !c.sp.begun && len(content) == 0 {
			continue
		}
		done, err := c.sp.feed(content, term, c.line)
		if err != nil {
			return nil, err
		}
		if done {
			return c.sp.record, nil
		}
	}
}

// readLine returns the next physical line and the terminator that ended it.
// "\n", "\r\n" and a lone "\r" all end a line; the last line may have none.
// The returned slice is only valid until the next call.
func (c *cursor) readLine() ([]byte, string, error) {
	c.scratch = c.scratch[:0]

	for {
		if c.bufPos >= c.bufLen {
			if err := c.fill(); err != nil {
				if err == io.EOF && len(c.scratch) > 0 {
					return c.scratch, "", nil
				}
				return nil, "", err
			}
		}

		// Locate the closest line terminator within the buffered bytes.
		data := c.buf[c.bufPos:c.bufLen]
		idx := bytes.IndexAny(data, "\r\n")
		if idx < 0 {
			c.scratch = append(c.scratch, data...)
			c.bufPos = c.bufLen
			continue
		}

		c.scratch = append(c.scratch, data[:idx]...)
		c.bufPos += idx + 1
		if data[idx] == '\n' {
			return c.scratch, "\n", nil
		}

		// Support CRLF by peeking ahead for '\n' and consuming it together.
		next, err := c.peekByte()
		if err == nil && next == '\n' {
			c.bufPos++
			return c.scratch, "\r\n", nil
		}
		if err != nil && err != io.EOF {
			return nil, "", err
		}
		return c.scratch, "\r", nil
	}
}

// fill pulls the next chunk from src. Read errors, io.EOF included, are sticky.
func (c *cursor) fill() error {
	for {
		if c.bufErr != nil {
			return c.bufErr
		}
		n, err := c.src.Read(c.buf)
		c.bufPos = 0
		c.bufLen = n
		c.bufErr = err
		if n > 0 {
			return nil
		}
	}
}

// peekByte returns the next buffered byte (refilling from src as needed) and propagates any read error.
func (c *cursor) peekByte() (byte, error) {
	if c.bufPos < c.bufLen {
		return c.buf[c.bufPos], nil
	}
	if err := c.fill(); err != nil {
		return 0, err
	}
	return c.buf[c.bufPos], nil
}
