package csvdoc

import (
	"io"
	"log/slog"
	"math"
)

// State describes how far a Document has read its source.
type State int

const (
	// Unparsed means no record has been read yet.
	Unparsed State = iota
	// PartiallyParsed means some records are cached and more may follow.
	PartiallyParsed
	// Complete means the source is exhausted and the cache is final.
	Complete
)

func (s State) String() string {
	switch s {
	case Unparsed:
		return "unparsed"
	case PartiallyParsed:
		return "partially parsed"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// controller owns the cursor and the cache of parsed physical rows.
// The cache only grows and a cached row is never parsed again.
type controller struct {
	cur    *cursor
	rows   [][]string
	done   bool
	err    error
	logger *slog.Logger
}

func newController(cur *cursor, logger *slog.Logger) *controller {
	return &controller{
		cur:    cur,
		rows:   make([][]string, 0, 16),
		logger: logger,
	}
}

func (c *controller) state() State {
	switch {
	case c.done:
		return Complete
	case len(c.rows) == 0:
		return Unparsed
	}
	return PartiallyParsed
}

// parseUpTo ensures physical rows 0..n-1 are cached, stopping early when the
// source runs out. A malformed record or read error stops parsing for good and
// is returned by every later call that needs rows past it.
func (c *controller) parseUpTo(n int) error {
	before := len(c.rows)
	for len(c.rows) < n && !c.done {
		if c.err != nil {
			return c.err
		}
		record, err := c.cur.next()
		if err == io.EOF {
			c.done = true
			c.logger.Debug("csvdoc: source exhausted", "rows", len(c.rows))
			break
		}
		if err != nil {
			c.err = err
			c.logger.Debug("csvdoc: record failed", "row", len(c.rows), "error", err)
			return err
		}
		c.rows = append(c.rows, record)
	}
	if len(c.rows) > before {
		c.logger.Debug("csvdoc: rows cached", "from", before, "to", len(c.rows))
	}
	return nil
}

// parseAll reads the source to the end.
func (c *controller) parseAll() error {
	for !c.done {
		if err := c.parseUpTo(len(c.rows) + 64); err != nil {
			return err
		}
	}
	return nil
}

// count returns the number of physical rows in the source, reading it to the end first.
func (c *controller) count() (int, error) {
	if err := c.parseAll(); err != nil {
		return 0, err
	}
	return len(c.rows), nil
}

// rowAt returns the raw values of physical row i.
func (c *controller) rowAt(i int) ([]string, error) {
	if i < 0 {
		return nil, rowNotFound(i)
	}
	if i >= len(c.rows) && !c.done {
		if err := c.parseUpTo(nextCount(i)); err != nil {
			return nil, err
		}
	}
	if i >= len(c.rows) {
		return nil, rowNotFound(i)
	}
	return c.rows[i], nil
}

// nextCount returns i+1, saturating at math.MaxInt.
func nextCount(i int) int {
	if i == math.MaxInt {
		return i
	}
	return i + 1
}

// close stops any further reading. Cached rows stay available.
func (c *controller) close() {
	if !c.done && c.err == nil {
		c.err = ErrClosed
	}
}
