package csvdoc

import (
	"math"
	"strings"
)

const utf8BOM = "\ufeff"

// headerResolver turns physical row 0 into field names when header mode is on.
// The header keeps its physical index, so data rows start at index 1 and the
// header index itself is never addressable.
type headerResolver struct {
	enabled  bool
	resolved bool
	names    []string
}

// resolve reads the header row once. An empty source yields no names.
func (h *headerResolver) resolve(c *controller) error {
	if !h.enabled || h.resolved {
		return nil
	}
	if err := c.parseUpTo(1); err != nil {
		return err
	}
	if len(c.rows) > 0 {
		h.names = make([]string, len(c.rows[0]))
		for i, name := range c.rows[0] {
			if i == 0 {
				name = strings.TrimPrefix(name, utf8BOM)
			}
			h.names[i] = strings.TrimSpace(name)
		}
	}
	h.resolved = true
	c.logger.Debug("csvdoc: header resolved", "names", h.names)
	return nil
}

// offset is the number of leading physical rows that are not data rows.
func (h *headerResolver) offset() int {
	if h.enabled {
		return 1
	}
	return 0
}

// addressable reports whether physical index i may hold a data row.
func (h *headerResolver) addressable(i int) bool {
	return i >= h.offset()
}

// physical converts a count of data rows to a count of physical rows.
func (h *headerResolver) physical(n int) int {
	if n > math.MaxInt-h.offset() {
		return math.MaxInt
	}
	return n + h.offset()
}

// data converts a count of physical rows to a count of data rows.
func (h *headerResolver) data(n int) int {
	return max(n-h.offset(), 0)
}
