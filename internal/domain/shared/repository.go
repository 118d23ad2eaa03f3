package shared

// Page holds limit/offset paging for list queries
type Page struct {
	Limit  int
	Offset int
}

// DefaultPageLimit is used when a caller does not supply a limit
const DefaultPageLimit = 20

// NewPage normalises limit and offset. A non-positive limit falls back to
// DefaultPageLimit, a limit above max is clamped, a negative offset becomes 0.
func NewPage(limit, offset, max int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if max > 0 && limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
