package query

// Pagination bounds. Limit is clamped rather than rejected when it exceeds
// MaxLimit; negatives are rejected outright.
const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Page is an offset/limit pair, always bound as the last two positional
// parameters of a compiled query.
type Page struct {
	Offset int64
	Limit  int64
}

// NewPage validates and normalizes caller-supplied pagination. A zero limit
// means the default page size.
func NewPage(offset, limit int64) (Page, error) {
	if offset < 0 {
		return Page{}, Validationf("offset must be non-negative, got %d", offset)
	}
	if limit < 0 {
		return Page{}, Validationf("limit must be non-negative, got %d", limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Offset: offset, Limit: limit}, nil
}
