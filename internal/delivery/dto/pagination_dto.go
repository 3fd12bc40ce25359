package dto

// Page size bounds shared by every list endpoint
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageQuery is a normalized 1-based page request.
type PageQuery struct {
	Page  int
	Limit int
}

// NewPageQuery clamps raw query values: page defaults to 1, limit to
// defaultLimit, and limit never exceeds MaxPageLimit.
func NewPageQuery(page, limit, defaultLimit int) PageQuery {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageQuery{Page: page, Limit: limit}
}
