package pkg

// Pagination is the envelope metadata every list endpoint returns.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Records int64 `json:"records"`
	Pages   int64 `json:"pages"`
}

type Page[T any] struct {
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ClampPage normalizes raw page/limit query values.
func ClampPage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// NewPage wraps data with computed pagination metadata.
func NewPage[T any](data []T, page, limit int, records int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := (records + int64(limit) - 1) / int64(limit)
	return Page[T]{
		Pagination: Pagination{
			Current: page,
			Limit:   limit,
			Records: records,
			Pages:   pages,
		},
		Data: data,
	}
}

// Offset converts a clamped page/limit to a query offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
