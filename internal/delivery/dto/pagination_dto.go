package dto

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ListResult is a page of items plus the total count before pagination.
type ListResult[T any] struct {
	Items  []T
	Total  int64
	Limit  int
	Offset int
}

// PageLimit resolves an optional limit to the default window size.
func PageLimit(limit *int) int {
	if limit == nil || *limit <= 0 {
		return DefaultPageLimit
	}
	if *limit > MaxPageLimit {
		return MaxPageLimit
	}
	return *limit
}

type PageRequest struct {
	Limit  *int `schema:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int  `schema:"offset" validate:"gte=0"`
}
