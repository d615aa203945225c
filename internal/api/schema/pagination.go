package schema

// PaginatedResponse represents a unified paginated API response
type PaginatedResponse[T any] struct {
	Pagination *PaginationMetadata `json:"pagination"`
	Data       []T                 `json:"data"`
}

// PaginationMetadata represents the metadata present in a PaginatedResponse
type PaginationMetadata struct {
	Offset        uint64 `json:"offset"`
	Limit         uint64 `json:"limit"`
	TotalCount    uint64 `json:"total_count"`
	IncludedCount int    `json:"included_count"`
}

// Paginate cuts the requested page out of all and wraps it into a unified paginated API response
func Paginate[T any](offset, limit uint64, all []T) *PaginatedResponse[T] {
	total := uint64(len(all))
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total || end < start {
		end = total
	}
	page := make([]T, 0, end-start)
	page = append(page, all[start:end]...)

	return &PaginatedResponse[T]{
		Pagination: &PaginationMetadata{
			Offset:        offset,
			Limit:         limit,
			TotalCount:    total,
			IncludedCount: len(page),
		},
		Data: page,
	}
}
