package model

// Page is one slice of a paginated result.  Pages are zero based and
// TotalPages is ceil(TotalElements / Size).
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Size          int   `json:"size"`
}

// NewPage assembles a page and derives TotalPages.  size must be positive.
func NewPage[T any](content []T, total int64, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		CurrentPage:   page,
		Size:          size,
	}
}
