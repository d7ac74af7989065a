package request

// ReviewPageSize is the fixed page size for review listings
const ReviewPageSize = 5

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return ReviewPageSize
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
