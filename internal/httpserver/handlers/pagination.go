package handlers

import (
	"strconv"

	"robotdemo/internal/robot"
)

// ParsePage reads the page query value; absent, malformed or non-positive
// values mean page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Nav is the navigation block for a paginated listing.
type Nav struct {
	Prev  *int  `json:"prev"`
	Next  *int  `json:"next"`
	Pages []int `json:"pages"`
}

// NewNav returns nil when everything fits on one page.
func NewNav(p robot.Page) *Nav {
	if p.TotalPages <= 1 {
		return nil
	}
	nav := &Nav{Pages: make([]int, 0, p.TotalPages)}
	for i := 1; i <= p.TotalPages; i++ {
		nav.Pages = append(nav.Pages, i)
	}
	if p.CurrentPage > 1 {
		prev := p.CurrentPage - 1
		nav.Prev = &prev
	}
	if p.CurrentPage < p.TotalPages {
		next := p.CurrentPage + 1
		nav.Next = &next
	}
	return nav
}

type pageResponse struct {
	robot.Page
	Nav *Nav `json:"nav,omitempty"`
}
