// Package pagination provides limit/offset paging for list endpoints.
package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// DefaultLimit is the page size used when a request does not specify one.
// Startup overrides it from the PAGE_SIZE config via SetDefaultLimit.
var DefaultLimit = 10

// SetDefaultLimit sets the fallback page size. Values outside (0, MaxLimit]
// are ignored. Call once during startup, before serving requests.
func SetDefaultLimit(n int) {
	if n > 0 && n <= MaxLimit {
		DefaultLimit = n
	}
}

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Response wraps a paginated API response.
type Response struct {
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
}

func NewResponse(data interface{}, total, limit, offset int) *Response {
	return &Response{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// SQL returns the LIMIT and OFFSET clause for SQL queries.
func (p Params) SQL() string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}
