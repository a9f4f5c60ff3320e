package params

import (
	"strconv"
	"strings"

	"group-scheduler/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	return &QueryParams{
		PageNumber: parsePositive(c.QueryParam("page_number"), constants.DefaultPageNumber),
		PageSize:   clampPageSize(parsePositive(c.QueryParam("page_size"), constants.DefaultPageSize)),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

// Offset returns the SQL offset for the current page.
func (p QueryParams) Offset() int {
	if p.PageNumber < 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func clampPageSize(n int) int {
	if n > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return n
}
