package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/constants"
)

type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination clamps instead of failing: page < 1 becomes 1,
// pageSize < 1 becomes the default, and page and pageSize above their
// maximums are capped.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and limit (page_size is accepted as an alias).
// Unparseable values are treated as absent.
func ParsePagination(c *gin.Context) Pagination {
	page := queryInt(c, "page", constants.DefaultPage)
	size := queryInt(c, "limit", 0)
	if size == 0 {
		size = queryInt(c, "page_size", constants.DefaultPageSize)
	}
	return ValidatePagination(page, size)
}

func queryInt(c *gin.Context, key string, defaultVal int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// TotalPages is ceil(total/pageSize); an empty result has zero pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
