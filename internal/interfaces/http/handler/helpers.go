package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gomu/backend/internal/domain/shared"
)

// parseIDParam reads an int64 ID from a path parameter
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewDomainError("INVALID_ID", "ID must be a positive integer")
	}
	return id, nil
}

// queryInt64 reads an optional int64 query parameter
func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUERY", name+" must be an integer")
	}
	return &value, nil
}

// queryBool reads an optional bool query parameter
func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUERY", name+" must be a boolean")
	}
	return &value, nil
}

// queryDate reads an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUERY", name+" must be a date in YYYY-MM-DD format")
	}
	return &value, nil
}

// pagination reads page/page_size query parameters with defaults
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
