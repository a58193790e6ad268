package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPageLimit is used when the limit query parameter is absent.
	DefaultPageLimit = 50
	// MaxPageLimit is the largest limit a client may request.
	MaxPageLimit = 100
)

// ParsePagination reads the offset and limit query parameters. offset defaults to 0 and
// limit to DefaultPageLimit; limit must lie in [1, MaxPageLimit].
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, ok = queryInt(c, "limit", DefaultPageLimit)
	if !ok || limit < 1 || limit > MaxPageLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxPageLimit)
	}

	return offset, limit, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw, present := c.GetQuery(key)
	if !present {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
