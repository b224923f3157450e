// internal/utils/limit.go
package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseLimit reads the optional ?limit= query parameter. A missing value
// falls back to defaultLimit; a non-numeric value or one outside [1, max]
// is rejected here so out-of-range bounds never reach the rankers.
func ParseLimit(c *gin.Context, defaultLimit, max int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer")
	}

	if limit < 1 || limit > max {
		return 0, fmt.Errorf("limit must be between 1 and %d", max)
	}

	return limit, nil
}

// ParseDays reads the optional ?days= query parameter; 0 means "use the
// configured default". Negative or non-numeric values are rejected.
func ParseDays(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("days must be a positive integer")
	}

	return days, nil
}
