package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDateRange reads optional from/to query parameters in YYYY-MM-DD form
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date, expected YYYY-MM-DD", name)
	}
	return &t, nil
}

// parseDateQueryRequired reads a mandatory date query parameter
func parseDateQueryRequired(c *gin.Context, name string) (time.Time, error) {
	t, err := parseDateQuery(c, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("missing %s date", name)
	}
	return *t, nil
}
