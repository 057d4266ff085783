package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/adrift-app/adrift/internal/projection"
)

var errInvalidTrailFilter = errors.New("filter must be one of all, created, found, retossed")

// TrailQueryParams holds query parameters for GET /trail
type TrailQueryParams struct {
	Filter   projection.TrailFilter `form:"filter,default=all"`
	Username string                 `form:"username"`
}

// Validate validates the query parameters
func (p *TrailQueryParams) Validate() error {
	if !projection.IsValidTrailFilter(p.Filter) {
		return errInvalidTrailFilter
	}
	return nil
}

// ParseTrailQuery parses query parameters for GET /trail
func ParseTrailQuery(c *gin.Context) (*TrailQueryParams, error) {
	var params TrailQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Filter == "" {
		params.Filter = projection.TrailFilterAll
	}
	return &params, nil
}

// StatsQueryParams holds query parameters for GET /users/:username/stats
type StatsQueryParams struct {
	Verify bool `form:"verify,default=false"`
}

// ParseStatsQuery parses query parameters for GET /users/:username/stats
func ParseStatsQuery(c *gin.Context) (*StatsQueryParams, error) {
	var params StatsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}
