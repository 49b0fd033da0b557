package client

import (
	"context"
	"net/http"

	"github.com/darmiel/vouch/internal/api"
)

// Info returns the build information and trust summary of the server.
func (c *Client) Info(ctx context.Context) (*api.AboutResponse, string, error) {
	var about api.AboutResponse
	correlation, err := c.call(ctx, http.MethodGet, api.AboutRoute, nil, &about)
	if err != nil {
		return nil, correlation, err
	}
	return &about, correlation, nil
}
