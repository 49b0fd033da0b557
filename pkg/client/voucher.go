package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/darmiel/vouch/internal/api"
)

// VerifyVoucher asks the server to verify a voucher.
// An invalid voucher is not an error; check Result.Valid of the response.
func (c *Client) VerifyVoucher(ctx context.Context, voucher string) (*api.VerifyResponse, string, error) {
	var resp api.VerifyResponse
	correlation, err := c.call(ctx, http.MethodPost, api.VerifyVoucherRoute, api.VerifyPayload{Voucher: voucher}, &resp)
	if err != nil {
		return nil, correlation, fmt.Errorf("verifying voucher: %w", err)
	}
	if resp.Result == nil {
		return nil, correlation, fmt.Errorf("verifying voucher: response carries no result")
	}
	return &resp, correlation, nil
}

// ListIssuers returns the issuers and audiences the server trusts.
func (c *Client) ListIssuers(ctx context.Context) (*api.IssuersResponse, string, error) {
	var resp api.IssuersResponse
	correlation, err := c.call(ctx, http.MethodGet, api.ListIssuersRoute, nil, &resp)
	if err != nil {
		return nil, correlation, fmt.Errorf("listing issuers: %w", err)
	}
	return &resp, correlation, nil
}
