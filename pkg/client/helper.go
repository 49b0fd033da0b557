package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/darmiel/vouch/internal/api/middleware"
	"github.com/darmiel/vouch/internal/api/presenter"
	"github.com/darmiel/vouch/internal/buildinfo"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

var (
	// ErrInvalidRequest is matched by APIErrors for requests the server rejected
	// as malformed. An invalid voucher is not one of them.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrVoucherTooLarge is matched by APIErrors for request bodies over the
	// server's size limit.
	ErrVoucherTooLarge = errors.New("voucher too large")
)

// APIError is returned for every response with a status of 400 or above.
type APIError struct {
	StatusCode    int
	CorrelationID string
	Message       string
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error: '%s' (status: %d, correlation: %s)", e.Message, e.StatusCode, e.CorrelationID)
}

func (e APIError) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrVoucherTooLarge:
		return e.StatusCode == http.StatusRequestEntityTooLarge
	}
	return false
}

// newAPIError decodes a presenter.ErrorResponse from resp. Bodies that are not
// one are kept, shortened, as the message.
func newAPIError(resp *http.Response) APIError {
	apiErr := APIError{
		StatusCode:    resp.StatusCode,
		CorrelationID: correlationFromResponse(resp),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Message = fmt.Sprintf("%s (unreadable body: %v)", http.StatusText(resp.StatusCode), err)
		return apiErr
	}

	var errResp presenter.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		if errResp.CorrelationID != "" {
			apiErr.CorrelationID = errResp.CorrelationID
		}
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message += ": " + text
	}
	return apiErr
}

// call sends payload (if any) as JSON to route and decodes the response into
// result (if any). It returns the correlation id of the exchange.
func (c *Client) call(ctx context.Context, method, route string, payload, result any) (string, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url().setPath(route).build(), body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		apiErr := newAPIError(resp)
		return apiErr.CorrelationID, apiErr
	}

	correlation := correlationFromResponse(resp)
	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return correlation, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return correlation, nil
}

func correlationFromResponse(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	return resp.Header.Get(middleware.CorrelationIDHeader)
}
