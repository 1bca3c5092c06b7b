package mosaic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// WhoAmI verifies the configured API key against GET /whoami and returns
// the raw account payload. 401 and 403 surface as *APIError so the caller
// can tell a revoked key from a permissions problem.
func (c *Client) WhoAmI(ctx context.Context) (json.RawMessage, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/whoami", nil)
	if err != nil {
		return nil, fmt.Errorf("auth check failed: %w", err)
	}
	if status < 200 || status > 299 {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	if len(body) == 0 {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(body), nil
}
