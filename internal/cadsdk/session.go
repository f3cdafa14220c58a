package cadsdk

import (
	"context"
	"fmt"
)

// SessionInfo identifies the authenticated user.
type SessionInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetSessionInfo verifies connectivity and credentials against a lightweight
// endpoint.
func (c *Client) GetSessionInfo(ctx context.Context) (*SessionInfo, error) {
	var result SessionInfo
	res, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(fmt.Sprintf("/api/%s/users/sessioninfo", apiVersion))

	if err := handleAPIError(res, err, "session info"); err != nil {
		return nil, err
	}
	return &result, nil
}
