package cadsdk

import (
	"context"
	"fmt"
)

// GetStudioContent fetches a feature studio's source and the workspace
// microversion it was read at.
func (c *Client) GetStudioContent(ctx context.Context, documentID, workspaceID, elementID string) (*StudioContent, error) {
	var result StudioContent
	res, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(c.studioPath(documentID, workspaceID, elementID))

	if err := handleAPIError(res, err, "get studio "+elementID); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStudioContent replaces a feature studio's source and returns the new
// workspace microversion.
func (c *Client) UpdateStudioContent(ctx context.Context, documentID, workspaceID, elementID, contents string) (string, error) {
	var result StudioContent
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"contents": contents}).
		SetSuccessResult(&result).
		Post(c.studioPath(documentID, workspaceID, elementID))

	if err := handleAPIError(res, err, "update studio "+elementID); err != nil {
		return "", err
	}
	return result.Microversion, nil
}

func (c *Client) studioPath(documentID, workspaceID, elementID string) string {
	return fmt.Sprintf("/api/%s/featurestudios/d/%s/w/%s/e/%s/featurestudiocontents",
		apiVersion, documentID, workspaceID, elementID)
}
