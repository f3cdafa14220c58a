package cadsdk

import (
	"context"
	"fmt"
)

type documentInfoResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DefaultWorkspace struct {
		ID string `json:"id"`
	} `json:"defaultWorkspace"`
}

type workspaceInfoResponse struct {
	Microversion string `json:"microversion"`
}

// ResolveDefaultWorkspace returns the id of a document's default workspace.
func (c *Client) ResolveDefaultWorkspace(ctx context.Context, documentID string) (string, error) {
	var result documentInfoResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(fmt.Sprintf("/api/%s/documents/%s", apiVersion, documentID))

	if err := handleAPIError(res, err, "get document "+documentID); err != nil {
		return "", err
	}
	if result.DefaultWorkspace.ID == "" {
		return "", fmt.Errorf("document %s has no default workspace", documentID)
	}
	return result.DefaultWorkspace.ID, nil
}

// GetWorkspaceVersion returns the current microversion of a document workspace.
// This is a lightweight lookup that fetches no element content.
func (c *Client) GetWorkspaceVersion(ctx context.Context, documentID, workspaceID string) (string, error) {
	var result workspaceInfoResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(fmt.Sprintf("/api/%s/documents/d/%s/w/%s", apiVersion, documentID, workspaceID))

	if err := handleAPIError(res, err, "get workspace version "+documentID); err != nil {
		return "", err
	}
	return result.Microversion, nil
}

// ListElements lists the elements in a document workspace, optionally filtered
// by element kind (e.g. ElementKindFeatureStudio).
func (c *Client) ListElements(ctx context.Context, documentID, workspaceID, kindFilter string) ([]Element, error) {
	var result []Element
	r := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result)
	if kindFilter != "" {
		r.SetQueryParam("elementType", kindFilter)
	}
	res, err := r.Get(fmt.Sprintf("/api/%s/documents/d/%s/w/%s/elements", apiVersion, documentID, workspaceID))

	if err := handleAPIError(res, err, "list elements "+documentID); err != nil {
		return nil, err
	}
	return result, nil
}
