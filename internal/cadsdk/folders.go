package cadsdk

import (
	"context"
	"fmt"
)

type folderNodesResponse struct {
	Items []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ResourceType string `json:"resourceType"`
	} `json:"items"`
}

// ListFolderEntries lists the documents and sub-folders directly inside a folder.
func (c *Client) ListFolderEntries(ctx context.Context, folderID string) ([]FolderEntry, error) {
	var result folderNodesResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(fmt.Sprintf("/api/%s/globaltreenodes/folder/%s", apiVersion, folderID))

	if err := handleAPIError(res, err, "list folder "+folderID); err != nil {
		return nil, err
	}

	entries := make([]FolderEntry, 0, len(result.Items))
	for _, item := range result.Items {
		var kind EntryKind
		switch item.ResourceType {
		case "document":
			kind = EntryKindDocument
		case "folder":
			kind = EntryKindFolder
		default:
			continue // projects, publications etc. are not syncable
		}
		entries = append(entries, FolderEntry{ID: item.ID, Name: item.Name, Kind: kind})
	}
	return entries, nil
}
