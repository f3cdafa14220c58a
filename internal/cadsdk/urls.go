package cadsdk

import (
	"fmt"
	"net/url"
	"regexp"
)

// URLKind is the resource type a platform URL points at.
type URLKind string

const (
	URLKindDocument URLKind = "document"
	URLKindFolder   URLKind = "folder"
	URLKindElement  URLKind = "element"
)

// ParsedURL holds the addressing components extracted from a platform URL.
// Absent components are empty strings.
type ParsedURL struct {
	BaseURL     string
	Kind        URLKind
	DocumentID  string
	WorkspaceID string
	ElementID   string
	FolderID    string
}

var (
	folderRe    = regexp.MustCompile(`/documents/folder/([a-zA-Z0-9_-]+)`)
	documentRe  = regexp.MustCompile(`/documents/d/([a-zA-Z0-9_-]+)`)
	workspaceRe = regexp.MustCompile(`/w/([a-zA-Z0-9_-]+)`)
	elementRe   = regexp.MustCompile(`/e/([a-zA-Z0-9_-]+)`)
)

// ParseURL extracts document/workspace/element/folder ids from a platform URL.
//
// Supported forms:
//
//	https://host/documents/d/{docId}[/w/{wsId}[/e/{elemId}]]
//	https://host/documents/folder/{folderId}
func ParseURL(rawURL string) (*ParsedURL, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url: %q", rawURL)
	}

	parsed := &ParsedURL{
		BaseURL: u.Scheme + "://" + u.Host,
	}

	if m := folderRe.FindStringSubmatch(u.Path); m != nil {
		parsed.Kind = URLKindFolder
		parsed.FolderID = m[1]
		return parsed, nil
	}

	if m := documentRe.FindStringSubmatch(u.Path); m != nil {
		parsed.DocumentID = m[1]
		parsed.Kind = URLKindDocument
		if m := workspaceRe.FindStringSubmatch(u.Path); m != nil {
			parsed.WorkspaceID = m[1]
		}
		if m := elementRe.FindStringSubmatch(u.Path); m != nil {
			parsed.ElementID = m[1]
			parsed.Kind = URLKindElement
		}
		return parsed, nil
	}

	return nil, fmt.Errorf("unrecognized platform url: %q", rawURL)
}

// BuildDocumentURL constructs a browser URL to a document workspace, and
// optionally an element within it.
func BuildDocumentURL(base, documentID, workspaceID, elementID string) string {
	u := fmt.Sprintf("%s/documents/d/%s/w/%s", base, documentID, workspaceID)
	if elementID != "" {
		u += "/e/" + elementID
	}
	return u
}
