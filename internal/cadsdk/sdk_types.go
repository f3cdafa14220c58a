package cadsdk

// EntryKind classifies entries returned when listing a folder.
type EntryKind string

const (
	EntryKindDocument EntryKind = "document"
	EntryKindFolder   EntryKind = "folder"
)

// FolderEntry is one item inside a remote folder.
type FolderEntry struct {
	ID   string
	Name string
	Kind EntryKind
}

// Element is an individually addressable tab inside a document.
type Element struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudioContent is the source of a feature studio plus the workspace
// microversion it was read at. The microversion is opaque; compare for
// equality only.
type StudioContent struct {
	Contents     string `json:"contents"`
	Microversion string `json:"microversion"`
}

// ElementKindFeatureStudio filters element listings down to feature studios.
const ElementKindFeatureStudio = "FEATURESTUDIO"
