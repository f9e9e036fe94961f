// Package filetree discovers the regular files below a root directory.
package filetree

import "fmt"

// EntryType classifies a filesystem entry for traversal.
type EntryType int

const (
	// EntryTypeUnknown covers stat failures and entries that are neither files nor directories.
	EntryTypeUnknown EntryType = iota
	// EntryTypeFile is a regular file.
	EntryTypeFile
	// EntryTypeDirectory is a directory.
	EntryTypeDirectory
)

const (
	entryTypeFileName      = "file"
	entryTypeDirectoryName = "directory"
	entryTypeUnknownName   = "unknown"

	errorReadDirectoryFormat = "reading directory %s: %v"
)

// String returns the lowercase name of the entry type.
func (entryType EntryType) String() string {
	switch entryType {
	case EntryTypeFile:
		return entryTypeFileName
	case EntryTypeDirectory:
		return entryTypeDirectoryName
	default:
		return entryTypeUnknownName
	}
}

// TraversalError reports a directory that could not be listed.
type TraversalError struct {
	Directory string
	Err       error
}

func (traversalError *TraversalError) Error() string {
	return fmt.Sprintf(errorReadDirectoryFormat, traversalError.Directory, traversalError.Err)
}

func (traversalError *TraversalError) Unwrap() error {
	return traversalError.Err
}
