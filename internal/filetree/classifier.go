package filetree

import (
	"github.com/spf13/afero"
)

// Classifier determines the entry type of paths on a filesystem.
type Classifier struct {
	fileSystem afero.Fs
}

// NewClassifier constructs a Classifier backed by the provided filesystem.
func NewClassifier(fileSystem afero.Fs) *Classifier {
	return &Classifier{fileSystem: fileSystem}
}

// Classify stats the path, following symbolic links, and reports its entry type.
// Any stat failure yields EntryTypeUnknown.
func (classifier *Classifier) Classify(path string) EntryType {
	fileInformation, statError := classifier.fileSystem.Stat(path)
	if statError != nil {
		return EntryTypeUnknown
	}
	switch {
	case fileInformation.Mode().IsRegular():
		return EntryTypeFile
	case fileInformation.IsDir():
		return EntryTypeDirectory
	default:
		return EntryTypeUnknown
	}
}
