package filetree

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	logMessageSkipUnknownEntry     = "skipping unclassified entry"
	logMessageSkipVisitedDirectory = "skipping already visited directory"
	logFieldPath                   = "path"
	logFieldCanonicalPath          = "canonical_path"
)

// WalkerOptions configures traversal behavior.
type WalkerOptions struct {
	// GuardCycles skips directories whose canonical path was already visited.
	GuardCycles bool
}

// Walker lists every regular file below a root directory.
type Walker struct {
	fileSystem afero.Fs
	classifier *Classifier
	logger     *zap.Logger
	options    WalkerOptions
}

// NewWalker constructs a Walker over the filesystem. A nil logger disables logging.
func NewWalker(fileSystem afero.Fs, logger *zap.Logger, options WalkerOptions) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		fileSystem: fileSystem,
		classifier: NewClassifier(fileSystem),
		logger:     logger,
		options:    options,
	}
}

// Walk returns the paths of all regular files reachable from rootDirectoryPath.
// Directories are expanded in place in listing order and never emitted themselves.
// A directory that cannot be listed aborts the walk with a *TraversalError.
func (walker *Walker) Walk(rootDirectoryPath string) ([]string, error) {
	var visitedDirectories map[string]struct{}
	if walker.options.GuardCycles {
		visitedDirectories = make(map[string]struct{})
	}
	return walker.listFiles(rootDirectoryPath, visitedDirectories)
}

func (walker *Walker) listFiles(currentDirectoryPath string, visitedDirectories map[string]struct{}) ([]string, error) {
	if visitedDirectories != nil {
		canonicalPath := walker.canonicalPath(currentDirectoryPath)
		if _, visited := visitedDirectories[canonicalPath]; visited {
			walker.logger.Debug(logMessageSkipVisitedDirectory, zap.String(logFieldPath, currentDirectoryPath), zap.String(logFieldCanonicalPath, canonicalPath))
			return nil, nil
		}
		visitedDirectories[canonicalPath] = struct{}{}
	}

	directoryEntries, readDirectoryError := afero.ReadDir(walker.fileSystem, currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, &TraversalError{Directory: currentDirectoryPath, Err: readDirectoryError}
	}

	var filePaths []string
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		switch walker.classifier.Classify(childPath) {
		case EntryTypeDirectory:
			childFilePaths, childError := walker.listFiles(childPath, visitedDirectories)
			if childError != nil {
				return nil, childError
			}
			filePaths = append(filePaths, childFilePaths...)
		case EntryTypeFile:
			filePaths = append(filePaths, childPath)
		default:
			walker.logger.Debug(logMessageSkipUnknownEntry, zap.String(logFieldPath, childPath))
		}
	}
	return filePaths, nil
}

// canonicalPath resolves symbolic links on the OS filesystem and cleans the path elsewhere.
func (walker *Walker) canonicalPath(directoryPath string) string {
	if _, isOperatingSystem := walker.fileSystem.(*afero.OsFs); isOperatingSystem {
		if resolvedPath, resolveError := filepath.EvalSymlinks(directoryPath); resolveError == nil {
			return resolvedPath
		}
	}
	return filepath.Clean(directoryPath)
}
