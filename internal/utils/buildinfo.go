package utils

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

var errGitDirectoryNotFound = errors.New(GitDirectoryName + " directory not found")

// GetApplicationVersion reports the module version recorded at build time.
// Development builds fall back to git describe when a repository is available.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, repositoryError := findGitDirectory(".")
	if repositoryError != nil {
		return unknownVersion
	}
	for _, describeArguments := range [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	} {
		if describedVersion := describeRepository(repositoryDirectory, describeArguments); describedVersion != EmptyString {
			return describedVersion
		}
	}
	return unknownVersion
}

func describeRepository(repositoryDirectory string, describeArguments []string) string {
	// #nosec G204
	gitCommand := exec.Command("git", describeArguments...)
	gitCommand.Dir = repositoryDirectory
	commandOutput, commandError := gitCommand.Output()
	if commandError != nil {
		return EmptyString
	}
	return strings.TrimSpace(string(commandOutput))
}

// findGitDirectory walks upward from startDirectory until it finds a directory containing .git.
func findGitDirectory(startDirectory string) (string, error) {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return EmptyString, absoluteError
	}
	for {
		gitInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && gitInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return EmptyString, errGitDirectoryNotFound
		}
		currentDirectory = parentDirectory
	}
}
