package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/mdtree/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	rootDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{RootDirectory: rootDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(rootDirectory, utils.ConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "generate:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationTemplateLoads(t *testing.T) {
	rootDirectory := t.TempDir()
	if _, err := InitializeConfiguration(InitOptions{RootDirectory: rootDirectory}); err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	loaded, err := LoadApplicationConfiguration(LoadOptions{RootDirectory: rootDirectory, HomeDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	settings := loaded.Generate.Resolve()
	if settings.OutputFileName != utils.DefaultOutputFileName {
		t.Fatalf("expected output %s, got %s", utils.DefaultOutputFileName, settings.OutputFileName)
	}
	if len(settings.StructuralExclusions) != 1 || settings.StructuralExclusions[0] != utils.GitDirectoryName {
		t.Fatalf("unexpected structural exclusions %v", settings.StructuralExclusions)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, HomeDirectory: homeDirectory, Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if !strings.HasPrefix(path, homeDirectory) {
		t.Fatalf("expected configuration under home dir, got %s", path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	rootDirectory := t.TempDir()
	path := filepath.Join(rootDirectory, utils.ConfigFileName)
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	if _, err := InitializeConfiguration(InitOptions{RootDirectory: rootDirectory, Target: InitTargetLocal}); err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: "elsewhere"}); err == nil {
		t.Fatalf("expected error for unsupported target")
	}
}
