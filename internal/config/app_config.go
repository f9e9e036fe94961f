// Package config loads mdtree configuration files and resolves effective settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/mdtree/internal/filter"
	"github.com/temirov/mdtree/internal/utils"
)

const (
	defaultTokenizerModel   = "gpt-4o"
	ignoreKey               = "generate.ignore"
	structuralExclusionsKey = "generate.structural_exclusions"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	RootDirectory    string
	ExplicitFilePath string
	HomeDirectory    string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Generate GenerateConfiguration `mapstructure:"generate"`
}

// GenerateConfiguration defines options of the generate command.
type GenerateConfiguration struct {
	Output               string             `mapstructure:"output"`
	Ignore               []string           `mapstructure:"ignore"`
	StructuralExclusions []string           `mapstructure:"structural_exclusions"`
	IncludeGit           *bool              `mapstructure:"include_git"`
	Grouping             *bool              `mapstructure:"grouping"`
	GroupSeparator       *bool              `mapstructure:"group_separator"`
	GuardCycles          *bool              `mapstructure:"guard_cycles"`
	HTML                 *bool              `mapstructure:"html"`
	Clipboard            *bool              `mapstructure:"clipboard"`
	Tokens               TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// GenerateSettings is the fully resolved configuration with defaults applied.
type GenerateSettings struct {
	OutputFileName       string
	IgnoreTokens         []string
	StructuralExclusions []string
	Grouping             bool
	GroupSeparator       bool
	GuardCycles          bool
	HTML                 bool
	Clipboard            bool
	TokensEnabled        bool
	TokenizerModel       string
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one.
// Missing files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, homeErr := os.UserHomeDir(); homeErr == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(options.RootDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Generate.Ignore = utils.DeduplicatePatterns(merged.Generate.Ignore)
	return merged, nil
}

func resolveLocalConfigPath(rootDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		absolute, err := filepath.Abs(explicitPath)
		if err != nil {
			return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
		}
		return absolute, nil
	}
	if rootDirectory == "" {
		return "", nil
	}
	return filepath.Join(rootDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	// An explicitly empty list is kept non-nil so it replaces the lists of earlier sources.
	if reader.IsSet(ignoreKey) && config.Generate.Ignore == nil {
		config.Generate.Ignore = []string{}
	}
	if reader.IsSet(structuralExclusionsKey) && config.Generate.StructuralExclusions == nil {
		config.Generate.StructuralExclusions = []string{}
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Generate = result.Generate.merge(override.Generate)
	return result
}

func (config GenerateConfiguration) merge(override GenerateConfiguration) GenerateConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Ignore != nil {
		result.Ignore = append([]string{}, utils.DeduplicatePatterns(override.Ignore)...)
	}
	if override.StructuralExclusions != nil {
		result.StructuralExclusions = append([]string{}, override.StructuralExclusions...)
	}
	result.IncludeGit = overrideBool(result.IncludeGit, override.IncludeGit)
	result.Grouping = overrideBool(result.Grouping, override.Grouping)
	result.GroupSeparator = overrideBool(result.GroupSeparator, override.GroupSeparator)
	result.GuardCycles = overrideBool(result.GuardCycles, override.GuardCycles)
	result.HTML = overrideBool(result.HTML, override.HTML)
	result.Clipboard = overrideBool(result.Clipboard, override.Clipboard)
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	result.Enabled = overrideBool(result.Enabled, override.Enabled)
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// Resolve applies defaults to every unset field.
func (config GenerateConfiguration) Resolve() GenerateSettings {
	settings := GenerateSettings{
		OutputFileName: config.Output,
		IgnoreTokens:   utils.DropBlankPatterns(config.Ignore),
		Grouping:       boolOrDefault(config.Grouping, true),
		GroupSeparator: boolOrDefault(config.GroupSeparator, true),
		GuardCycles:    boolOrDefault(config.GuardCycles, false),
		HTML:           boolOrDefault(config.HTML, false),
		Clipboard:      boolOrDefault(config.Clipboard, false),
		TokensEnabled:  boolOrDefault(config.Tokens.Enabled, false),
		TokenizerModel: config.Tokens.Model,
	}
	if settings.OutputFileName == "" {
		settings.OutputFileName = utils.DefaultOutputFileName
	}
	if settings.TokenizerModel == "" {
		settings.TokenizerModel = defaultTokenizerModel
	}

	structuralExclusions := filter.DefaultStructuralExclusions
	if config.StructuralExclusions != nil {
		structuralExclusions = config.StructuralExclusions
	}
	settings.StructuralExclusions = utils.DeduplicatePatterns(utils.TrimPatterns(structuralExclusions))
	if boolOrDefault(config.IncludeGit, false) {
		settings.StructuralExclusions = removePattern(settings.StructuralExclusions, utils.GitDirectoryName)
	}
	return settings
}

func removePattern(patterns []string, target string) []string {
	remaining := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern != target {
			remaining = append(remaining, pattern)
		}
	}
	return remaining
}

func overrideBool(current *bool, override *bool) *bool {
	if override == nil {
		return current
	}
	return cloneBool(override)
}

func boolOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
