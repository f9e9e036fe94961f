// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/mdtree/internal/config"
	"github.com/temirov/mdtree/internal/markdown"
	"github.com/temirov/mdtree/internal/pipeline"
	"github.com/temirov/mdtree/internal/services/clipboard"
	"github.com/temirov/mdtree/internal/tokenizer"
	"github.com/temirov/mdtree/internal/utils"
)

const (
	defaultPath          = "."
	rootUse              = "mdtree"
	rootShortDescription = "mdtree renders a project tree as a Markdown link list"
	rootLongDescription  = `mdtree lists every file below a directory and writes a Markdown document
linking to each of them, grouped under a heading per top-level directory.
Use "mdtree generate" to write the document and "mdtree init" to create a configuration file.`
	versionTemplate = "mdtree version: {{.Version}}\n"

	generateUse              = "generate [root]"
	generateAlias            = "g"
	generateShortDescription = "write the grouped link list (" + generateAlias + ")"
	generateLongDescription  = `Walk the root directory (the working directory by default), drop ignored paths,
and write one "- [path](path)" line per file grouped under "# <top-level directory>" headings.
Root-level files are skipped while grouping is enabled.`
	generateUsageExample = `  # Write list.md for the current project
  mdtree generate

  # Skip anything containing tmp or node_modules and print to stdout
  mdtree generate -e tmp -e node_modules --stdout ./docs

  # Write index.md without blank lines between groups
  mdtree generate -o index.md --separator no`

	initUse              = "init [root]"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to .mdtree.yaml in the root directory,
or to ~/.mdtree/config.yaml with --global.`

	verboseFlagName          = "verbose"
	verboseFlagDescription   = "log debug details"
	configFlagName           = "config"
	configFlagDescription    = "configuration file overriding .mdtree.yaml in the root"
	outputFlagName           = "output"
	outputFlagShorthand      = "o"
	outputFlagDescription    = "output file name written inside the root"
	ignoreFlagName           = "ignore"
	ignoreFlagShorthand      = "e"
	ignoreFlagDescription    = "exclude paths containing this text (repeatable)"
	includeGitFlagName       = "include-git"
	includeGitDescription    = "keep paths inside .git directories"
	groupingFlagName         = "grouping"
	groupingFlagDescription  = "group links under top-level directory headings"
	separatorFlagName        = "separator"
	separatorFlagDescription = "insert a blank line between groups"
	guardCyclesFlagName      = "guard-cycles"
	guardCyclesDescription   = "skip directories already visited through symbolic links"
	stdoutFlagName           = "stdout"
	stdoutFlagDescription    = "print the document instead of writing the output file"
	htmlFlagName             = "html"
	htmlFlagDescription      = "also write an HTML rendering next to the output file"
	clipboardFlagName        = "clipboard"
	clipboardFlagDescription = "copy the document to the system clipboard"
	tokensFlagName           = "tokens"
	tokensFlagDescription    = "log an estimated token count of the document"
	modelFlagName            = "model"
	modelFlagDescription     = "tokenizer model used for the token estimate"
	globalFlagName           = "global"
	globalFlagDescription    = "write the global configuration file"
	forceFlagName            = "force"
	forceFlagDescription     = "overwrite an existing configuration file"

	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorRootNotFoundFormat     = "root directory %s not found"
	errorRootNotDirectoryFormat = "root %s is not a directory"

	logMessageConfigurationWritten = "configuration written"
	logMessageTokenEstimate        = "estimated tokens"
	logMessageTokenFailure         = "token estimate failed"
	logMessageClipboardCopied      = "document copied to clipboard"
	logMessageClipboardFailure     = "clipboard copy failed"
	logFieldPath                   = "path"
	logFieldTokens                 = "tokens"
	logFieldModel                  = "model"
)

// counterFactory creates token counters; replaced in tests to avoid downloading encodings.
type counterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// verboseLoggerFactory creates the debug logger installed by --verbose.
type verboseLoggerFactory func() (*zap.Logger, error)

func newDebugLogger() (*zap.Logger, error) {
	return utils.NewLeveledLogger(zapcore.DebugLevel)
}

// application carries the collaborators shared by every command.
type application struct {
	logger           *zap.Logger
	verboseLogger    *zap.Logger
	newVerboseLogger verboseLoggerFactory
	fileSystem       afero.Fs
	copier           clipboard.Copier
	newCounter       counterFactory
	homeDirectory    string
}

func newApplication(logger *zap.Logger) *application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &application{
		logger:           logger,
		newVerboseLogger: newDebugLogger,
		fileSystem:       afero.NewOsFs(),
		copier:           clipboard.NewService(),
		newCounter:       tokenizer.NewCounter,
	}
}

// Execute runs the mdtree application.
func Execute(logger *zap.Logger) error {
	app := newApplication(logger)
	return app.execute(app.createRootCommand(), os.Args[1:])
}

// execute runs rootCommand with arguments and flushes the --verbose logger afterwards, also on failure.
func (app *application) execute(rootCommand *cobra.Command, arguments []string) error {
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	defer app.syncVerboseLogger()
	return rootCommand.Execute()
}

// syncVerboseLogger flushes the logger created for --verbose. The caller owns and syncs the original logger.
func (app *application) syncVerboseLogger() {
	if app.verboseLogger == nil {
		return
	}
	_ = app.verboseLogger.Sync()
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	var verbose bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !verbose {
				return nil
			}
			debugLogger, loggerError := app.newVerboseLogger()
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			app.verboseLogger = debugLogger
			app.logger = debugLogger
			return nil
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	registerBooleanFlag(rootCommand.PersistentFlags(), &verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.AddCommand(
		app.createGenerateCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// generateOptions stores the flags of the generate command.
type generateOptions struct {
	configPath   string
	outputName   string
	ignoreTokens []string
	includeGit   bool
	grouping     bool
	separator    bool
	guardCycles  bool
	stdout       bool
	html         bool
	clipboard    bool
	tokens       bool
	model        string
}

// applyTo overlays explicitly set flags onto the loaded configuration.
func (options generateOptions) applyTo(flagSet *pflag.FlagSet, loaded config.GenerateConfiguration) config.GenerateConfiguration {
	result := loaded
	if flagSet.Changed(outputFlagName) {
		result.Output = options.outputName
	}
	if len(options.ignoreTokens) > 0 {
		result.Ignore = utils.DeduplicatePatterns(append(append([]string{}, loaded.Ignore...), options.ignoreTokens...))
	}
	booleanOverrides := []struct {
		flagName string
		value    bool
		target   **bool
	}{
		{includeGitFlagName, options.includeGit, &result.IncludeGit},
		{groupingFlagName, options.grouping, &result.Grouping},
		{separatorFlagName, options.separator, &result.GroupSeparator},
		{guardCyclesFlagName, options.guardCycles, &result.GuardCycles},
		{htmlFlagName, options.html, &result.HTML},
		{clipboardFlagName, options.clipboard, &result.Clipboard},
		{tokensFlagName, options.tokens, &result.Tokens.Enabled},
	}
	for _, override := range booleanOverrides {
		if flagSet.Changed(override.flagName) {
			value := override.value
			*override.target = &value
		}
	}
	if flagSet.Changed(modelFlagName) {
		result.Tokens.Model = options.model
	}
	return result
}

// createGenerateCommand returns the generate subcommand.
func (app *application) createGenerateCommand() *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runGenerate(command, arguments, options)
		},
	}

	flagSet := generateCommand.Flags()
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVarP(&options.outputName, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringArrayVarP(&options.ignoreTokens, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.includeGit, includeGitFlagName, false, includeGitDescription)
	registerBooleanFlag(flagSet, &options.grouping, groupingFlagName, true, groupingFlagDescription)
	registerBooleanFlag(flagSet, &options.separator, separatorFlagName, true, separatorFlagDescription)
	registerBooleanFlag(flagSet, &options.guardCycles, guardCyclesFlagName, false, guardCyclesDescription)
	registerBooleanFlag(flagSet, &options.stdout, stdoutFlagName, false, stdoutFlagDescription)
	registerBooleanFlag(flagSet, &options.html, htmlFlagName, false, htmlFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, "", modelFlagDescription)
	return generateCommand
}

// runGenerate resolves configuration, runs the pipeline, and performs the optional follow-ups.
func (app *application) runGenerate(command *cobra.Command, arguments []string, options generateOptions) error {
	rootDirectory, resolveError := app.resolveRootDirectory(arguments)
	if resolveError != nil {
		return resolveError
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		RootDirectory:    rootDirectory,
		ExplicitFilePath: options.configPath,
		HomeDirectory:    app.homeDirectory,
	})
	if loadError != nil {
		return loadError
	}
	settings := options.applyTo(command.Flags(), loaded.Generate).Resolve()

	generator := pipeline.NewGenerator(app.fileSystem, app.logger, pipeline.Options{
		IgnoreTokens:         settings.IgnoreTokens,
		StructuralExclusions: settings.StructuralExclusions,
		Format: markdown.FormatOptions{
			Grouping:       settings.Grouping,
			GroupSeparator: settings.GroupSeparator,
		},
		GuardCycles: settings.GuardCycles,
		WriteHTML:   settings.HTML && !options.stdout,
	})

	var document string
	if options.stdout {
		builtDocument, buildError := generator.Build(rootDirectory)
		if buildError != nil {
			return buildError
		}
		document = builtDocument
		fmt.Fprintln(command.OutOrStdout(), document)
	} else {
		result, generateError := generator.Generate(rootDirectory, settings.OutputFileName)
		if generateError != nil {
			return generateError
		}
		document = result.Document
	}

	if settings.TokensEnabled {
		app.reportTokens(settings.TokenizerModel, document)
	}
	if settings.Clipboard {
		app.copyDocument(document)
	}
	return nil
}

// resolveRootDirectory returns the absolute root directory, failing before any traversal when it is unusable.
func (app *application) resolveRootDirectory(arguments []string) (string, error) {
	requestedPath := defaultPath
	if len(arguments) > 0 {
		requestedPath = arguments[0]
	}
	if requestedPath == defaultPath {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		requestedPath = workingDirectory
	}
	absolutePath, absoluteError := filepath.Abs(requestedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, requestedPath, absoluteError)
	}
	rootInformation, statError := app.fileSystem.Stat(absolutePath)
	if statError != nil {
		return "", fmt.Errorf(errorRootNotFoundFormat, absolutePath)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, absolutePath)
	}
	return absolutePath, nil
}

// reportTokens logs the token estimate; failures are logged and never abort the run.
func (app *application) reportTokens(model string, document string) {
	counter, resolvedModel, counterError := app.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		app.logger.Warn(logMessageTokenFailure, zap.Error(counterError))
		return
	}
	countResult, countError := tokenizer.CountDocument(counter, document)
	if countError != nil {
		app.logger.Warn(logMessageTokenFailure, zap.Error(countError))
		return
	}
	app.logger.Info(logMessageTokenEstimate, zap.Int(logFieldTokens, countResult.Tokens), zap.String(logFieldModel, resolvedModel))
}

func (app *application) copyDocument(document string) {
	if copyError := app.copier.Copy(document); copyError != nil {
		app.logger.Warn(logMessageClipboardFailure, zap.Error(copyError))
		return
	}
	app.logger.Info(logMessageClipboardCopied)
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			initOptions := config.InitOptions{
				Target:        config.InitTargetLocal,
				Force:         force,
				HomeDirectory: app.homeDirectory,
			}
			if global {
				initOptions.Target = config.InitTargetGlobal
			} else {
				rootDirectory, resolveError := app.resolveRootDirectory(arguments)
				if resolveError != nil {
					return resolveError
				}
				initOptions.RootDirectory = rootDirectory
			}
			writtenPath, initError := config.InitializeConfiguration(initOptions)
			if initError != nil {
				return initError
			}
			app.logger.Info(logMessageConfigurationWritten, zap.String(logFieldPath, writtenPath))
			fmt.Fprintln(command.OutOrStdout(), writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
