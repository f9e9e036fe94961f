// Package pipeline turns a directory tree into a grouped Markdown link list.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/mdtree/internal/filetree"
	"github.com/temirov/mdtree/internal/filter"
	"github.com/temirov/mdtree/internal/markdown"
	"github.com/temirov/mdtree/internal/utils"
)

const (
	outputFilePermissions = 0o644
	htmlFileExtension     = ".html"

	errorWriteOutputFormat = "writing %s: %v"
	errorInspectFormat     = "inspecting generated document: %w"
	errorRenderHTMLFormat  = "rendering html for %s: %w"

	logMessageDocumentBuilt   = "document built"
	logMessageDocumentWritten = "document written"
	logFieldRoot              = "root"
	logFieldDiscovered        = "discovered"
	logFieldRetained          = "retained"
	logFieldOutput            = "output"
	logFieldHeadings          = "headings"
	logFieldLinks             = "links"
)

// Options configures a Generator.
type Options struct {
	IgnoreTokens         []string
	StructuralExclusions []string
	Format               markdown.FormatOptions
	GuardCycles          bool
	WriteHTML            bool
}

// DefaultOptions returns grouped output with the default structural exclusions.
func DefaultOptions() Options {
	return Options{
		StructuralExclusions: filter.DefaultStructuralExclusions,
		Format:               markdown.DefaultFormatOptions(),
	}
}

// Result describes a completed generation.
type Result struct {
	RootDirectory string
	OutputPath    string
	HTMLPath      string
	Document      string
	Summary       markdown.Summary
}

// OutputWriteError reports a destination that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (writeError *OutputWriteError) Error() string {
	return fmt.Sprintf(errorWriteOutputFormat, writeError.Path, writeError.Err)
}

func (writeError *OutputWriteError) Unwrap() error {
	return writeError.Err
}

// Generator composes traversal, filtering, rendering, and grouping.
type Generator struct {
	fileSystem afero.Fs
	logger     *zap.Logger
	options    Options
	walker     *filetree.Walker
	pathFilter *filter.PathFilter
	inspector  *markdown.Inspector
}

// NewGenerator constructs a Generator. A nil logger disables logging.
func NewGenerator(fileSystem afero.Fs, logger *zap.Logger, options Options) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		fileSystem: fileSystem,
		logger:     logger,
		options:    options,
		walker:     filetree.NewWalker(fileSystem, logger, filetree.WalkerOptions{GuardCycles: options.GuardCycles}),
		pathFilter: filter.New(filter.Options{
			IgnoreTokens:         options.IgnoreTokens,
			StructuralExclusions: options.StructuralExclusions,
			RequireDirectory:     options.Format.Grouping,
		}),
		inspector: markdown.NewInspector(),
	}
}

// Build walks rootDirectoryPath and returns the document text.
// Traversal failures are returned unchanged; every later stage is pure.
func (generator *Generator) Build(rootDirectoryPath string) (string, error) {
	return generator.build(rootDirectoryPath, nil)
}

// build skips the relative paths in generatedPaths so that earlier output never lists itself.
func (generator *Generator) build(rootDirectoryPath string, generatedPaths map[string]struct{}) (string, error) {
	cleanRootPath := filepath.Clean(rootDirectoryPath)
	absoluteFilePaths, walkError := generator.walker.Walk(cleanRootPath)
	if walkError != nil {
		return "", walkError
	}

	relativePaths := make([]string, 0, len(absoluteFilePaths))
	for _, absoluteFilePath := range absoluteFilePaths {
		relativePath := utils.RelativePathOrSelf(absoluteFilePath, cleanRootPath)
		if _, generated := generatedPaths[relativePath]; generated {
			continue
		}
		if generator.pathFilter.Included(relativePath) {
			relativePaths = append(relativePaths, relativePath)
		}
	}

	documentLines := markdown.GroupLines(markdown.RenderLines(relativePaths), generator.options.Format)
	generator.logger.Debug(logMessageDocumentBuilt,
		zap.String(logFieldRoot, cleanRootPath),
		zap.Int(logFieldDiscovered, len(absoluteFilePaths)),
		zap.Int(logFieldRetained, len(relativePaths)),
	)
	return markdown.JoinLines(documentLines), nil
}

// Generate builds the document and writes it to outputFileName inside rootDirectoryPath,
// replacing any existing file. When HTML output is enabled a companion file is written next to it.
func (generator *Generator) Generate(rootDirectoryPath string, outputFileName string) (Result, error) {
	cleanRootPath := filepath.Clean(rootDirectoryPath)
	outputPath := filepath.Join(cleanRootPath, outputFileName)
	generatedPaths := map[string]struct{}{
		utils.RelativePathOrSelf(outputPath, cleanRootPath): {},
	}
	if generator.options.WriteHTML {
		generatedPaths[utils.RelativePathOrSelf(HTMLPath(outputPath), cleanRootPath)] = struct{}{}
	}

	document, buildError := generator.build(cleanRootPath, generatedPaths)
	if buildError != nil {
		return Result{}, buildError
	}

	summary, inspectError := generator.inspector.Inspect(document)
	if inspectError != nil {
		return Result{}, fmt.Errorf(errorInspectFormat, inspectError)
	}

	result := Result{
		RootDirectory: cleanRootPath,
		OutputPath:    outputPath,
		Document:      document,
		Summary:       summary,
	}
	if writeError := generator.writeFile(result.OutputPath, document); writeError != nil {
		return Result{}, writeError
	}

	if generator.options.WriteHTML {
		html, renderError := generator.inspector.RenderHTML(document)
		if renderError != nil {
			return Result{}, fmt.Errorf(errorRenderHTMLFormat, result.OutputPath, renderError)
		}
		result.HTMLPath = HTMLPath(result.OutputPath)
		if writeError := generator.writeFile(result.HTMLPath, html); writeError != nil {
			return Result{}, writeError
		}
	}

	generator.logger.Info(logMessageDocumentWritten,
		zap.String(logFieldOutput, result.OutputPath),
		zap.Int(logFieldHeadings, summary.Headings),
		zap.Int(logFieldLinks, summary.Links),
	)
	return result, nil
}

func (generator *Generator) writeFile(path string, content string) error {
	if writeError := afero.WriteFile(generator.fileSystem, path, []byte(content), outputFilePermissions); writeError != nil {
		return &OutputWriteError{Path: path, Err: writeError}
	}
	return nil
}

// HTMLPath derives the companion HTML path by replacing the output file extension.
func HTMLPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + htmlFileExtension
}
