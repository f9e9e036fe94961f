package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal errors returned by the command tree.
const ApplicationExecutionFailedMessage = "mdtree failed"

// Configuration file locations.
const (
	// ConfigFileName is the name of the local configuration file looked up in the root directory.
	ConfigFileName = ".mdtree.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".mdtree"
	// GlobalConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// DefaultOutputFileName is the document written when no output name is configured.
	DefaultOutputFileName = "list.md"
)
