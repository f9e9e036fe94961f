package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	literalFlagTypeName          = "bool"
	literalFlagImplicitValue     = "true"
	literalFlagAcceptedValues    = "true, false, yes, no, on, off, 1, 0"
	literalFlagInvalidValueError = "invalid boolean value %q for --%s; accepted values: %s"
	longFlagPrefix               = "--"
	flagTerminator               = "--"
)

var booleanLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

// parseBooleanLiteral interprets the accepted spellings of a boolean flag value.
func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	parsed, known := booleanLiterals[normalized]
	return parsed, known
}

// literalBoolValue is a pflag.Value accepting yes/no/on/off spellings.
type literalBoolValue struct {
	target   *bool
	flagName string
}

func (value *literalBoolValue) Set(input string) error {
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf(literalFlagInvalidValueError, input, value.flagName, literalFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *literalBoolValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *literalBoolValue) Type() string {
	return literalFlagTypeName
}

// registerBooleanFlag adds a boolean flag that also accepts a separate literal argument, as in --html no.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&literalBoolValue{target: target, flagName: name}, name, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = literalFlagImplicitValue
}

// normalizeBooleanFlagArguments joins "--flag literal" pairs into "--flag=literal" for boolean flags,
// because pflag never consumes a separate value for flags with NoOptDefVal.
// A literal that names an existing file or directory stays a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlagNames)
	if len(booleanFlagNames) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == flagTerminator {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(currentArgument, longFlagPrefix)
		if isLongFlag && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			if _, isBoolean := booleanFlagNames[flagName]; isBoolean {
				if isDetachedBooleanLiteral(arguments[index+1]) {
					normalized = append(normalized, currentArgument+"="+arguments[index+1])
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func isDetachedBooleanLiteral(argument string) bool {
	if argument == "" || strings.HasPrefix(argument, "-") {
		return false
	}
	if _, known := parseBooleanLiteral(argument); !known {
		return false
	}
	if _, statErr := os.Stat(argument); statErr == nil {
		return false
	}
	return true
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == literalFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
