package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleTypeNameConstant                 = "bool"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleUsageEmptyTemplate               = "`%s`"
	toggleUsageFullTemplate                = "`%s` %s"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagValueSeparatorConstant             = "="
)

var (
	toggleLiteralValues = map[string]bool{
		toggleTrueCanonicalValue:  true,
		"yes":                     true,
		"on":                      true,
		"1":                       true,
		"t":                       true,
		"y":                       true,
		toggleFalseCanonicalValue: false,
		"no":                      false,
		"off":                     false,
		"0":                       false,
		"f":                       false,
		"n":                       false,
	}

	toggleFlagRegistryMutex sync.RWMutex
	toggleFlagNames         = map[string]struct{}{}
	toggleFlagShorthands    = map[string]struct{}{}
)

// AddToggleFlag registers a boolean flag that also accepts yes/no style values.
// A bare "--flag" means true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	flagSet.VarP(toggleValue, name, shorthand, usage)

	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)

	registerToggleFlag(name, shorthand)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf(toggleUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageFullTemplate, placeholder, trimmed)
}

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for registered
// toggle flags, but only when value is a toggle literal. Any other following argument,
// such as a root directory, stays positional.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if index+1 < len(arguments) && isBareToggleFlag(current) {
			if _, isLiteral := lookupToggleLiteral(arguments[index+1]); isLiteral {
				normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
				index++
				continue
			}
		}

		normalized = append(normalized, current)
	}

	return normalized
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}

	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleTypeNameConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	if len(strings.TrimSpace(rawValue)) == 0 {
		return true, nil
	}
	parsedValue, isLiteral := lookupToggleLiteral(rawValue)
	if !isLiteral {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsedValue, nil
}

func lookupToggleLiteral(rawValue string) (bool, bool) {
	parsedValue, isLiteral := toggleLiteralValues[strings.ToLower(strings.TrimSpace(rawValue))]
	return parsedValue, isLiteral
}

func registerToggleFlag(name string, shorthand string) {
	toggleFlagRegistryMutex.Lock()
	defer toggleFlagRegistryMutex.Unlock()
	toggleFlagNames[name] = struct{}{}
	if len(shorthand) > 0 {
		toggleFlagShorthands[shorthand] = struct{}{}
	}
}

// isBareToggleFlag reports whether argument names a registered toggle without an inline value.
func isBareToggleFlag(argument string) bool {
	if strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}

	toggleFlagRegistryMutex.RLock()
	defer toggleFlagRegistryMutex.RUnlock()

	if strings.HasPrefix(argument, longFlagPrefixConstant) {
		_, exists := toggleFlagNames[strings.TrimPrefix(argument, longFlagPrefixConstant)]
		return exists
	}
	if strings.HasPrefix(argument, shortFlagPrefixConstant) {
		shorthand := strings.TrimPrefix(argument, shortFlagPrefixConstant)
		if len(shorthand) != 1 {
			return false
		}
		_, exists := toggleFlagShorthands[shorthand]
		return exists
	}
	return false
}
