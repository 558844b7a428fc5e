package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
	choiceTypeNameConstant   = "string"
	choiceParseErrorTemplate = "invalid value %q, expected one of %s"
	choiceListSeparator      = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// AddChoiceFlag registers a string flag restricted to choices, compared case-insensitively.
// The stored value is the lower-cased choice.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	choiceValue := &choiceFlagValue{target: target, choices: normalizeChoices(choices)}
	if target != nil {
		*target = defaultChoice
	}
	choiceValue.currentValue = defaultChoice

	flagSet.Var(choiceValue, name, FormatChoiceUsage(defaultChoice, choices, description))
}

type choiceFlagValue struct {
	currentValue string
	target       *string
	choices      []string
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalized := strings.ToLower(strings.TrimSpace(rawValue))
	for _, choice := range value.choices {
		if choice != normalized {
			continue
		}
		value.currentValue = normalized
		if value.target != nil {
			*value.target = normalized
		}
		return nil
	}
	return fmt.Errorf(choiceParseErrorTemplate, rawValue, strings.Join(value.choices, choiceListSeparator))
}

func (value *choiceFlagValue) String() string {
	if value == nil {
		return ""
	}
	return value.currentValue
}

func (value *choiceFlagValue) Type() string {
	return choiceTypeNameConstant
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmed := strings.ToLower(strings.TrimSpace(choice))
		if len(trimmed) == 0 {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
