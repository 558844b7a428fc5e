package cli

import (
	_ "embed"
	"slices"
)

//go:embed default_config.yaml
var defaultConfigurationDocument []byte

// EmbeddedDefaultConfiguration returns a private copy of the built-in YAML defaults
// (log settings and tools.sync values) along with its viper configuration type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return slices.Clone(defaultConfigurationDocument), configurationTypeConstant
}
