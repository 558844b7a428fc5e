package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
	fallbackConfigurationReadErrorTemplateConstant  = "failed to read configuration %s: %w"
)

var fileConfigurationTypes = []string{"yaml", "yml", "json", "toml"}

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName          string
	configurationType          string
	environmentPrefix          string
	searchPaths                []string
	fallbackConfigurationFiles []string
	environmentKeyReplacer     *strings.Replacer
	embeddedConfiguration      []byte
	embeddedConfigurationType  string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            slices.Clone(searchPaths),
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// SetEmbeddedConfiguration stores embedded configuration data merged before user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedConfiguration = nil
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	loader.embeddedConfiguration = bytes.Clone(configurationData)
}

// SetFallbackConfigurationFiles registers files consulted in order when neither an explicit
// path nor the search paths yield a configuration file. The first existing file wins and its
// format is taken from its extension.
func (loader *ConfigurationLoader) SetFallbackConfigurationFiles(configurationFiles []string) {
	if loader == nil {
		return
	}

	loader.fallbackConfigurationFiles = nil
	for _, configurationFile := range configurationFiles {
		trimmed := strings.TrimSpace(configurationFile)
		if len(trimmed) == 0 {
			continue
		}
		loader.fallbackConfigurationFiles = append(loader.fallbackConfigurationFiles, trimmed)
	}
}

// LoadConfiguration populates targetConfiguration using configuration files, defaults, and environment variables.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if len(loader.embeddedConfiguration) > 0 {
		configurationType := loader.configurationType
		if len(loader.embeddedConfigurationType) > 0 {
			configurationType = loader.embeddedConfigurationType
		}

		viperInstance.SetConfigType(configurationType)
		mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration))
		if mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}

		viperInstance.SetConfigType(loader.configurationType)
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
		viperInstance.SetConfigType(loader.configurationTypeForFile(configurationFilePath))
	}

	readError := viperInstance.MergeInConfig()
	if readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
		if fallbackError := loader.mergeFallbackConfiguration(viperInstance); fallbackError != nil {
			return LoadedConfiguration{}, fallbackError
		}
	}

	unmarshalError := viperInstance.Unmarshal(targetConfiguration)
	if unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	loadedConfiguration := LoadedConfiguration{
		ConfigFileUsed: viperInstance.ConfigFileUsed(),
	}

	return loadedConfiguration, nil
}

func (loader *ConfigurationLoader) mergeFallbackConfiguration(viperInstance *viper.Viper) error {
	for _, fallbackConfigurationFile := range loader.fallbackConfigurationFiles {
		fileInfo, statError := os.Stat(fallbackConfigurationFile)
		if statError != nil || fileInfo.IsDir() {
			continue
		}

		viperInstance.SetConfigFile(fallbackConfigurationFile)
		viperInstance.SetConfigType(loader.configurationTypeForFile(fallbackConfigurationFile))
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			return fmt.Errorf(fallbackConfigurationReadErrorTemplateConstant, fallbackConfigurationFile, mergeError)
		}
		return nil
	}
	return nil
}

func (loader *ConfigurationLoader) configurationTypeForFile(configurationFilePath string) string {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(configurationFilePath), "."))
	if slices.Contains(fileConfigurationTypes, extension) {
		return extension
	}
	return loader.configurationType
}
