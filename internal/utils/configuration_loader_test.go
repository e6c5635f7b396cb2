package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/adx/internal/utils"
)

const (
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testEnvironmentPrefixConstant     = "ADXTEST"
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: warn\n"
	testEmbeddedContentConstant       = "common:\n  log_level: debug\n  log_format: console\n"
)

type testConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
}

func TestConfigurationLoaderAppliesDefaultsAndFiles(testInstance *testing.T) {
	testCases := []struct {
		name              string
		fileContent       string
		embeddedContent   string
		defaultValues     map[string]any
		expectedLogLevel  string
		expectedLogFormat string
	}{
		{
			name:              "defaults_only",
			defaultValues:     map[string]any{"common.log_level": "info", "common.log_format": "structured"},
			expectedLogLevel:  "info",
			expectedLogFormat: "structured",
		},
		{
			name:              "file_overrides_defaults",
			fileContent:       testConfigurationContentConstant,
			defaultValues:     map[string]any{"common.log_level": "info", "common.log_format": "structured"},
			expectedLogLevel:  "warn",
			expectedLogFormat: "structured",
		},
		{
			name:              "file_overrides_embedded",
			fileContent:       testConfigurationContentConstant,
			embeddedContent:   testEmbeddedContentConstant,
			expectedLogLevel:  "warn",
			expectedLogFormat: "console",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			temporaryDirectory := testInstance.TempDir()

			configurationFilePath := ""
			if len(testCase.fileContent) > 0 {
				configurationFilePath = filepath.Join(temporaryDirectory, testConfigurationFileNameConstant)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testCase.fileContent), 0o600))
			}

			loader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{temporaryDirectory},
			)
			if len(testCase.embeddedContent) > 0 {
				loader.SetEmbeddedConfiguration([]byte(testCase.embeddedContent))
			}

			var loadedConfiguration testConfiguration
			metadata, loadError := loader.LoadConfiguration(configurationFilePath, testCase.defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedLogFormat, loadedConfiguration.Common.LogFormat)
			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			}
		})
	}
}
