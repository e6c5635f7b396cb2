package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n" +
		"  log_level: debug\n" +
		"  log_format: console\n" +
		"tools:\n" +
		"  audit:\n" +
		"    domain: corp.example.com\n" +
		"    all: true\n" +
		"    export_dir: /tmp/adx-reports\n" +
		"  modules:\n" +
		"    names:\n" +
		"      - GroupPolicy\n" +
		"      - ActiveDirectory\n"
)

func TestNewApplicationRegistersSubcommands(t *testing.T) {
	application := NewApplication()

	registeredCommandNames := make([]string, 0)
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames = append(registeredCommandNames, registeredCommand.Name())
	}

	require.Contains(t, registeredCommandNames, "modules")
	require.Contains(t, registeredCommandNames, "audit")
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(t *testing.T) {
	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "info", application.configuration.Common.LogLevel)
	require.Equal(t, "structured", application.configuration.Common.LogFormat)
	require.Contains(t, application.configuration.Tools.Modules.ModuleNames, "GroupPolicy")
	require.Equal(t, ".", application.configuration.Tools.Audit.ExportDirectory)
	require.False(t, application.configuration.Tools.Audit.IncludeAll)
}

func TestInitializeConfigurationReadsConfigurationFile(t *testing.T) {
	temporaryDirectory := t.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, testConfigurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))

	application := NewApplication()
	application.configurationFilePath = configurationPath

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "debug", application.configuration.Common.LogLevel)
	require.Equal(t, "corp.example.com", application.configuration.Tools.Audit.Domain)
	require.True(t, application.configuration.Tools.Audit.IncludeAll)
	require.Equal(t, "/tmp/adx-reports", application.configuration.Tools.Audit.ExportDirectory)
	require.Equal(t, []string{"GroupPolicy", "ActiveDirectory"}, application.configuration.Tools.Modules.ModuleNames)
	require.Equal(t, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.True(t, application.humanReadableLoggingEnabled())
}

func TestPersistentFlagsOverrideConfiguredLogging(t *testing.T) {
	application := NewApplication()
	require.NoError(t, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "warn"))
	require.NoError(t, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console"))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(t, initializationError)

	require.Equal(t, "warn", application.configuration.Common.LogLevel)
	require.Equal(t, "console", application.configuration.Common.LogFormat)
}

func TestInitializeConfigurationRejectsUnsupportedLogLevel(t *testing.T) {
	application := NewApplication()
	require.NoError(t, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose"))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(t, initializationError)
	require.Contains(t, initializationError.Error(), "unable to create logger")
}
