package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/adx/cmd/cli"
)

const (
	applicationConfigurationYAMLConstant = "common:\n" +
		"  log_level: warn\n" +
		"  log_format: structured\n" +
		"tools:\n" +
		"  audit:\n" +
		"    domain: corp.example.com\n" +
		"    filter: finance\n" +
		"    export: true\n" +
		"    export_dir: ~/reports\n" +
		"    modules:\n" +
		"      - GroupPolicy\n" +
		"  modules:\n" +
		"    names:\n" +
		"      - GroupPolicy\n"
)

func TestApplicationConfigurationDecodesFromYAML(t *testing.T) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")
	require.NoError(t, viperInstance.ReadConfig(bytes.NewReader([]byte(applicationConfigurationYAMLConstant))))

	var configuration cli.ApplicationConfiguration
	decoder, decoderCreationError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &configuration,
	})
	require.NoError(t, decoderCreationError)
	require.NoError(t, decoder.Decode(viperInstance.AllSettings()))

	require.Equal(t, "warn", configuration.Common.LogLevel)
	require.Equal(t, "corp.example.com", configuration.Tools.Audit.Domain)
	require.Equal(t, "finance", configuration.Tools.Audit.NameFilter)
	require.True(t, configuration.Tools.Audit.Export)
	require.Equal(t, "~/reports", configuration.Tools.Audit.ExportDirectory)
	require.Equal(t, []string{"GroupPolicy"}, configuration.Tools.Audit.ModuleNames)
	require.Equal(t, []string{"GroupPolicy"}, configuration.Tools.Modules.ModuleNames)
}

func TestEmbeddedDefaultConfigurationIsValidYAML(t *testing.T) {
	embeddedContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(t, "yaml", configurationType)
	require.NotEmpty(t, embeddedContent)

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(t, viperInstance.ReadConfig(bytes.NewReader(embeddedContent)))
	require.Equal(t, "info", viperInstance.GetString("common.log_level"))
	require.Equal(t, []string{"GroupPolicy", "ActiveDirectory"}, viperInstance.GetStringSlice("tools.audit.modules"))
}
