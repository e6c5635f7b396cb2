package gpoaudit

import (
	"strings"

	pathutils "github.com/temirov/adx/internal/utils/path"
)

const (
	defaultExportDirectoryConstant = "."

	domainConfigurationKeySuffixConstant          = ".domain"
	filterConfigurationKeySuffixConstant          = ".filter"
	allConfigurationKeySuffixConstant             = ".all"
	exportConfigurationKeySuffixConstant          = ".export"
	exportDirectoryConfigurationKeySuffixConstant = ".export_dir"
	modulesConfigurationKeySuffixConstant         = ".modules"
)

var defaultConfigurationModuleNames = []string{"GroupPolicy", "ActiveDirectory"}

var exportDirectoryExpander = pathutils.NewHomeExpander()

// CommandConfiguration captures configuration values for the audit command.
type CommandConfiguration struct {
	Domain          string   `mapstructure:"domain"`
	NameFilter      string   `mapstructure:"filter"`
	IncludeAll      bool     `mapstructure:"all"`
	Export          bool     `mapstructure:"export"`
	ExportDirectory string   `mapstructure:"export_dir"`
	ModuleNames     []string `mapstructure:"modules"`
}

// DefaultCommandConfiguration provides baseline configuration values for audits.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ExportDirectory: defaultExportDirectoryConstant,
		ModuleNames:     append([]string{}, defaultConfigurationModuleNames...),
	}
}

// DefaultConfigurationValues exposes default values for configuration loading.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + domainConfigurationKeySuffixConstant:          defaults.Domain,
		configurationKeyPrefix + filterConfigurationKeySuffixConstant:          defaults.NameFilter,
		configurationKeyPrefix + allConfigurationKeySuffixConstant:             defaults.IncludeAll,
		configurationKeyPrefix + exportConfigurationKeySuffixConstant:          defaults.Export,
		configurationKeyPrefix + exportDirectoryConfigurationKeySuffixConstant: defaults.ExportDirectory,
		configurationKeyPrefix + modulesConfigurationKeySuffixConstant:         defaults.ModuleNames,
	}
}

// Sanitize trims values and expands a home-relative export directory.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Domain = strings.TrimSpace(configuration.Domain)
	sanitized.NameFilter = strings.TrimSpace(configuration.NameFilter)
	sanitized.ExportDirectory = exportDirectoryExpander.Expand(strings.TrimSpace(configuration.ExportDirectory))
	sanitized.ModuleNames = sanitizeConfiguredNames(configuration.ModuleNames)
	return sanitized
}

func sanitizeConfiguredNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
