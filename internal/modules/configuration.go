package modules

const (
	defaultGroupPolicyModuleNameConstant = "GroupPolicy"
	namesConfigurationKeySuffixConstant  = ".names"
)

// CommandConfiguration captures configuration values for the modules ensure command.
type CommandConfiguration struct {
	ModuleNames []string `mapstructure:"names"`
}

// DefaultCommandConfiguration provides baseline configuration values for module loading.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ModuleNames: []string{defaultGroupPolicyModuleNameConstant},
	}
}

// DefaultConfigurationValues exposes default values for configuration loading.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + namesConfigurationKeySuffixConstant: defaults.ModuleNames,
	}
}

// Sanitize trims configured module names and drops empty or duplicate entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ModuleNames = sanitizeModuleNames(configuration.ModuleNames)
	return sanitized
}
