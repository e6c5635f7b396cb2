package modules

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/adx/internal/powershell"
)

const (
	parentCommandUseConstant          = "modules"
	parentCommandShortConstant        = "Manage PowerShell module imports"
	ensureCommandUseConstant          = "ensure [module-names...]"
	ensureCommandShortConstant        = "Import the configured PowerShell modules when absent"
	ensureCommandLongConstant         = "ensure checks each named PowerShell module and imports it into the host session when it is not already active."
	missingModuleNamesMessageConstant = "module names are required; supply arguments or configure tools.modules.names"
	ensureOutcomeTemplateConstant     = "MODULE %s: %s\n"
	ensureFailureTemplateConstant     = "%d of %d modules failed to load"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the modules command tree.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ModuleHost                   ModuleHost
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the modules command with its ensure subcommand.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	parentCommand := &cobra.Command{
		Use:   parentCommandUseConstant,
		Short: parentCommandShortConstant,
	}

	ensureCommand := &cobra.Command{
		Use:   ensureCommandUseConstant,
		Short: ensureCommandShortConstant,
		Long:  ensureCommandLongConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.runEnsure,
	}
	parentCommand.AddCommand(ensureCommand)

	return parentCommand, nil
}

func (builder *CommandBuilder) runEnsure(command *cobra.Command, arguments []string) error {
	moduleNames := sanitizeModuleNames(arguments)
	if len(moduleNames) == 0 {
		moduleNames = builder.resolveConfiguration().ModuleNames
	}
	if len(moduleNames) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingModuleNamesMessageConstant)
	}

	logger := builder.resolveLogger()
	moduleHost, hostError := builder.resolveModuleHost(logger)
	if hostError != nil {
		return hostError
	}

	service, serviceCreationError := NewService(Dependencies{Host: moduleHost, Logger: logger})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	outcomes, ensureError := service.EnsureLoaded(command.Context(), moduleNames)
	if ensureError != nil {
		return ensureError
	}

	for _, outcome := range outcomes {
		fmt.Fprintf(command.OutOrStdout(), ensureOutcomeTemplateConstant, outcome.ModuleName, outcome.State)
	}

	failedOutcomes := FailedOutcomes(outcomes)
	if len(failedOutcomes) > 0 {
		return fmt.Errorf(ensureFailureTemplateConstant, len(failedOutcomes), len(outcomes))
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveModuleHost(logger *zap.Logger) (ModuleHost, error) {
	if builder.ModuleHost != nil {
		return builder.ModuleHost, nil
	}
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	return powershell.ResolveClient(logger, humanReadableLogging)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
