package gpoaudit

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/adx/internal/modules"
	"github.com/temirov/adx/internal/powershell"
	"github.com/temirov/adx/internal/reports"
)

const (
	commandUseConstant               = "audit"
	commandShortDescriptionConstant  = "Audit Group Policy objects by link usage"
	commandLongDescriptionConstant   = "audit retrieves the Group Policy objects of a domain, classifies each by its link usage, and recommends whether to keep or delete it."
	domainFlagNameConstant           = "domain"
	domainFlagDescriptionConstant    = "Active Directory domain to audit"
	filterFlagNameConstant           = "filter"
	filterFlagDescriptionConstant    = "Case-insensitive substring applied to policy names"
	allFlagNameConstant              = "all"
	allFlagDescriptionConstant       = "Audit every policy object in the domain"
	exportFlagNameConstant           = "export"
	exportFlagDescriptionConstant    = "Write the audit report as a CSV file"
	exportDirFlagNameConstant        = "export-dir"
	exportDirFlagDescriptionConstant = "Directory receiving the exported report"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the audit command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	PolicyLister                 PolicyLister
	LinkReportFetcher            LinkReportFetcher
	ModuleEnsurer                ModuleEnsurer
	ReportSink                   ReportSink
	RecordObserver               RecordObserver
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the audit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(domainFlagNameConstant, "", domainFlagDescriptionConstant)
	command.Flags().String(filterFlagNameConstant, "", filterFlagDescriptionConstant)
	command.Flags().Bool(allFlagNameConstant, false, allFlagDescriptionConstant)
	command.Flags().Bool(exportFlagNameConstant, false, exportFlagDescriptionConstant)
	command.Flags().String(exportDirFlagNameConstant, "", exportDirFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration, configurationError := builder.resolveConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	logger := builder.resolveLogger()

	policyLister, linkReportFetcher, moduleEnsurer, collaboratorError := builder.resolveCollaborators(logger)
	if collaboratorError != nil {
		return collaboratorError
	}

	reportSink, sinkError := builder.resolveReportSink(configuration)
	if sinkError != nil {
		return sinkError
	}

	recordObserver := builder.RecordObserver
	if recordObserver == nil {
		recordObserver = NewConsoleRecordObserver(command.OutOrStdout())
	}

	service, serviceCreationError := NewService(Dependencies{
		PolicyLister:      policyLister,
		LinkReportFetcher: linkReportFetcher,
		ModuleEnsurer:     moduleEnsurer,
		ReportSink:        reportSink,
		RecordObserver:    recordObserver,
		Logger:            logger,
		OutputWriter:      command.OutOrStdout(),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, runError := service.Run(command.Context(), Options{
		Domain:          configuration.Domain,
		NameFilter:      configuration.NameFilter,
		IncludeAll:      configuration.IncludeAll,
		Export:          configuration.Export,
		ExportDirectory: configuration.ExportDirectory,
		ModuleNames:     configuration.ModuleNames,
	})
	return runError
}

// resolveConfiguration merges the configured values with explicitly changed flags.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(domainFlagNameConstant) {
		domainValue, flagError := flagSet.GetString(domainFlagNameConstant)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		configuration.Domain = domainValue
	}
	if flagSet.Changed(filterFlagNameConstant) {
		filterValue, flagError := flagSet.GetString(filterFlagNameConstant)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		configuration.NameFilter = filterValue
	}
	if flagSet.Changed(allFlagNameConstant) {
		allValue, flagError := flagSet.GetBool(allFlagNameConstant)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		configuration.IncludeAll = allValue
	}
	if flagSet.Changed(exportFlagNameConstant) {
		exportValue, flagError := flagSet.GetBool(exportFlagNameConstant)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		configuration.Export = exportValue
	}
	if flagSet.Changed(exportDirFlagNameConstant) {
		exportDirectoryValue, flagError := flagSet.GetString(exportDirFlagNameConstant)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		configuration.ExportDirectory = exportDirectoryValue
	}

	return configuration.Sanitize(), nil
}

func (builder *CommandBuilder) resolveCollaborators(logger *zap.Logger) (PolicyLister, LinkReportFetcher, ModuleEnsurer, error) {
	policyLister := builder.PolicyLister
	linkReportFetcher := builder.LinkReportFetcher
	moduleEnsurer := builder.ModuleEnsurer
	if policyLister != nil && linkReportFetcher != nil && moduleEnsurer != nil {
		return policyLister, linkReportFetcher, moduleEnsurer, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	client, clientError := powershell.ResolveClient(logger, humanReadableLogging)
	if clientError != nil {
		return nil, nil, nil, clientError
	}

	if policyLister == nil {
		policyLister = client
	}
	if linkReportFetcher == nil {
		linkReportFetcher = client
	}
	if moduleEnsurer == nil {
		moduleService, serviceCreationError := modules.NewService(modules.Dependencies{Host: client, Logger: logger})
		if serviceCreationError != nil {
			return nil, nil, nil, serviceCreationError
		}
		moduleEnsurer = moduleService
	}

	return policyLister, linkReportFetcher, moduleEnsurer, nil
}

func (builder *CommandBuilder) resolveReportSink(configuration CommandConfiguration) (ReportSink, error) {
	if !configuration.Export {
		return builder.ReportSink, nil
	}
	if len(strings.TrimSpace(configuration.ExportDirectory)) == 0 {
		return nil, ConfigurationError{Message: exportDirectoryMissingMessageConstant}
	}
	if builder.ReportSink != nil {
		return builder.ReportSink, nil
	}
	return reports.NewCSVReportSink(configuration.ExportDirectory, nil)
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
