package gpoaudit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	policyListerMissingMessageConstant      = "policy lister not configured"
	linkReportFetcherMissingMessageConstant = "link report fetcher not configured"
	domainRequiredMessageConstant           = "domain must be provided"
	selectionModeMessageConstant            = "exactly one of --all or --filter must be selected"
	exportSinkMissingMessageConstant        = "export requested without a report sink"
	exportDirectoryMissingMessageConstant   = "export requested without an export directory"
	moduleEnsureFailureMessageConstant      = "module preparation failed"
	objectReportFailureMessageConstant      = "skipping policy object"
	noMatchesMessageConstant                = "No Group Policy objects matched the selection."
	exportWrittenTemplateConstant           = "Report written to %s\n"
	summaryTemplateConstant                 = "Audited %d Group Policy objects in %s.\n"
	policyNameFieldConstant                 = "policy"
)

// ErrPolicyListerNotConfigured indicates the policy lister dependency was missing.
var ErrPolicyListerNotConfigured = errors.New(policyListerMissingMessageConstant)

// ErrLinkReportFetcherNotConfigured indicates the link report fetcher dependency was missing.
var ErrLinkReportFetcherNotConfigured = errors.New(linkReportFetcherMissingMessageConstant)

// Dependencies enumerates external collaborators required for audit runs.
type Dependencies struct {
	PolicyLister      PolicyLister
	LinkReportFetcher LinkReportFetcher
	ModuleEnsurer     ModuleEnsurer
	ReportSink        ReportSink
	RecordObserver    RecordObserver
	Logger            *zap.Logger
	OutputWriter      io.Writer
}

// Options configures one audit run.
type Options struct {
	Domain          string
	NameFilter      string
	IncludeAll      bool
	Export          bool
	ExportDirectory string
	ModuleNames     []string
}

// Service coordinates policy retrieval, classification, streaming, and export.
type Service struct {
	policyLister      PolicyLister
	linkReportFetcher LinkReportFetcher
	moduleEnsurer     ModuleEnsurer
	reportSink        ReportSink
	recordObserver    RecordObserver
	logger            *zap.Logger
	outputWriter      io.Writer
}

// NewService validates required dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.PolicyLister == nil {
		return nil, ErrPolicyListerNotConfigured
	}
	if dependencies.LinkReportFetcher == nil {
		return nil, ErrLinkReportFetcherNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	outputWriter := dependencies.OutputWriter
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	return &Service{
		policyLister:      dependencies.PolicyLister,
		linkReportFetcher: dependencies.LinkReportFetcher,
		moduleEnsurer:     dependencies.ModuleEnsurer,
		reportSink:        dependencies.ReportSink,
		recordObserver:    dependencies.RecordObserver,
		logger:            logger,
		outputWriter:      outputWriter,
	}, nil
}

// Run audits the selected Group Policy objects of a domain. Records stream to
// the observer while they accumulate; per-object report failures are logged
// and skipped. An export failure is returned alongside the collected records.
func (service *Service) Run(executionContext context.Context, options Options) ([]PolicyRecord, error) {
	trimmedDomain := strings.TrimSpace(options.Domain)
	trimmedFilter := strings.TrimSpace(options.NameFilter)

	if len(trimmedDomain) == 0 {
		return nil, ConfigurationError{Message: domainRequiredMessageConstant}
	}
	if options.IncludeAll == (len(trimmedFilter) > 0) {
		return nil, ConfigurationError{Message: selectionModeMessageConstant}
	}
	if options.Export {
		if service.reportSink == nil {
			return nil, ConfigurationError{Message: exportSinkMissingMessageConstant}
		}
		if len(strings.TrimSpace(options.ExportDirectory)) == 0 {
			return nil, ConfigurationError{Message: exportDirectoryMissingMessageConstant}
		}
	}

	service.ensureModules(executionContext, options.ModuleNames)

	policyObjects, listError := service.policyLister.ListPolicyObjects(executionContext, trimmedDomain)
	if listError != nil {
		return nil, RetrievalError{Domain: trimmedDomain, Cause: listError}
	}

	selectedObjects := filterPolicyObjects(policyObjects, trimmedFilter)
	if len(selectedObjects) == 0 {
		fmt.Fprintln(service.outputWriter, noMatchesMessageConstant)
		return []PolicyRecord{}, nil
	}

	records := make([]PolicyRecord, 0, len(selectedObjects))
	for _, policyObject := range selectedObjects {
		linkReport, reportError := service.linkReportFetcher.GetLinkReport(executionContext, policyObject.Identifier, trimmedDomain)
		if reportError != nil {
			failure := ObjectReportError{PolicyName: policyObject.DisplayName, Cause: reportError}
			service.logger.Warn(objectReportFailureMessageConstant,
				zap.String(policyNameFieldConstant, policyObject.DisplayName),
				zap.Error(failure))
			continue
		}

		record := classifyPolicyObject(trimmedDomain, policyObject, linkReport)
		if service.recordObserver != nil {
			service.recordObserver.ObserveRecord(record)
		}
		records = append(records, record)
	}

	if !options.Export {
		fmt.Fprintf(service.outputWriter, summaryTemplateConstant, len(records), trimmedDomain)
		return records, nil
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.CSVRecord())
	}
	writtenPath, exportError := service.reportSink.WriteReport(trimmedDomain, CSVHeader(), rows)
	if exportError != nil {
		return records, ExportError{Cause: exportError}
	}
	fmt.Fprintf(service.outputWriter, exportWrittenTemplateConstant, writtenPath)

	return records, nil
}

// ensureModules prepares the PowerShell modules the audit depends on. Load
// outcomes are logged by the modules service; failures never abort the run.
func (service *Service) ensureModules(executionContext context.Context, moduleNames []string) {
	if service.moduleEnsurer == nil || len(moduleNames) == 0 {
		return
	}
	if _, ensureError := service.moduleEnsurer.EnsureLoaded(executionContext, moduleNames); ensureError != nil {
		service.logger.Warn(moduleEnsureFailureMessageConstant, zap.Error(ensureError))
	}
}
