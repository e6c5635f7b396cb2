package gpoaudit

import "fmt"

const (
	configurationErrorTemplateConstant = "audit configuration invalid: %s"
	retrievalErrorTemplateConstant     = "failed to retrieve policy objects for %s: %v"
	objectReportErrorTemplateConstant  = "failed to fetch link report for %s: %v"
	exportErrorTemplateConstant        = "failed to export audit report: %v"
)

// ConfigurationError reports invalid audit options before any collaborator call.
type ConfigurationError struct {
	Message string
}

// Error describes the invalid configuration.
func (configurationError ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Message)
}

// RetrievalError reports a failed policy object listing.
type RetrievalError struct {
	Domain string
	Cause  error
}

// Error describes the retrieval failure.
func (retrievalError RetrievalError) Error() string {
	return fmt.Sprintf(retrievalErrorTemplateConstant, retrievalError.Domain, retrievalError.Cause)
}

// Unwrap exposes the underlying cause.
func (retrievalError RetrievalError) Unwrap() error {
	return retrievalError.Cause
}

// ObjectReportError reports a failed link report fetch for one policy object.
type ObjectReportError struct {
	PolicyName string
	Cause      error
}

// Error describes the per-object failure.
func (reportError ObjectReportError) Error() string {
	return fmt.Sprintf(objectReportErrorTemplateConstant, reportError.PolicyName, reportError.Cause)
}

// Unwrap exposes the underlying cause.
func (reportError ObjectReportError) Unwrap() error {
	return reportError.Cause
}

// ExportError reports a failed report sink write.
type ExportError struct {
	Cause error
}

// Error describes the export failure.
func (exportError ExportError) Error() string {
	return fmt.Sprintf(exportErrorTemplateConstant, exportError.Cause)
}

// Unwrap exposes the underlying cause.
func (exportError ExportError) Unwrap() error {
	return exportError.Cause
}
