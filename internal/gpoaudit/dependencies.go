package gpoaudit

import (
	"context"

	"github.com/temirov/adx/internal/modules"
	"github.com/temirov/adx/internal/powershell"
)

// PolicyLister retrieves the policy objects defined in a domain.
type PolicyLister interface {
	ListPolicyObjects(executionContext context.Context, domainName string) ([]powershell.PolicyObject, error)
}

// LinkReportFetcher retrieves the link report of one policy object.
type LinkReportFetcher interface {
	GetLinkReport(executionContext context.Context, policyIdentifier string, domainName string) (powershell.LinkReport, error)
}

// ModuleEnsurer loads the PowerShell modules required before auditing.
type ModuleEnsurer interface {
	EnsureLoaded(executionContext context.Context, moduleNames []string) ([]modules.Outcome, error)
}

// ReportSink persists the collected records as one tabular artifact.
type ReportSink interface {
	WriteReport(domainName string, header []string, rows [][]string) (string, error)
}

// RecordObserver receives each classified record as it is produced.
type RecordObserver interface {
	ObserveRecord(record PolicyRecord)
}
