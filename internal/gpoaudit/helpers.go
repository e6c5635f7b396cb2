package gpoaudit

import (
	"strings"

	"github.com/temirov/adx/internal/powershell"
)

// filterPolicyObjects keeps the objects whose display name contains the
// filter, compared case-insensitively. An empty filter keeps everything.
func filterPolicyObjects(policyObjects []powershell.PolicyObject, nameFilter string) []powershell.PolicyObject {
	trimmedFilter := strings.TrimSpace(nameFilter)
	if len(trimmedFilter) == 0 {
		return policyObjects
	}

	loweredFilter := strings.ToLower(trimmedFilter)
	filtered := make([]powershell.PolicyObject, 0, len(policyObjects))
	for _, policyObject := range policyObjects {
		if strings.Contains(strings.ToLower(policyObject.DisplayName), loweredFilter) {
			filtered = append(filtered, policyObject)
		}
	}
	return filtered
}

// classifyPolicyObject derives the status and action of one policy object
// from its link report. The first link is treated as representative when the
// report carries several links in mixed states.
func classifyPolicyObject(domainName string, policyObject powershell.PolicyObject, linkReport powershell.LinkReport) PolicyRecord {
	linkPaths := make([]string, 0, len(linkReport.Links))
	for _, policyLink := range linkReport.Links {
		linkPaths = append(linkPaths, policyLink.Location)
	}

	record := PolicyRecord{
		Domain:    domainName,
		Name:      policyObject.DisplayName,
		LinkPaths: linkPaths,
	}

	switch {
	case len(linkReport.Links) == 0:
		record.Status = PolicyStatusUnusedUnlinked
		record.Action = PolicyActionDelete
	case linkReport.Links[0].Enabled:
		record.Status = PolicyStatusStillUsed
		record.Action = PolicyActionKeep
	default:
		record.Status = PolicyStatusDisabled
		record.Action = PolicyActionPotentiallyDelete
	}

	return record
}
