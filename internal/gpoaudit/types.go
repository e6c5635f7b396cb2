package gpoaudit

import "strings"

// PolicyStatus classifies a Group Policy object by its link usage.
type PolicyStatus string

// Statuses assigned during classification.
const (
	PolicyStatusStillUsed      PolicyStatus = "StillUsed"
	PolicyStatusUnusedUnlinked PolicyStatus = "UnusedUnlinked"
	PolicyStatusDisabled       PolicyStatus = "Disabled"
)

// PolicyAction recommends the administrative follow-up for a policy object.
type PolicyAction string

// Actions paired with each status.
const (
	PolicyActionKeep              PolicyAction = "Keep"
	PolicyActionDelete            PolicyAction = "Delete"
	PolicyActionPotentiallyDelete PolicyAction = "PotentiallyDelete"
)

const (
	csvHeaderDomainConstant     = "domain"
	csvHeaderNameConstant       = "gpo_name"
	csvHeaderStatusConstant     = "status"
	csvHeaderActionConstant     = "action"
	csvHeaderLinkPathsConstant  = "link_paths"
	linkPathSeparatorConstant   = "; "
	noLinkPathsSentinelConstant = "none"
)

// PolicyRecord captures the audit classification of one policy object.
type PolicyRecord struct {
	Domain    string
	Name      string
	Status    PolicyStatus
	Action    PolicyAction
	LinkPaths []string
}

// CSVHeader lists the columns rendered by CSVRecord.
func CSVHeader() []string {
	return []string{
		csvHeaderDomainConstant,
		csvHeaderNameConstant,
		csvHeaderStatusConstant,
		csvHeaderActionConstant,
		csvHeaderLinkPathsConstant,
	}
}

// CSVRecord renders the record as one CSV row. Link paths are joined with a
// separator; unlinked policies render an explicit sentinel.
func (record PolicyRecord) CSVRecord() []string {
	return []string{
		record.Domain,
		record.Name,
		string(record.Status),
		string(record.Action),
		record.joinedLinkPaths(),
	}
}

func (record PolicyRecord) joinedLinkPaths() string {
	if len(record.LinkPaths) == 0 {
		return noLinkPathsSentinelConstant
	}
	return strings.Join(record.LinkPaths, linkPathSeparatorConstant)
}
