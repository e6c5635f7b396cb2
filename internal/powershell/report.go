package powershell

import (
	"encoding/xml"
	"errors"
	"strings"
)

const (
	emptyReportMessageConstant   = "link report output was empty"
	enabledFlagTrueValueConstant = "true"
	xmlDeclarationPrefixConstant = "<?xml"
	xmlDeclarationSuffixConstant = "?>"
)

// gpoReportDocument mirrors the subset of the Get-GPOReport XML schema the
// auditor consumes.
type gpoReportDocument struct {
	XMLName xml.Name            `xml:"GPO"`
	LinksTo []gpoReportLinkNode `xml:"LinksTo"`
}

type gpoReportLinkNode struct {
	SOMName string `xml:"SOMName"`
	SOMPath string `xml:"SOMPath"`
	Enabled string `xml:"Enabled"`
}

// parseLinkReport decodes the XML report emitted by Get-GPOReport into a
// LinkReport. Links without a path are dropped.
func parseLinkReport(rawReport string) (LinkReport, error) {
	trimmedReport := stripXMLDeclaration(strings.TrimSpace(rawReport))
	if len(trimmedReport) == 0 {
		return LinkReport{}, errors.New(emptyReportMessageConstant)
	}

	var document gpoReportDocument
	if decodeError := xml.Unmarshal([]byte(trimmedReport), &document); decodeError != nil {
		return LinkReport{}, decodeError
	}

	links := make([]PolicyLink, 0, len(document.LinksTo))
	for _, linkNode := range document.LinksTo {
		linkLocation := strings.TrimSpace(linkNode.SOMPath)
		if len(linkLocation) == 0 {
			continue
		}
		links = append(links, PolicyLink{
			Location: linkLocation,
			Enabled:  strings.EqualFold(strings.TrimSpace(linkNode.Enabled), enabledFlagTrueValueConstant),
		})
	}

	return LinkReport{Links: links}, nil
}

// stripXMLDeclaration removes the leading XML declaration. Get-GPOReport
// declares the utf-16 charset, which encoding/xml rejects without a
// CharsetReader, but the text arriving through stdout is already UTF-8.
func stripXMLDeclaration(report string) string {
	if !strings.HasPrefix(report, xmlDeclarationPrefixConstant) {
		return report
	}
	declarationEnd := strings.Index(report, xmlDeclarationSuffixConstant)
	if declarationEnd < 0 {
		return report
	}
	return strings.TrimSpace(report[declarationEnd+len(xmlDeclarationSuffixConstant):])
}
