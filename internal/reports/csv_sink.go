package reports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	exportFileNameTemplateConstant   = "gpo-audit-%s-%s.csv"
	exportTimestampLayoutConstant    = "20060102-150405"
	exportDirectoryPermissions       = 0o755
	directoryRequiredMessageConstant = "export directory must be provided"
	unsafeDomainCharactersConstant   = `\/:*?"<>| `
	domainComponentReplacementRune   = '-'
)

// ErrExportDirectoryRequired indicates the sink was constructed without a directory.
var ErrExportDirectoryRequired = errors.New(directoryRequiredMessageConstant)

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// CSVReportSink writes audit reports as timestamped CSV files under a
// configured directory.
type CSVReportSink struct {
	directoryPath string
	clock         Clock
}

// NewCSVReportSink validates the directory and constructs a CSVReportSink.
func NewCSVReportSink(directoryPath string, clock Clock) (*CSVReportSink, error) {
	trimmedDirectoryPath := strings.TrimSpace(directoryPath)
	if len(trimmedDirectoryPath) == 0 {
		return nil, ErrExportDirectoryRequired
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &CSVReportSink{directoryPath: trimmedDirectoryPath, clock: clock}, nil
}

// WriteReport renders the header and rows into a new CSV file named after the
// domain and the current timestamp. The written file path is returned.
func (sink *CSVReportSink) WriteReport(domainName string, header []string, rows [][]string) (string, error) {
	if directoryError := os.MkdirAll(sink.directoryPath, exportDirectoryPermissions); directoryError != nil {
		return "", directoryError
	}

	reportTimestamp := sink.clock.Now().Format(exportTimestampLayoutConstant)
	reportFileName := fmt.Sprintf(exportFileNameTemplateConstant, sanitizeDomainComponent(domainName), reportTimestamp)
	reportFilePath := filepath.Join(sink.directoryPath, reportFileName)

	reportFile, createError := os.Create(reportFilePath)
	if createError != nil {
		return "", createError
	}
	defer reportFile.Close()

	csvWriter := csv.NewWriter(reportFile)
	if writeError := csvWriter.Write(header); writeError != nil {
		return "", writeError
	}
	for _, row := range rows {
		if writeError := csvWriter.Write(row); writeError != nil {
			return "", writeError
		}
	}
	csvWriter.Flush()
	if flushError := csvWriter.Error(); flushError != nil {
		return "", flushError
	}

	return reportFilePath, nil
}

// sanitizeDomainComponent keeps the file name safe across platforms.
func sanitizeDomainComponent(domainName string) string {
	trimmedDomainName := strings.TrimSpace(domainName)
	return strings.Map(func(candidate rune) rune {
		if strings.ContainsRune(unsafeDomainCharactersConstant, candidate) {
			return domainComponentReplacementRune
		}
		return candidate
	}, trimmedDomainName)
}
