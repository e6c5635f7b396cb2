package gpoaudit

import (
	"fmt"
	"io"
	"os"
)

const (
	recordLineTemplateConstant = "GPO %s: %s -> %s (links: %s)\n"
)

// ConsoleRecordObserver renders one table line per classified record.
type ConsoleRecordObserver struct {
	writer io.Writer
}

// NewConsoleRecordObserver constructs an observer writing to the provided writer.
func NewConsoleRecordObserver(writer io.Writer) *ConsoleRecordObserver {
	if writer == nil {
		writer = os.Stdout
	}
	return &ConsoleRecordObserver{writer: writer}
}

// ObserveRecord implements RecordObserver by printing the classified record.
func (observer *ConsoleRecordObserver) ObserveRecord(record PolicyRecord) {
	fmt.Fprintf(observer.writer, recordLineTemplateConstant, record.Name, record.Status, record.Action, record.joinedLinkPaths())
}
