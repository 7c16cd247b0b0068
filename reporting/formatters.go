// Package reporting builds, renders and persists shortcut acceptance reports.
package reporting

import (
	"fmt"
	"io"
)

// ReportFormatter defines the interface for different report output formats
type ReportFormatter interface {
	Format(report *Report) (string, error)
}

// ReportWriter defines the interface for writing reports to various destinations
type ReportWriter interface {
	Write(content string) error
}

// StreamWriter writes reports to an io.Writer such as stdout
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter creates a new stream writer
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Write writes the content to the stream
func (sw *StreamWriter) Write(content string) error {
	_, err := fmt.Fprint(sw.w, content)
	return err
}

// RenderAll runs every formatter over the report and concatenates the output
func RenderAll(report *Report, formatters ...ReportFormatter) (string, error) {
	var out string
	for _, f := range formatters {
		s, err := f.Format(report)
		if err != nil {
			return "", err
		}
		out += s
	}
	return out, nil
}
