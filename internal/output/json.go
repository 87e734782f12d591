package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/repolens/repolens/internal/model"
)

// JSONPageWriter writes a page of log entries as JSON.
type JSONPageWriter struct{}

// Write encodes the page to stdout or the configured output file.
func (w *JSONPageWriter) Write(page *model.Page, options OutputOptions) error {
	return writeJSON(page, options.OutputPath)
}

// JSONSummaryWriter writes an aggregation summary as JSON.
type JSONSummaryWriter struct{}

// Write encodes the summary to stdout or the configured output file.
func (w *JSONSummaryWriter) Write(report *SummaryReport, options OutputOptions) error {
	return writeJSON(report, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
