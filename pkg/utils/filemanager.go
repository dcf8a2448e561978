// =============================================================================
// Receipt Desk - File Manager Utility
// =============================================================================
//
// This module provides file helpers shared by the exporter and the commands:
//   - Output directory checks and creation
//   - Export summary log generation
//
// SUMMARY LOGS:
//   - One plain-text file per batch, written next to the receipts
//   - Named export_summary_<YYYYMMDD_HHMMSS>.txt
//   - Lists every receipt written and every row that failed
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
//
// RETURNS:
//   - An error if the directory cannot be created, or if dir exists but is
//     not a directory.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path %s is not a directory", dir)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// =============================================================================
// EXPORT SUMMARY
// =============================================================================

// ExportSummary contains summary information about one export batch.
type ExportSummary struct {
	BatchID   string
	Source    string
	OutputDir string
	StartTime time.Time
	EndTime   time.Time

	// Selected is the number of selected rows, hidden ones included.
	Selected int

	// Hidden lists selected rows excluded by the search filter.
	Hidden []int

	Success  int
	Failed   int
	Receipts []ReceiptInfo
}

// ReceiptInfo describes one processed row.
type ReceiptInfo struct {
	Row     int
	File    string
	Outcome string
	OK      bool
}

// WriteSummaryLog writes an export summary to a log file.
//
// PARAMETERS:
//   - summary: The batch summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ExportSummary, outputDir string) (string, error) {
	// Generate summary file name.
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryFileName := fmt.Sprintf("export_summary_%s.txt", timestamp)
	summaryPath := filepath.Join(outputDir, summaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Receipt Desk - Export Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Batch ID:       %s\n"+
		"  Source:         %s\n"+
		"  Output:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Selected:           %d\n"+
		"  Hidden by filter:   %d\n"+
		"  Successful:         %d\n"+
		"  Failed:             %d\n\n",
		summary.BatchID,
		summary.Source,
		summary.OutputDir,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.Selected,
		len(summary.Hidden),
		summary.Success,
		summary.Failed)

	var ok, failed []ReceiptInfo
	for _, r := range summary.Receipts {
		if r.OK {
			ok = append(ok, r)
		} else {
			failed = append(failed, r)
		}
	}

	if len(ok) > 0 {
		writer.WriteString("Receipts:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, r := range ok {
			fmt.Fprintf(writer, "  Row %-6d %-10s %s\n", r.Row, r.Outcome, r.File)
		}
		writer.WriteString("\n")
	}

	if len(failed) > 0 {
		writer.WriteString("Failed Rows:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, r := range failed {
			fmt.Fprintf(writer, "  Row %-6d %s\n", r.Row, r.File)
		}
		writer.WriteString("\n")
	}

	if len(summary.Hidden) > 0 {
		fmt.Fprintf(writer, "Skipped (hidden by filter): %v\n\n", summary.Hidden)
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
