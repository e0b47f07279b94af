package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatJSON:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
	Filename  string // optional, generated when empty
}

// EstimateExporter writes sweep results to disk
type EstimateExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEstimateExporter creates a new estimate exporter
func NewEstimateExporter(logger *zap.Logger) *EstimateExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateExporter{
		logger: logger,
		now:    time.Now,
	}
}

// Export writes estimates sorted by supply and returns the output path.
func (ee *EstimateExporter) Export(estimates []curve.Estimate, options ExportOptions) (string, error) {
	if len(estimates) == 0 {
		return "", fmt.Errorf("no estimates to export")
	}

	sorted := make([]curve.Estimate, len(estimates))
	copy(sorted, estimates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Supply < sorted[j].Supply
	})

	filename := options.Filename
	if filename == "" {
		filename = ee.generateFilename(sorted, options)
	}
	outputPath := filepath.Join(options.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = ee.exportToCSV(sorted, outputPath)
	case FormatJSON:
		err = ee.exportToJSON(sorted, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	ee.logger.Info("Estimates exported",
		zap.String("file", outputPath),
		zap.Int("count", len(sorted)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// generateFilename creates a filename from the supply range and current time
func (ee *EstimateExporter) generateFilename(estimates []curve.Estimate, options ExportOptions) string {
	timestamp := ee.now().Format("20060102_150405")
	lo := estimates[0].Supply
	hi := estimates[len(estimates)-1].Supply
	return fmt.Sprintf("estimates_%s_%s_%s.%s", formatFloat(lo), formatFloat(hi), timestamp, options.Format)
}

// CSVHeaders returns the header row of CSV exports
func CSVHeaders() []string {
	return []string{"supply", "price"}
}

func (ee *EstimateExporter) exportToCSV(estimates []curve.Estimate, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer closeFile(file, &err)

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range estimates {
		if err := writer.Write([]string{formatFloat(e.Supply), formatFloat(e.Price)}); err != nil {
			return fmt.Errorf("failed to write estimate: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportSummary contains summary statistics for exported estimates
type ExportSummary struct {
	Count     int     `json:"count"`
	MinSupply float64 `json:"min_supply"`
	MaxSupply float64 `json:"max_supply"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}

func (ee *EstimateExporter) exportToJSON(estimates []curve.Estimate, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer closeFile(file, &err)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime time.Time        `json:"export_time"`
		Summary    ExportSummary    `json:"summary"`
		Estimates  []curve.Estimate `json:"estimates"`
	}{
		ExportTime: ee.now(),
		Summary:    CalculateSummary(estimates),
		Estimates:  estimates,
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// CalculateSummary computes range statistics over estimates.
func CalculateSummary(estimates []curve.Estimate) ExportSummary {
	summary := ExportSummary{Count: len(estimates)}
	if len(estimates) == 0 {
		return summary
	}

	summary.MinSupply, summary.MaxSupply = estimates[0].Supply, estimates[0].Supply
	summary.MinPrice, summary.MaxPrice = estimates[0].Price, estimates[0].Price
	for _, e := range estimates[1:] {
		if e.Supply < summary.MinSupply {
			summary.MinSupply = e.Supply
		}
		if e.Supply > summary.MaxSupply {
			summary.MaxSupply = e.Supply
		}
		if e.Price < summary.MinPrice {
			summary.MinPrice = e.Price
		}
		if e.Price > summary.MaxPrice {
			summary.MaxPrice = e.Price
		}
	}
	return summary
}

// closeFile closes a freshly written file and reports the close error
// unless an earlier write already failed.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close export file: %w", cerr)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
