package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"vitrine-backoffice/models"
	"vitrine-backoffice/utils"
)

//go:embed templates/monthly_close.html
var templatesFS embed.FS

var monthlyCloseTemplate = template.Must(template.ParseFS(templatesFS, "templates/monthly_close.html"))

const (
	closeSheet   = "Fechamento"
	skippedSheet = "Ignoradas"
)

// ExportService renders the monthly close as HTML, XLSX and PDF
type ExportService struct {
	reports    *ReportService
	baseURL    string // Base URL the PDF printer loads the rendered page from (e.g. "http://localhost:8080")
	chromePath string
	exportDir  string // when set, every export is archived here as well
}

// NewExportService creates a new ExportService
func NewExportService(reports *ReportService, baseURL, chromePath, exportDir string) *ExportService {
	return &ExportService{
		reports:    reports,
		baseURL:    baseURL,
		chromePath: chromePath,
		exportDir:  exportDir,
	}
}

func closeFilename(c *models.Closure, ext string) string {
	return fmt.Sprintf("fechamento_%s.%s", c.PeriodStart.Format("2006-01"), ext)
}

// RenderMonthlyCloseHTML renders the previous month's close as a printable page
func (s *ExportService) RenderMonthlyCloseHTML(ctx context.Context) (string, error) {
	closure, err := s.reports.MonthlyClose(ctx)
	if err != nil {
		return "", err
	}
	return renderClosureHTML(closure, s.reports.now().In(s.reports.loc))
}

func renderClosureHTML(c *models.Closure, generatedAt time.Time) (string, error) {
	templateData := struct {
		Title           string
		PeriodLabel     string
		GrossSales      string
		Profit          string
		ProfitNegative  bool
		TotalQuotes     int
		ConvertedQuotes int
		ConversionRate  string
		Skipped         []models.SkippedQuote
		GeneratedAt     string
	}{
		Title:           "Fechamento Mensal - " + monthLabel(c.PeriodStart),
		PeriodLabel:     fmt.Sprintf("%s a %s", c.PeriodStart.Format("02/01/2006"), c.PeriodEnd.AddDate(0, 0, -1).Format("02/01/2006")),
		GrossSales:      utils.FormatBRL(c.GrossSales),
		Profit:          utils.FormatBRL(c.Profit),
		ProfitNegative:  c.Profit.IsNegative(),
		TotalQuotes:     c.TotalQuotes,
		ConvertedQuotes: c.ConvertedQuotes,
		ConversionRate:  utils.FormatPercent(c.ConversionRatePercent),
		Skipped:         c.Skipped,
		GeneratedAt:     generatedAt.Format("02/01/2006 15:04"),
	}

	var buf bytes.Buffer
	if err := monthlyCloseTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// MonthlyCloseXLSX builds a workbook with the close summary and the skipped quotes
func (s *ExportService) MonthlyCloseXLSX(ctx context.Context) (string, []byte, error) {
	closure, err := s.reports.MonthlyClose(ctx)
	if err != nil {
		return "", nil, err
	}

	data, err := closureWorkbook(closure)
	if err != nil {
		return "", nil, err
	}

	filename := closeFilename(closure, "xlsx")
	s.archive(filename, data)
	return filename, data, nil
}

func closureWorkbook(c *models.Closure) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Rename default sheet
	if err := f.SetSheetName(f.GetSheetName(0), closeSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Amounts go in as numbers; the BRL format is applied by the cell style
	gross, _ := c.GrossSales.Round(2).Float64()
	profit, _ := c.Profit.Round(2).Float64()
	rate, _ := c.ConversionRatePercent.Round(1).Float64()

	rows := [][]any{
		{"Período", c.PeriodStart.Format("2006-01-02"), c.PeriodEnd.Format("2006-01-02")},
		{"Vendas Totais", gross},
		{"Lucro Líquido", profit},
		{"Total Geradas", c.TotalQuotes},
		{"Convertidas", c.ConvertedQuotes},
		{"Taxa Conversão (%)", rate},
		{"Cotações ignoradas", len(c.Skipped)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(closeSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	moneyFmt := `"R$" #,##0.00`
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(closeSheet, "B2", "B3", style); err != nil {
		return nil, fmt.Errorf("failed to style cells: %w", err)
	}
	if err := f.SetColWidth(closeSheet, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(closeSheet, "B", "C", 16); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if len(c.Skipped) > 0 {
		if _, err := f.NewSheet(skippedSheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		header := []string{"quote_id", "reason"}
		if err := f.SetSheetRow(skippedSheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		for i, sq := range c.Skipped {
			record := []string{sq.QuoteID, sq.Reason}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(skippedSheet, cell, &record); err != nil {
				return nil, fmt.Errorf("failed to write skipped quote: %w", err)
			}
		}
		if err := f.SetColWidth(skippedSheet, "A", "B", 40); err != nil {
			return nil, fmt.Errorf("failed to size columns: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// archive keeps a copy of an export on disk; failures are logged and not returned
func (s *ExportService) archive(filename string, data []byte) {
	if s.exportDir == "" {
		return
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		logger.Warnf("⚠️ Export: cannot create %s: %v", s.exportDir, err)
		return
	}
	path := filepath.Join(s.exportDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Warnf("⚠️ Export: cannot write %s: %v", path, err)
		return
	}
	logger.Infof("✅ Export: archived %s", path)
}
