package output

import (
	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// RenderReport formats report with the named formatter.
func RenderReport(report *domain.Report, format string) ([]byte, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return nil, err
	}
	return f.Format(report)
}

// GenerateReport formats report and writes it to filename (or a derived name).
func GenerateReport(report *domain.Report, format, filename string) (string, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, filename)
}
