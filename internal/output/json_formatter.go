package output

import (
	"encoding/json"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// JSONFormatter serializes the report, insights included, as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(withInsights(report), "", "  ")
}
