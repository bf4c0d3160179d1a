package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with the summary, the
// breakdown and the highlighted slab table.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"optcurr": FormatOptionalCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		InsightList []string
		Assumptions []string
	}{report, GenerateInsights(report), GenerateAssumptions(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
