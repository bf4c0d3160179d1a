package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"TAXCALC_RULES_FILE", "TAXCALC_LOG_FORMAT", "TAXCALC_LOG_OUTPUT", "TAXCALC_BATCH_WORKERS"} {
		t.Setenv(k, "")
	}
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "taxcalc version "+Version+"\n", out)
}

func TestComputeCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "compute", "--income", "25,00,000", "--format", "json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Result.TotalTax.Equal(decimal.NewFromInt(330000)))
	assert.True(t, report.Result.Cess.Equal(decimal.NewFromInt(13200)))
	assert.Equal(t, domain.CategorySalaried, report.Result.Category)
}

func TestComputeCommand_Console(t *testing.T) {
	out, err := runCommand(t, "compute", "-i", "1250000", "-c", "others")
	require.NoError(t, err)
	assert.Contains(t, out, "INCOME TAX SUMMARY")
	assert.Contains(t, out, "Category:           Others")
	assert.Contains(t, out, "Marginal relief")
}

func TestComputeCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := runCommand(t, "compute", "--income", "1300000", "--format", "excel", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestComputeCommand_Errors(t *testing.T) {
	_, err := runCommand(t, "compute", "--income", "-5")
	assert.True(t, errors.Is(err, domain.ErrInvalidIncome), "got %v", err)

	_, err = runCommand(t, "compute", "--income", "abc")
	assert.True(t, errors.Is(err, domain.ErrInvalidIncome), "got %v", err)

	_, err = runCommand(t, "compute", "--income", "100", "--category", "Pensioner")
	assert.True(t, errors.Is(err, domain.ErrInvalidCategory), "got %v", err)

	_, err = runCommand(t, "compute")
	assert.Error(t, err)
}

func TestComputeCommand_CustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: \"No cess\"\ncess_rate: 0\n"), 0644))

	out, err := runCommand(t, "--rules", path, "compute", "--income", "2500000", "--format", "json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "No cess", report.RulesName)
	assert.True(t, report.Result.Cess.IsZero())

	_, err = runCommand(t, "--rules", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incomes.csv")
	input := "income,category\n1000000,Salaried\n1300000,salaried\n\"25,00,000\",Others\n1250000\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	out, err := runCommand(t, "batch", "--workers", "2", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Income,Category"))
	assert.True(t, strings.HasPrefix(lines[1], "1000000.00,Salaried,0.00"))
	assert.True(t, strings.HasPrefix(lines[2], "1300000.00,Salaried,75000.00,50000.00,25000.00"))
	assert.True(t, strings.HasPrefix(lines[3], "2500000.00,Others,330000.00,0.00,330000.00"))
	assert.True(t, strings.HasPrefix(lines[4], "1250000.00,Salaried,0.00"))
}

func TestBatchCommand_BadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incomes.csv")
	require.NoError(t, os.WriteFile(path, []byte("1000000,Salaried\n1300000,Business\n"), 0644))

	_, err := runCommand(t, "batch", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCategory))
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadBatchRequests_Empty(t *testing.T) {
	_, err := readBatchRequests(strings.NewReader("income,category\n"))
	assert.Error(t, err)
}

func TestSlabsCommand(t *testing.T) {
	out, err := runCommand(t, "slabs")
	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultRules().Name)
	assert.NotContains(t, out, "*")

	out, err = runCommand(t, "slabs", "--income", "1300000")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "\n* "))
}

func TestRulesCommand(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultRules().Name)
	assert.Contains(t, out, "Salaried")

	path := filepath.Join(t.TempDir(), "rules.yaml")
	out, err = runCommand(t, "rules", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rules written to")

	// the written file is accepted back as a rules file
	_, err = runCommand(t, "--rules", path, "slabs")
	assert.NoError(t, err)
}

func TestServeCommand_WatchNeedsRulesFile(t *testing.T) {
	_, err := runCommand(t, "serve", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a rules file")
}
