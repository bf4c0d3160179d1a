package config

import (
	"fmt"
	"os"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RulesParser handles parsing of tax rules files
type RulesParser struct{}

// NewRulesParser creates a new rules parser
func NewRulesParser() *RulesParser {
	return &RulesParser{}
}

// LoadFromFile loads rules from a YAML (or JSON) file
func (rp *RulesParser) LoadFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return rp.Parse(data)
}

// Parse decodes rules and validates them. Sections missing from the
// document keep their default values.
func (rp *RulesParser) Parse(data []byte) (*domain.TaxRules, error) {
	rules := domain.DefaultRules()
	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	merge(&rules, &doc)

	if err := rp.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// LoadOrDefault returns the default rules when filename is empty.
func (rp *RulesParser) LoadOrDefault(filename string) (*domain.TaxRules, error) {
	if filename == "" {
		rules := domain.DefaultRules()
		return &rules, nil
	}
	return rp.LoadFromFile(filename)
}

// ValidateRules validates the loaded rules
func (rp *RulesParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.Name == "" {
		return fmt.Errorf("%w: rules name is required", domain.ErrInvalidRules)
	}
	if err := rules.Slabs.Validate(); err != nil {
		return fmt.Errorf("slabs: %w", err)
	}
	if err := rules.Exemptions.Validate(); err != nil {
		return fmt.Errorf("exemptions: %w", err)
	}
	return rules.Validate()
}

// SaveRules writes rules as YAML
func SaveRules(rules *domain.TaxRules, filename string) error {
	b, err := MarshalRules(rules)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalRules renders rules as YAML
func MarshalRules(rules *domain.TaxRules) ([]byte, error) {
	return yaml.Marshal(rules)
}

// rulesDocument mirrors domain.TaxRules with optional scalars so a file can
// set a rate to zero explicitly.
type rulesDocument struct {
	Name       string                 `yaml:"name"`
	Slabs      domain.SlabTable       `yaml:"slabs"`
	Exemptions domain.ExemptionPolicy `yaml:"exemptions"`
	CessRate   *decimal.Decimal       `yaml:"cess_rate"`
	Savings    struct {
		MaxDeductibleInvestment *decimal.Decimal `yaml:"max_deductible_investment"`
		TopMarginalRate         *decimal.Decimal `yaml:"top_marginal_rate"`
	} `yaml:"savings"`
}

func merge(dst *domain.TaxRules, src *rulesDocument) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if len(src.Slabs) > 0 {
		dst.Slabs = src.Slabs
	}
	for c, v := range src.Exemptions {
		dst.Exemptions[c] = v
	}
	if src.CessRate != nil {
		dst.CessRate = *src.CessRate
	}
	if v := src.Savings.MaxDeductibleInvestment; v != nil {
		dst.Savings.MaxDeductibleInvestment = *v
	}
	if v := src.Savings.TopMarginalRate; v != nil {
		dst.Savings.TopMarginalRate = *v
	}
}
