package classifier

import (
	"fmt"
	"os"
	"strings"

	"bookkeeping/corp-register/internal/models"

	"gopkg.in/yaml.v3"
)

// Rule labels a transaction whose lowercased description contains every
// listed substring. Rules are evaluated in order; the first match wins.
type Rule struct {
	Contains []string `yaml:"contains"`
	Label    string   `yaml:"label"`
}

// RuleSet holds the ordered rules for one side of the register plus the
// label used when no rule matches.
type RuleSet struct {
	Rules   []Rule `yaml:"rules"`
	Default string `yaml:"default"`
}

// LabelRules holds the description label rules for both register sides.
type LabelRules struct {
	Deposit RuleSet `yaml:"deposit"`
	Expense RuleSet `yaml:"expense"`
}

// DefaultLabelRules returns the built-in label rules for this register.
func DefaultLabelRules() LabelRules {
	return LabelRules{
		Deposit: RuleSet{
			Rules: []Rule{
				{Contains: []string{"transfer", "0639"}, Label: "Promissory Note to bond holder Ting Wang"},
				{Contains: []string{"e*trade"}, Label: "Transfer money from E*Trade Brokerage Account"},
				{Contains: []string{"gainsystems"}, Label: "Income by Consulting with GAINSystems"},
				{Contains: []string{"allegis group"}, Label: "Income by Consulting with JP Morgan Chase"},
			},
			Default: "Income",
		},
		Expense: RuleSet{
			Rules: []Rule{
				{Contains: []string{"e*trade"}, Label: "Transfer money to E*Trade Brokerage Account"},
				{Contains: []string{"transfer", "0639"}, Label: "Return money to bond holder Ting Wang"},
			},
			Default: "Payment",
		},
	}
}

// LoadLabelRules reads label rules from a YAML file.
func LoadLabelRules(path string) (LabelRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LabelRules{}, fmt.Errorf("failed to read label rules file %s: %w", path, err)
	}

	var rules LabelRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return LabelRules{}, fmt.Errorf("failed to parse label rules file %s: %w", path, err)
	}

	if rules.Deposit.Default == "" || rules.Expense.Default == "" {
		return LabelRules{}, fmt.Errorf("label rules file %s must set deposit and expense defaults", path)
	}

	return rules, nil
}

// Label returns the label for a transaction of the given category.
func (r LabelRules) Label(category models.RegisterCategory, description string) string {
	set := r.Expense
	if category == models.CategoryDeposit {
		set = r.Deposit
	}

	lowered := strings.ToLower(description)
	for _, rule := range set.Rules {
		if rule.matches(lowered) {
			return rule.Label
		}
	}
	return set.Default
}

func (r Rule) matches(loweredDescription string) bool {
	if len(r.Contains) == 0 {
		return false
	}
	for _, substr := range r.Contains {
		if !strings.Contains(loweredDescription, strings.ToLower(substr)) {
			return false
		}
	}
	return true
}
