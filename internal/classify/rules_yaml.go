package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// RulesFile is the on-disk shape of a custom rules file.
type RulesFile struct {
	Rules []model.ClassificationRule `yaml:"rules"`
}

// LoadRules reads custom classification rules from a YAML file. Statement
// aliases such as "asset" or "income" are accepted.
func LoadRules(path string) ([]model.ClassificationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	for i, r := range f.Rules {
		st, ok := model.ParseStatement(string(r.Statement))
		if !ok || st == model.Unmapped {
			return nil, fmt.Errorf("rule %s: unknown statement %q", r.ID, r.Statement)
		}
		f.Rules[i].Statement = st
	}
	return f.Rules, nil
}

// SaveRules writes rules to a YAML file.
func SaveRules(path string, rules []model.ClassificationRule) error {
	data, err := yaml.Marshal(RulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// WithCustomRules returns a copy of base extended with custom rules. A custom
// rule replaces a built-in one with the same ID.
func WithCustomRules(base *Ruleset, custom []model.ClassificationRule) (*Ruleset, error) {
	rs := base.Clone()
	for _, r := range custom {
		if err := rs.Add(r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}
