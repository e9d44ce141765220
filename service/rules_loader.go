package service

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type ruleSetFile struct {
	Default  string    `yaml:"default"`
	RuleSets []RuleSet `yaml:"rule_sets"`
}

// LoadRuleSets decodes a YAML document of the form
//
//	default: calculator
//	rule_sets:
//	  - name: ...
//	    old: {...}
//	    new: {...}
//
// and returns the sets plus the optional default name. Sets are validated.
func LoadRuleSets(r io.Reader) ([]RuleSet, string, error) {
	var file ruleSetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, "", fmt.Errorf("decode rule sets: %w", err)
	}
	for _, rs := range file.RuleSets {
		if err := rs.validate(); err != nil {
			return nil, "", err
		}
	}
	return file.RuleSets, file.Default, nil
}

// LoadRuleBook builds the default rule book and overlays the sets found in
// path, if any.
func LoadRuleBook(path string) (*RuleBook, error) {
	book := DefaultRuleBook()
	if path == "" {
		return book, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	sets, def, err := LoadRuleSets(f)
	if err != nil {
		return nil, err
	}
	if err := book.Add(sets...); err != nil {
		return nil, err
	}
	if def != "" {
		if err := book.SetDefault(def); err != nil {
			return nil, err
		}
	}
	return book, nil
}
