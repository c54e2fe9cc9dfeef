package faq

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed faq.yaml
var defaultFAQ []byte

// Entry is one question and its answer
type Entry struct {
	Question string `yaml:"q" json:"q"`
	Answer   string `yaml:"a" json:"a"`
}

// Parse reads a YAML list of {q, a} entries. Entries missing either half
// are rejected.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse faq: %w", err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Question) == "" || strings.TrimSpace(e.Answer) == "" {
			return nil, fmt.Errorf("parse faq: entry %d is incomplete", i+1)
		}
	}
	return entries, nil
}

// Default returns the built-in FAQ
func Default() []Entry {
	entries, err := Parse(defaultFAQ)
	if err != nil {
		panic(err)
	}
	return entries
}

// Load reads the FAQ from path, or the built-in one when path is empty
func Load(path string) ([]Entry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faq: %w", err)
	}
	return Parse(data)
}
