package conftree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vigil-hq/vigil/pkg/culture"
)

// Document is the on-disk shape of an audit input file: the configuration
// tree plus the environment the audit runs against (cultures, fallback
// keys, sample values, localized texts).
type Document struct {
	// Cultures lists the supported cultures with optional fallbacks.
	Cultures []culture.Entry `yaml:"cultures"`

	// LookupKeyFallbacks maps custom lookup keys to standin keys.
	LookupKeyFallbacks map[string]string `yaml:"lookupKeyFallbacks,omitempty"`

	// SampleValues supplies explicit sample values per lookup key.
	SampleValues map[string]any `yaml:"sampleValues,omitempty"`

	// ValueHostSampleValues supplies explicit sample values per host name.
	ValueHostSampleValues map[string]any `yaml:"valueHostSampleValues,omitempty"`

	// Texts holds localized text as culture -> key -> text. The "*"
	// culture holds default entries.
	Texts map[string]map[string]string `yaml:"texts,omitempty"`

	// ValueHosts is the configuration tree itself.
	ValueHosts []*ValueHostConfig `yaml:"valueHosts"`
}

// Tree returns the configuration tree portion of the document.
func (d *Document) Tree() *Config {
	return &Config{ValueHosts: d.ValueHosts}
}

// LoadFile reads and decodes an audit input document from a YAML file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes an audit input document from YAML bytes. Decoding goes
// through an intermediate yaml.Node so malformed documents report their
// location.
func LoadBytes(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	var doc Document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid audit document: %w", err)
	}
	return &doc, nil
}
