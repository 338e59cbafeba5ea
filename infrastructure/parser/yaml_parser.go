// Package parser decodes configuration files.
package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/xrizer/xrizer-go/domain/ports"
)

// YamlConfigParser implements ConfigParser for YAML.
type YamlConfigParser struct{}

// NewYamlConfigParser creates a new YamlConfigParser.
func NewYamlConfigParser() ports.ConfigParser {
	return &YamlConfigParser{}
}

// Parse unmarshals YAML bytes into a key/value tree. An empty document
// yields an empty map.
func (p *YamlConfigParser) Parse(data []byte) (map[string]any, error) {
	tree := make(map[string]any)
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	return tree, nil
}
