package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the conventional name of a blockade config file.
const DefaultFilename = "blockade.yaml"

// ParseYAML decodes a blockade YAML document and loads it with FromMap.
// This is a pure function: the caller reads the file.
func ParseYAML(content []byte) (*Configuration, error) {
	if strings.TrimSpace(string(content)) == "" {
		return nil, NewConfigError(KindMissingContainersSection, "", "config is empty", nil)
	}

	var dict map[string]any
	if err := yaml.Unmarshal(content, &dict); err != nil {
		return nil, NewConfigError(KindInvalidYAML, "", "invalid YAML syntax: "+err.Error(), err)
	}

	// A document holding only comments decodes to a nil map
	if dict == nil {
		return nil, NewConfigError(KindMissingContainersSection, "", "config is empty", nil)
	}

	return FromMap(dict)
}
