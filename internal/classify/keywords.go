package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// keywordConfig is the YAML schema for a custom keyword list:
//
//	keywords:
//	  - climate
//	  - biodiversity
type keywordConfig struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywords reads a keyword list from a YAML file.
func LoadKeywords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}

	var cfg keywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing keywords file: %w", err)
	}
	if len(cfg.Keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s lists no keywords", path)
	}

	return cfg.Keywords, nil
}
