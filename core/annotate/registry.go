package annotate

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Entity is the essentiality metadata of one registry entry.
type Entity struct {
	Function string `yaml:"function" json:"function"`
	Risk     string `yaml:"risk" json:"risk"`
	Category string `yaml:"category" json:"category"`
}

// Registry maps entity names to metadata. Membership means essential.
type Registry map[string]Entity

// IsEssential reports whether name is registered. A nil Registry is empty.
func (r Registry) IsEssential(name string) bool {
	_, ok := r[name]
	return ok
}

// Essentiality is the lookup record returned by Check.
type Essentiality struct {
	Entity    string `json:"entity"`
	Essential bool   `json:"essential"`
	Function  string `json:"function"`
	Risk      string `json:"risk"`
	Category  string `json:"category"`
}

// Check returns the registry record for name, or a low-risk default.
func (r Registry) Check(name string) Essentiality {
	if e, ok := r[name]; ok {
		return Essentiality{Entity: name, Essential: true, Function: e.Function, Risk: e.Risk, Category: e.Category}
	}
	return Essentiality{
		Entity:   name,
		Function: "unknown or non-essential function",
		Risk:     "LOW",
		Category: "Non-Essential",
	}
}

// ParseRegistry decodes a YAML (or JSON) mapping of name → Entity.
func ParseRegistry(r io.Reader) (Registry, error) {
	reg := Registry{}
	if err := yaml.NewDecoder(r).Decode(&reg); err != nil {
		if err == io.EOF {
			return reg, nil
		}
		return nil, fmt.Errorf("registry: %w", err)
	}
	return reg, nil
}

// LoadRegistry reads a registry file.
func LoadRegistry(path string) (Registry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	reg, err := ParseRegistry(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
