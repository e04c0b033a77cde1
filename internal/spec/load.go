package spec

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a spec document from r. The name argument is
// used in diagnostics only (usually the file path).
func Load(r io.Reader, name string) (*ExtractionSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading spec %s: %w", name, err)
	}

	var s ExtractionSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing spec %s: %w", name, err)
	}

	if err := Validate(&s, name); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads and validates a spec from a YAML file.
func LoadFile(path string) (*ExtractionSpec, error) {
	file, err := os.Open(path) // #nosec G304 -- spec paths come from configured plugin directories
	if err != nil {
		return nil, fmt.Errorf("error opening spec file: %w", err)
	}
	defer file.Close()

	return Load(file, path)
}

// Marshal serializes a spec back to YAML. Loading the output yields a
// deeply equal ExtractionSpec.
func Marshal(s *ExtractionSpec) ([]byte, error) {
	return yaml.Marshal(s)
}
