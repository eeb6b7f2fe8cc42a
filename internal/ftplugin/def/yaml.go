package def

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a filetype definition from a YAML file.
func LoadYAML(path string) (*Filetype, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening definition %s: %w", path, err)
	}
	defer f.Close()

	ft, err := DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", path, err)
	}
	return ft, nil
}

// DecodeYAML reads a filetype definition from a YAML stream.
func DecodeYAML(r io.Reader) (*Filetype, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}

	var ft Filetype
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if err := ft.Validate(); err != nil {
		return nil, err
	}
	return &ft, nil
}
