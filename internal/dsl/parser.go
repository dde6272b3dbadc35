package dsl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser reads model definitions from YAML
type Parser struct {
	filePath string
}

// NewParser creates a parser for the definition stored at filePath
func NewParser(filePath string) *Parser {
	return &Parser{filePath: filePath}
}

// Parse reads and decodes the definition file. A definition without a model
// name is named after its file.
func (p *Parser) Parse() (*Definition, error) {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if def.Model == "" {
		base := filepath.Base(p.filePath)
		def.Model = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// Parse decodes a definition from YAML. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &def, nil
}
