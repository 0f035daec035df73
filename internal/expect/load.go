package expect

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var suiteSchema []byte

// Load reads a suite from a .json, .yaml, or .yml file. JSON input — the
// derivation pipeline's output format — is checked against the embedded
// schema before unmarshalling, so malformed machine output is rejected with
// a precise error instead of silently producing empty expectations.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported expectation file extension %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}
}

// ParseJSON validates data against the suite schema and unmarshals it.
func ParseJSON(data []byte) (*Suite, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse expectations: %w", err)
	}
	schema, err := compileSuiteSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("expectations do not match schema: %w", err)
	}
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse expectations: %w", err)
	}
	return &s, nil
}

// ParseYAML unmarshals a hand-authored YAML suite. YAML input skips schema
// validation; Suite.Validate covers the semantic checks either way.
func ParseYAML(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse expectations: %w", err)
	}
	return &s, nil
}

func compileSuiteSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("suite.schema.json", bytes.NewReader(suiteSchema)); err != nil {
		return nil, fmt.Errorf("load suite schema: %w", err)
	}
	schema, err := compiler.Compile("suite.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile suite schema: %w", err)
	}
	return schema, nil
}
