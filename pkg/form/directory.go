package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Directory carries the clinic-specific option lists the registration form
// enumerates: the physician roster and the accepted identification types.
type Directory struct {
	Physicians          []Option `yaml:"physicians"`
	IdentificationTypes []Option `yaml:"identificationTypes"`
}

// DefaultDirectory returns the built-in roster used when no directory
// document is configured.
func DefaultDirectory() Directory {
	return Directory{
		Physicians: []Option{
			{Value: "John Green", Label: "Dr. John Green"},
			{Value: "Leila Cameron", Label: "Dr. Leila Cameron"},
			{Value: "David Livingston", Label: "Dr. David Livingston"},
			{Value: "Evan Peter", Label: "Dr. Evan Peter"},
			{Value: "Jane Powell", Label: "Dr. Jane Powell"},
			{Value: "Alex Ramirez", Label: "Dr. Alex Ramirez"},
			{Value: "Jasmine Lee", Label: "Dr. Jasmine Lee"},
			{Value: "Alyana Cruz", Label: "Dr. Alyana Cruz"},
			{Value: "Hardik Sharma", Label: "Dr. Hardik Sharma"},
		},
		IdentificationTypes: []Option{
			{Value: "Birth Certificate", Label: "Birth Certificate"},
			{Value: "Driver's License", Label: "Driver's License"},
			{Value: "Medical Insurance Card", Label: "Medical Insurance Card/Policy"},
			{Value: "Military ID Card", Label: "Military ID Card"},
			{Value: "National Identity Card", Label: "National Identity Card"},
			{Value: "Passport", Label: "Passport"},
			{Value: "Resident Alien Card", Label: "Resident Alien Card (Green Card)"},
			{Value: "Social Security Card", Label: "Social Security Card"},
			{Value: "State ID Card", Label: "State ID Card"},
			{Value: "Student ID Card", Label: "Student ID Card"},
			{Value: "Voter ID Card", Label: "Voter ID Card"},
		},
	}
}

// UnmarshalYAML accepts either the {value, label} object form or a bare
// string, which fills both.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		o.Value = value
		o.Label = value
		return nil
	}
	type plain struct {
		Value string `yaml:"value"`
		Label string `yaml:"label"`
	}
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	o.Value = decoded.Value
	o.Label = decoded.Label
	if o.Label == "" {
		o.Label = o.Value
	}
	return nil
}

// ParseDirectory decodes a YAML directory document. Lists left empty fall
// back to the built-in defaults.
func ParseDirectory(data []byte) (Directory, error) {
	var dir Directory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return Directory{}, fmt.Errorf("form: parse directory: %w", err)
	}
	defaults := DefaultDirectory()
	if len(dir.Physicians) == 0 {
		dir.Physicians = defaults.Physicians
	}
	if len(dir.IdentificationTypes) == 0 {
		dir.IdentificationTypes = defaults.IdentificationTypes
	}
	return dir, nil
}

// LoadDirectory reads and parses a YAML directory document from disk.
func LoadDirectory(path string) (Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Directory{}, fmt.Errorf("form: load directory: %w", err)
	}
	return ParseDirectory(data)
}
