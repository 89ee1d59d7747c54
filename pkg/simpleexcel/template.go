package simpleexcel

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed default_export.yaml
var defaultExportYAML []byte

// ExportTemplate holds the defaults and cosmetic settings of an export.
type ExportTemplate struct {
	FileName   string          `yaml:"file_name"`
	SheetName  string          `yaml:"sheet_name"`
	Columns    []ColumnConfig  `yaml:"columns"`
	Overrides  []CellOverride  `yaml:"overrides"`
	RawRecords []yaml.MapSlice `yaml:"records"`
}

// Records returns the sample records in file order.
func (t *ExportTemplate) Records() []Record {
	out := make([]Record, len(t.RawRecords))
	for i, ms := range t.RawRecords {
		out[i] = RecordFromMapSlice(ms)
	}
	return out
}

// SheetOptions returns the write options for a sheet called name.
func (t *ExportTemplate) SheetOptions(name string) SheetOptions {
	return SheetOptions{
		SheetName: name,
		Columns:   t.Columns,
		Overrides: t.Overrides,
	}
}

// NewExportTemplateFromYamlConfig parses an export template.
func NewExportTemplateFromYamlConfig(yamlConfig string) (*ExportTemplate, error) {
	if yamlConfig == "" {
		return nil, fmt.Errorf("yaml config is empty")
	}
	var tmpl ExportTemplate
	if err := yaml.Unmarshal([]byte(yamlConfig), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &tmpl, nil
}

// DefaultExportTemplate returns the built-in template.
func DefaultExportTemplate() (*ExportTemplate, error) {
	return NewExportTemplateFromYamlConfig(string(defaultExportYAML))
}
