package simpleexcel

// ColumnConfig sets the width of one column, addressed by its letter.
type ColumnConfig struct {
	Column string  `yaml:"column"`
	Width  float64 `yaml:"width"` // in characters
}

// CellOverride replaces a single cell after the grid has been laid out.
type CellOverride struct {
	Cell      string      `yaml:"cell"`
	Value     interface{} `yaml:"value"`
	FontColor string      `yaml:"font_color"` // hex RGB, no leading '#'
}

// SheetOptions controls how a grid is written into a workbook.
type SheetOptions struct {
	SheetName string
	Columns   []ColumnConfig
	Overrides []CellOverride
}
