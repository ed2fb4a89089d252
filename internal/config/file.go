package config

// File represents the structure of the .volsreport.yaml configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	// Input is the dataset path.
	Input string `yaml:"input,omitempty"`

	// OutputDir is the directory documents are written to.
	OutputDir string `yaml:"output_dir,omitempty"`

	// BaseName is the document file name without extension.
	BaseName string `yaml:"base_name,omitempty"`

	// Organization is printed on the title slide.
	Organization string `yaml:"organization,omitempty"`

	// FontDir is searched for the DejaVu fonts first.
	FontDir string `yaml:"font_dir,omitempty"`

	// Conclusions override the closing bullets.
	Conclusions Conclusions `yaml:"conclusions,omitempty"`

	// Formats enables companion outputs.
	Formats Formats `yaml:"formats,omitempty"`

	// History configures the run history database.
	History History `yaml:"history,omitempty"`
}

// Conclusions holds the closing bullets of each document type.
type Conclusions struct {
	Document []string `yaml:"document,omitempty"`
	Slides   []string `yaml:"slides,omitempty"`
}

// Formats selects the companion outputs generated next to the PDF and PPTX.
type Formats struct {
	XLSX     bool `yaml:"xlsx,omitempty"`
	Markdown bool `yaml:"markdown,omitempty"`
}

// History configures the run history database.
type History struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir overrides the XDG data directory.
	Dir string `yaml:"dir,omitempty"`
}

// Apply copies the values set in the file onto cfg.
// Boolean switches can only be turned on by the file; CLI flags applied
// afterwards take precedence over both.
func (f *File) Apply(cfg *Config) {
	if f.Input != "" {
		cfg.InputPath = f.Input
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.BaseName != "" {
		cfg.BaseName = f.BaseName
	}
	if f.Organization != "" {
		cfg.Organization = f.Organization
	}
	if f.FontDir != "" {
		cfg.FontDir = f.FontDir
	}
	if f.Conclusions.Document != nil {
		cfg.DocumentConclusions = f.Conclusions.Document
	}
	if f.Conclusions.Slides != nil {
		cfg.SlideConclusions = f.Conclusions.Slides
	}
	cfg.XLSX = cfg.XLSX || f.Formats.XLSX
	cfg.Markdown = cfg.Markdown || f.Formats.Markdown
	cfg.History = cfg.History || f.History.Enabled
	if f.History.Dir != "" {
		cfg.DBDir = f.History.Dir
	}
}
