package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// PeriodRecord is one period as delivered by the chart backend. Backends
// disagree on field names, so every accepted spelling has its own field;
// Normalize and Convert pick the first one that is set.
type PeriodRecord struct {
	Start          *string `json:"start,omitempty" yaml:"start,omitempty" toml:"start,omitempty"`
	StartDate      *string `json:"startDate,omitempty" yaml:"startDate,omitempty" toml:"startDate,omitempty"`
	StartDateSnake *string `json:"start_date,omitempty" yaml:"start_date,omitempty" toml:"start_date,omitempty"`

	End          *string `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`
	EndDate      *string `json:"endDate,omitempty" yaml:"endDate,omitempty" toml:"endDate,omitempty"`
	EndDateSnake *string `json:"end_date,omitempty" yaml:"end_date,omitempty" toml:"end_date,omitempty"`

	Planet *string `json:"planet,omitempty" yaml:"planet,omitempty" toml:"planet,omitempty"`
	Lord   *string `json:"lord,omitempty" yaml:"lord,omitempty" toml:"lord,omitempty"`
	Sign   *string `json:"sign,omitempty" yaml:"sign,omitempty" toml:"sign,omitempty"`

	// A nil pointer means the key was absent; a pointer to an empty slice
	// means the backend sent an empty list.
	Children        *[]PeriodRecord `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	SubPeriods      *[]PeriodRecord `json:"sub_periods,omitempty" yaml:"sub_periods,omitempty" toml:"sub_periods,omitempty"`
	SubPeriodsCamel *[]PeriodRecord `json:"subPeriods,omitempty" yaml:"subPeriods,omitempty" toml:"subPeriods,omitempty"`
}

var (
	startFieldNames = []string{"start", "startDate", "start_date"}
	endFieldNames   = []string{"end", "endDate", "end_date"}
	lordFieldNames  = []string{"planet", "lord", "sign"}
)

func (r *PeriodRecord) startFields() []*string {
	return []*string{r.Start, r.StartDate, r.StartDateSnake}
}

func (r *PeriodRecord) endFields() []*string {
	return []*string{r.End, r.EndDate, r.EndDateSnake}
}

func (r *PeriodRecord) lordFields() []*string {
	return []*string{r.Planet, r.Lord, r.Sign}
}

// children returns the first children list that is present, and whether any
// was present at all.
func (r *PeriodRecord) children() ([]PeriodRecord, bool) {
	for _, c := range []*[]PeriodRecord{r.Children, r.SubPeriods, r.SubPeriodsCamel} {
		if c != nil {
			return *c, true
		}
	}
	return nil, false
}

// ChartFile is the document form of a chart: either a bare list of
// Mahadasha records or an object wrapping them.
type ChartFile struct {
	Periods []PeriodRecord `json:"periods,omitempty" yaml:"periods,omitempty" toml:"periods,omitempty"`
	Dashas  []PeriodRecord `json:"dashas,omitempty" yaml:"dashas,omitempty" toml:"dashas,omitempty"`
}

// Records returns the Mahadasha records of the document.
func (f *ChartFile) Records() []PeriodRecord {
	if len(f.Periods) > 0 {
		return f.Periods
	}
	return f.Dashas
}

// Format is a chart document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported chart file extension %q (expected .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// LoadChart reads and parses a chart document.
func LoadChart(path string) ([]PeriodRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseChart(data, format)
}

// ParseChart decodes a chart document in the given format.
func ParseChart(data []byte, format Format) ([]PeriodRecord, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		var f ChartFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing toml chart: %w", err)
		}
		return f.Records(), nil
	}
	return nil, fmt.Errorf("unsupported chart format %q", format)
}

func parseJSON(data []byte) ([]PeriodRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var records []PeriodRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parsing json chart: %w", err)
		}
		return records, nil
	}
	var f ChartFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("parsing json chart: %w", err)
	}
	return f.Records(), nil
}

func parseYAML(data []byte) ([]PeriodRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml chart: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []PeriodRecord
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("parsing yaml chart: %w", err)
		}
		return records, nil
	}
	var f ChartFile
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing yaml chart: %w", err)
	}
	return f.Records(), nil
}
