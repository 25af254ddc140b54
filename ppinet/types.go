package ppinet

import (
	"fmt"
	"strconv"
	"strings"
)

// InteractionRecord is one row of the STRING network table. Values are kept as the
// text received from the endpoint and parsed on demand.
type InteractionRecord struct {
	StringIDA      string `json:"stringId_A"`
	StringIDB      string `json:"stringId_B"`
	PreferredNameA string `json:"preferredName_A"`
	PreferredNameB string `json:"preferredName_B"`
	NCBITaxonID    string `json:"ncbiTaxonId"`
	Score          string `json:"score"`
	NScore         string `json:"nscore"`
	FScore         string `json:"fscore"`
	PScore         string `json:"pscore"`
	AScore         string `json:"ascore"`
	EScore         string `json:"escore"`
	DScore         string `json:"dscore"`
	TScore         string `json:"tscore"`
}

// InteractionTable is an ordered list of records in response order. Duplicate pairs
// are preserved.
type InteractionTable []InteractionRecord

// ExperimentalScore parses the escore column.
func (r InteractionRecord) ExperimentalScore() (float64, error) {
	return parseScore(ColumnEScore, r.EScore)
}

// Values returns the record in schema order.
func (r InteractionRecord) Values() []string {
	return []string{
		r.StringIDA, r.StringIDB, r.PreferredNameA, r.PreferredNameB, r.NCBITaxonID,
		r.Score, r.NScore, r.FScore, r.PScore, r.AScore, r.EScore, r.DScore, r.TScore,
	}
}

// Value returns the raw text of the named column.
func (r InteractionRecord) Value(column string) (string, bool) {
	idx := ColumnIndex(column)
	if idx < 0 {
		return "", false
	}
	return r.Values()[idx], true
}

// recordFromFields maps a split row onto the schema by position.
func recordFromFields(fields []string) (InteractionRecord, error) {
	if len(fields) != len(Columns) {
		return InteractionRecord{}, fmt.Errorf("got %d fields, want %d: %w", len(fields), len(Columns), ErrFieldCount)
	}
	return InteractionRecord{
		StringIDA:      fields[0],
		StringIDB:      fields[1],
		PreferredNameA: fields[2],
		PreferredNameB: fields[3],
		NCBITaxonID:    fields[4],
		Score:          fields[5],
		NScore:         fields[6],
		FScore:         fields[7],
		PScore:         fields[8],
		AScore:         fields[9],
		EScore:         fields[10],
		DScore:         fields[11],
		TScore:         fields[12],
	}, nil
}

func parseScore(column, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", column, text, ErrMalformedScore)
	}
	return v, nil
}

// FetchConfig describes the STRING endpoint and the fixed request parameters.
type FetchConfig struct {
	BaseURL        string `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	OutputFormat   string `json:"outputFormat" yaml:"outputFormat" validate:"required"`
	Method         string `json:"method" yaml:"method" validate:"required"`
	Species        int    `json:"species" yaml:"species" validate:"gt=0"`
	CallerIdentity string `json:"callerIdentity" yaml:"callerIdentity" validate:"required"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds" validate:"gte=0"`
}

// LayoutConfig controls the force-directed layout.
type LayoutConfig struct {
	Seed       uint64  `json:"seed" yaml:"seed"`
	Iterations int     `json:"iterations" yaml:"iterations" validate:"gt=0"`
	Repulsion  float64 `json:"repulsion" yaml:"repulsion" validate:"gt=0"`
	Rate       float64 `json:"rate" yaml:"rate" validate:"gt=0"`
	Theta      float64 `json:"theta" yaml:"theta" validate:"gte=0"`
}

// ViewConfig controls how the network window is drawn.
type ViewConfig struct {
	Title      string  `json:"title" yaml:"title"`
	Width      float32 `json:"width" yaml:"width" validate:"gt=0"`
	Height     float32 `json:"height" yaml:"height" validate:"gt=0"`
	NodeRadius float32 `json:"nodeRadius" yaml:"nodeRadius" validate:"gt=0"`
	NodeColor  string  `json:"nodeColor" yaml:"nodeColor" validate:"omitempty,hexcolor"`
	FontSize   float32 `json:"fontSize" yaml:"fontSize" validate:"gt=0"`
}

// Config aggregates runtime settings persisted to config.json or config.yaml.
type Config struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Layout LayoutConfig `json:"layout" yaml:"layout"`
	View   ViewConfig   `json:"view" yaml:"view"`
}

// ApplyDefaults populates zero values with the STRING defaults.
func (c *Config) ApplyDefaults() {
	if c.Fetch.BaseURL == "" {
		c.Fetch.BaseURL = DefaultBaseURL
	}
	if c.Fetch.OutputFormat == "" {
		c.Fetch.OutputFormat = "tsv-no-header"
	}
	if c.Fetch.Method == "" {
		c.Fetch.Method = "network"
	}
	if c.Fetch.Species == 0 {
		c.Fetch.Species = DefaultSpecies
	}
	if c.Fetch.CallerIdentity == "" {
		c.Fetch.CallerIdentity = DefaultCallerIdentity
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Layout.Seed == 0 {
		c.Layout.Seed = DefaultSeed
	}
	if c.Layout.Iterations == 0 {
		c.Layout.Iterations = 50
	}
	if c.Layout.Repulsion == 0 {
		c.Layout.Repulsion = 1
	}
	if c.Layout.Rate == 0 {
		c.Layout.Rate = 0.05
	}
	if c.Layout.Theta == 0 {
		c.Layout.Theta = 0.2
	}
	if c.View.Title == "" {
		c.View.Title = DefaultTitle
	}
	if c.View.Width == 0 {
		c.View.Width = 1000
	}
	if c.View.Height == 0 {
		c.View.Height = 700
	}
	if c.View.NodeRadius == 0 {
		c.View.NodeRadius = 30
	}
	if c.View.NodeColor == "" {
		c.View.NodeColor = "#87ceeb"
	}
	if c.View.FontSize == 0 {
		c.View.FontSize = 10
	}
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// RunConfig carries the per-invocation parameters of the pipeline.
type RunConfig struct {
	Genes      []string
	OutputPath string
	Threshold  float64
	SQLitePath string
}

// DefaultRunConfig returns the literal demo parameters.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Genes:      []string{"TP53", "BRCA1", "EGFR", "VEGFA"},
		OutputPath: DefaultOutputPath,
		Threshold:  DefaultThreshold,
	}
}

const (
	DefaultBaseURL        = "https://version-11-5.string-db.org/api"
	DefaultSpecies        = 9606
	DefaultCallerIdentity = "www.awesome_app.org"
	DefaultOutputPath     = "PPI_network_filtered.csv"
	DefaultThreshold      = 0.4
	DefaultTimeoutSeconds = 60
	DefaultSeed           = 42
	DefaultTitle          = "Protein Interaction Network"
)
