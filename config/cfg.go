package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"repage/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// PageConfig describes the synthetic page model used when no live
	// renderer supplies geometry.
	PageConfig struct {
		Height             float64 `yaml:"height" validate:"gt=0"`
		Gap                float64 `yaml:"gap" validate:"gte=0"`
		InsetTop           float64 `yaml:"inset_top" validate:"gte=0"`
		InsetBottom        float64 `yaml:"inset_bottom" validate:"gte=0"`
		LineHeight         float64 `yaml:"line_height" validate:"gt=0"`
		CharsPerLine       int     `yaml:"chars_per_line" validate:"min=1"`
		DefaultImageHeight float64 `yaml:"default_image_height" validate:"gte=0"`
		MinBlockHeight     float64 `yaml:"min_block_height" validate:"gte=0"`
		FooterHeight       float64 `yaml:"footer_height" validate:"gte=0"`
	}

	EngineConfig struct {
		Tolerance        float64            `yaml:"tolerance" validate:"gte=0"`
		PullThreshold    float64            `yaml:"pull_threshold" validate:"gte=0"`
		MaxIterations    int                `yaml:"max_iterations" validate:"min=1"`
		MaxSweeps        int                `yaml:"max_sweeps" validate:"min=1"`
		SweepBudgetMs    int                `yaml:"sweep_budget_ms" validate:"gte=0"`
		FlattenPassLimit int                `yaml:"flatten_pass_limit" validate:"min=1"`
		MaxSplitDepth    int                `yaml:"max_split_depth" validate:"min=1"`
		SplitIDs         common.SplitIDMode `yaml:"split_ids" validate:"gte=0"`
		Footers          common.FooterMode  `yaml:"footers" validate:"gte=0"`
		AutoMerge        bool               `yaml:"auto_merge"`
	}

	MeasureConfig struct {
		Mode common.MeasureMode `yaml:"mode" validate:"gte=0"`
		// ImageRoot is the directory referenced image paths resolve against
		// when probing intrinsic sizes. Empty disables probing.
		ImageRoot string `yaml:"image_root,omitempty" sanitize:"path_clean"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string `yaml:"output_name_template"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Page      PageConfig     `yaml:"page"`
		Engine    EngineConfig   `yaml:"engine"`
		Measure   MeasureConfig  `yaml:"measure"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
