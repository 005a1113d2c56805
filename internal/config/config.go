package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"species-matrix/internal/exporter"
	"species-matrix/internal/model"
	"species-matrix/internal/parser"
	"species-matrix/internal/reader"
)

// EnvPrefix prefixes environment overrides, e.g. SPECIES_MATRIX_OUTPUT_DIR
const EnvPrefix = "SPECIES_MATRIX"

// Config represents the application configuration
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Parser ParserConfig `mapstructure:"parser"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
}

// InputConfig holds input loading settings
type InputConfig struct {
	Engine    string   `mapstructure:"engine"`    // xlsx backend: excelize or stream
	Encodings []string `mapstructure:"encodings"` // CSV fallback encodings (e.g., ["gb18030", "gbk"])
}

// ParserConfig holds layout parsing settings
type ParserConfig struct {
	Layout                 string `mapstructure:"layout"`                    // auto, sequential or grid
	PlotMarker             string `mapstructure:"plot_marker"`               // Marks sequential plot header rows
	AnchorLabel            string `mapstructure:"anchor_label"`              // Exact text of grid anchors
	DuplicateSpeciesPolicy string `mapstructure:"duplicate_species_policy"`  // sum or keep_first
	TruncateSpeciesAtSpace bool   `mapstructure:"truncate_species_at_space"` // Grid names keep their first token only
	ProgressStart          int    `mapstructure:"progress_start"`
	ProgressEnd            int    `mapstructure:"progress_end"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir         string   `mapstructure:"dir"`          // Output directory ("" = next to the input)
	Path        string   `mapstructure:"path"`         // Explicit output file
	Suffix      string   `mapstructure:"suffix"`       // Appended to the input base name
	HeaderLabel string   `mapstructure:"header_label"` // Species column header
	SheetName   string   `mapstructure:"sheet_name"`
	Formats     []string `mapstructure:"formats"`
	AutoWidth   bool     `mapstructure:"auto_width"`
}

// LogConfig holds logging settings
type LogConfig struct {
	File    string `mapstructure:"file"` // Log file ("" = no file)
	Verbose bool   `mapstructure:"verbose"`
}

// UIConfig holds terminal behavior
type UIConfig struct {
	Progress    bool `mapstructure:"progress"`      // Show progress bars
	PauseOnExit bool `mapstructure:"pause_on_exit"` // Wait for Enter before exiting
}

// flagKeys maps CLI flag names to configuration keys
var flagKeys = map[string]string{
	"engine":   "input.engine",
	"layout":   "parser.layout",
	"policy":   "parser.duplicate_species_policy",
	"truncate": "parser.truncate_species_at_space",
	"output":   "output.path",
	"dir":      "output.dir",
	"format":   "output.formats",
	"log-file": "log.file",
	"verbose":  "log.verbose",
	"progress": "ui.progress",
	"pause":    "ui.pause_on_exit",
}

// Load reads the configuration.
// Precedence: changed flags, SPECIES_MATRIX_* environment (also from .env), the config file, defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory;
// a missing file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	explicit := configPath != ""
	if !explicit {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Output.Formats = splitList(cfg.Output.Formats)
	cfg.Input.Encodings = splitList(cfg.Input.Encodings)

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.engine", string(reader.EngineExcelize))
	v.SetDefault("input.encodings", reader.DefaultEncodings)

	v.SetDefault("parser.layout", string(model.LayoutAuto))
	v.SetDefault("parser.plot_marker", parser.DefaultPlotMarker)
	v.SetDefault("parser.anchor_label", parser.DefaultAnchorLabel)
	v.SetDefault("parser.duplicate_species_policy", string(model.PolicySum))
	v.SetDefault("parser.truncate_species_at_space", true)
	v.SetDefault("parser.progress_start", parser.DefaultProgressStart)
	v.SetDefault("parser.progress_end", parser.DefaultProgressEnd)

	v.SetDefault("output.dir", "")
	v.SetDefault("output.path", "")
	v.SetDefault("output.suffix", exporter.DefaultSuffix)
	v.SetDefault("output.header_label", parser.DefaultAnchorLabel)
	v.SetDefault("output.sheet_name", exporter.DefaultSheetName)
	v.SetDefault("output.formats", exporter.DefaultFormats)
	v.SetDefault("output.auto_width", true)

	v.SetDefault("log.file", "")
	v.SetDefault("log.verbose", false)

	v.SetDefault("ui.progress", true)
	v.SetDefault("ui.pause_on_exit", false)
}

// bindFlags binds the known flags present in the set
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || strings.Contains(err.Error(), "no such file")
}

// splitList accepts both list values and comma separated strings from env or flags
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	if c.Output.Dir != "" {
		absOutput, err := filepath.Abs(c.Output.Dir)
		if err != nil {
			return fmt.Errorf("failed to resolve output.dir: %w", err)
		}
		c.Output.Dir = absOutput
	}

	if c.Output.Path != "" {
		absPath, err := filepath.Abs(c.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve output.path: %w", err)
		}
		c.Output.Path = absPath
	}

	if c.Log.File != "" {
		absLog, err := filepath.Abs(c.Log.File)
		if err != nil {
			return fmt.Errorf("failed to resolve log.file: %w", err)
		}
		c.Log.File = absLog
	}

	return nil
}

// EnsureOutputDir creates the output directory if one is configured
func (c *Config) EnsureOutputDir() error {
	if c.Output.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := reader.ParseEngine(c.Input.Engine); err != nil {
		return err
	}
	if _, err := model.ParseLayout(c.Parser.Layout); err != nil {
		return err
	}
	if _, err := model.ParseDuplicatePolicy(c.Parser.DuplicateSpeciesPolicy); err != nil {
		return err
	}

	if strings.TrimSpace(c.Parser.PlotMarker) == "" {
		return fmt.Errorf("parser.plot_marker cannot be empty")
	}
	if strings.TrimSpace(c.Parser.AnchorLabel) == "" {
		return fmt.Errorf("parser.anchor_label cannot be empty")
	}

	p := c.Parser
	if p.ProgressStart < 0 || p.ProgressEnd > 100 || p.ProgressStart > p.ProgressEnd {
		return fmt.Errorf("parser progress range must satisfy 0 <= start <= end <= 100, got %d..%d", p.ProgressStart, p.ProgressEnd)
	}

	if _, err := exporter.GetExporters(c.Output.Formats); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.HeaderLabel) == "" {
		return fmt.Errorf("output.header_label cannot be empty")
	}
	if len(c.Output.SheetName) > 31 || strings.ContainsAny(c.Output.SheetName, `:\/?*[]`) {
		return fmt.Errorf("output.sheet_name %q is not a valid worksheet name", c.Output.SheetName)
	}

	return nil
}

// ParserOptions converts the parser section
func (c *Config) ParserOptions() (parser.Options, error) {
	policy, err := model.ParseDuplicatePolicy(c.Parser.DuplicateSpeciesPolicy)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		PlotMarker:    c.Parser.PlotMarker,
		AnchorLabel:   c.Parser.AnchorLabel,
		Policy:        policy,
		KeepFullNames: !c.Parser.TruncateSpeciesAtSpace,
		ProgressStart: c.Parser.ProgressStart,
		ProgressEnd:   c.Parser.ProgressEnd,
	}, nil
}

// ReaderOptions converts the input section
func (c *Config) ReaderOptions() (reader.Options, error) {
	engine, err := reader.ParseEngine(c.Input.Engine)
	if err != nil {
		return reader.Options{}, err
	}
	return reader.Options{Engine: engine, Encodings: c.Input.Encodings}, nil
}

// PathOptions converts the output location settings
func (c *Config) PathOptions() exporter.PathOptions {
	return exporter.PathOptions{Dir: c.Output.Dir, Suffix: c.Output.Suffix, Output: c.Output.Path}
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Species Matrix Configuration ===")
	fmt.Printf("Input Engine:     %s\n", c.Input.Engine)
	fmt.Printf("CSV Encodings:    %v\n", c.Input.Encodings)
	fmt.Printf("Layout:           %s\n", c.Parser.Layout)
	fmt.Printf("Plot Marker:      %s\n", c.Parser.PlotMarker)
	fmt.Printf("Anchor Label:     %s\n", c.Parser.AnchorLabel)
	fmt.Printf("Duplicates:       %s\n", c.Parser.DuplicateSpeciesPolicy)
	fmt.Printf("Truncate Names:   %v\n", c.Parser.TruncateSpeciesAtSpace)
	fmt.Printf("Output Directory: %s\n", displayOr(c.Output.Dir, "(next to input)"))
	fmt.Printf("Output File:      %s\n", displayOr(c.Output.Path, "(derived)"))
	fmt.Printf("Output Suffix:    %s\n", c.Output.Suffix)
	fmt.Printf("Formats:          %v\n", c.Output.Formats)
	fmt.Printf("Log File:         %s\n", displayOr(c.Log.File, "(none)"))
	fmt.Println("====================================")
}

func displayOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
