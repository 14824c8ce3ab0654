package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pderun/pkg/assemble"
	"github.com/goliatone/go-pderun/pkg/identifier"
	"github.com/goliatone/go-pderun/pkg/orchestrator"
	"github.com/goliatone/go-pderun/pkg/preprocess/javawrap"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Preprocessor modes.
const (
	PreprocessorBuiltin = "builtin"
	PreprocessorCommand = "command"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PDERUN_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds every setting the command needs.
type Config struct {
	Header           []string `json:"header" yaml:"header"`
	FilesMarker      string   `json:"filesMarker" yaml:"filesMarker"`
	SourceSuffix     string   `json:"sourceSuffix" yaml:"sourceSuffix"`
	DataDir          string   `json:"dataDir" yaml:"dataDir"`
	IdentifierPrefix string   `json:"identifierPrefix" yaml:"identifierPrefix"`
	TabSize          int      `json:"tabSize" yaml:"tabSize"`

	// Preprocessor is "builtin" or "command".
	Preprocessor string `json:"preprocessor" yaml:"preprocessor"`

	// Command is the argv run in command mode.
	Command []string `json:"command" yaml:"command"`

	// TemplateDir holds class templates that shadow the embedded ones.
	TemplateDir string `json:"templateDir" yaml:"templateDir"`

	// Interactive enables the multiline prompt when no input is given on a
	// terminal.
	Interactive bool `json:"interactive" yaml:"interactive"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Header:           append([]string(nil), orchestrator.DefaultHeader...),
		FilesMarker:      assemble.DefaultFilesMarker,
		SourceSuffix:     sketch.DefaultSourceSuffix,
		DataDir:          sketch.DefaultDataDir,
		IdentifierPrefix: identifier.DefaultPrefix,
		TabSize:          javawrap.DefaultTabSize,
		Preprocessor:     PreprocessorBuiltin,
		Interactive:      true,
	}
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	envFiles []string
	lookup   func(string) (string, bool)
}

// WithEnvFiles replaces the dotenv files read by Load. Missing files are
// skipped.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append([]string(nil), files...)
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if lookup != nil {
			o.lookup = lookup
		}
	}
}

// Load builds a Config from the defaults, the optional file at path and the
// environment. Process variables win over dotenv values.
func Load(path string, options ...Option) (Config, error) {
	opts := loadOptions{
		envFiles: []string{".env"},
		lookup:   os.LookupEnv,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data, path, cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFiles(opts.envFiles)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v, ok := opts.lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes data as JSON, falling back to YAML, on top of base. Keys
// missing from data keep base's values.
func Parse(data []byte, source string, base Config) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg := base
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}

	cfg = base
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}

	return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

// Validate reports settings the pipeline cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.FilesMarker) == "" {
		return fmt.Errorf("%w: files marker is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.SourceSuffix) == "" {
		return fmt.Errorf("%w: source suffix is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data dir is empty", ErrInvalid)
	}
	if _, err := identifier.New(c.IdentifierPrefix); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.TabSize <= 0 {
		return fmt.Errorf("%w: tab size must be positive, got %d", ErrInvalid, c.TabSize)
	}
	if c.TemplateDir != "" {
		info, err := os.Stat(c.TemplateDir)
		if err != nil {
			return fmt.Errorf("%w: template dir: %w", ErrInvalid, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: template dir %s is not a directory", ErrInvalid, c.TemplateDir)
		}
	}
	switch c.Preprocessor {
	case PreprocessorBuiltin:
	case PreprocessorCommand:
		if len(c.Command) == 0 {
			return fmt.Errorf("%w: preprocessor %q needs a command", ErrInvalid, c.Preprocessor)
		}
	default:
		return fmt.Errorf("%w: unknown preprocessor %q", ErrInvalid, c.Preprocessor)
	}
	return nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	out := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: read env file %s: %w", file, err)
		}
		for key, value := range values {
			if _, ok := out[key]; !ok {
				out[key] = value
			}
		}
	}
	return out, nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvPrefix + "HEADER"); v != "" {
		cfg.Header = splitLines(v)
	}
	cfg.FilesMarker = firstNonEmpty(lookup(EnvPrefix+"FILES_MARKER"), cfg.FilesMarker)
	cfg.SourceSuffix = firstNonEmpty(lookup(EnvPrefix+"SOURCE_SUFFIX"), cfg.SourceSuffix)
	cfg.DataDir = firstNonEmpty(lookup(EnvPrefix+"DATA_DIR"), cfg.DataDir)
	cfg.IdentifierPrefix = firstNonEmpty(lookup(EnvPrefix+"IDENTIFIER_PREFIX"), cfg.IdentifierPrefix)
	cfg.Preprocessor = firstNonEmpty(lookup(EnvPrefix+"PREPROCESSOR"), cfg.Preprocessor)
	cfg.TemplateDir = firstNonEmpty(lookup(EnvPrefix+"TEMPLATE_DIR"), cfg.TemplateDir)

	if v := lookup(EnvPrefix + "TAB_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sTAB_SIZE: %w", ErrInvalid, EnvPrefix, err)
		}
		cfg.TabSize = size
	}
	if v := lookup(EnvPrefix + "COMMAND"); v != "" {
		argv, err := shellquote.Split(v)
		if err != nil {
			return fmt.Errorf("%w: %sCOMMAND: %w", ErrInvalid, EnvPrefix, err)
		}
		cfg.Command = argv
	}
	if v := lookup(EnvPrefix + "INTERACTIVE"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sINTERACTIVE: %w", ErrInvalid, EnvPrefix, err)
		}
		cfg.Interactive = enabled
	}
	return nil
}

// splitLines accepts real newlines or literal \n sequences.
func splitLines(v string) []string {
	v = strings.ReplaceAll(v, `\n`, "\n")
	var out []string
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
