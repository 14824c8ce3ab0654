package sketch

import (
	"context"
	"io/fs"

	"go.uber.org/zap"
)

// Default naming conventions for sketch folders.
const (
	DefaultSourceSuffix = ".pde"
	DefaultDataDir      = "data"
)

// Loader resolves a Source into a freshly built Sketch. Implementations live
// under internal/sketch but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (*Sketch, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem overrides the filesystem used for directory sources. When
	// nil the loader opens the directory on the operating system.
	FileSystem fs.FS

	// SourceSuffix selects the files read as sources. Defaults to ".pde".
	SourceSuffix string

	// DataDir names the folder whose children are registered as assets.
	// Defaults to "data".
	DataDir string

	// Logger receives debug output about the resolution path.
	Logger *zap.Logger
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS used in place of the directory path.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithSourceSuffix overrides the source file suffix.
func WithSourceSuffix(suffix string) LoaderOption {
	return func(opts *LoaderOptions) {
		if suffix != "" {
			opts.SourceSuffix = suffix
		}
	}
}

// WithDataDir overrides the asset folder name.
func WithDataDir(name string) LoaderOption {
	return func(opts *LoaderOptions) {
		if name != "" {
			opts.DataDir = name
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// NewLoaderOptions applies a set of LoaderOption values on top of the
// defaults and returns the resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{
		SourceSuffix: DefaultSourceSuffix,
		DataDir:      DefaultDataDir,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// Construction helpers live in the top-level pderun package to prevent import cycles.
