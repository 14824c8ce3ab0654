package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-pderun/pkg/config"
	"github.com/goliatone/go-pderun/pkg/input"
	"github.com/goliatone/go-pderun/pkg/prompt"
)

// Streams are the standard streams of one invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Option customises the command.
type Option func(*app)

// WithPrompt replaces the terminal prompt driver.
func WithPrompt(driver prompt.Driver) Option {
	return func(a *app) {
		a.prompt = driver
	}
}

// WithInteractive overrides terminal detection on stdin.
func WithInteractive(interactive bool) Option {
	return func(a *app) {
		a.interactive = &interactive
	}
}

// WithConfigOptions forwards options to config.Load.
func WithConfigOptions(opts ...config.Option) Option {
	return func(a *app) {
		a.configOpts = append(a.configOpts, opts...)
	}
}

type flags struct {
	stdin        bool
	verbose      bool
	configPath   string
	output       string
	preprocessor string
	command      string
	templateDir  string
	tabSize      int
}

type app struct {
	streams     Streams
	version     string
	prompt      prompt.Driver
	interactive *bool
	configOpts  []config.Option

	flags  flags
	logger *zap.Logger
}

// NewRootCommand builds the pderun command bound to streams.
func NewRootCommand(streams Streams, version string, options ...Option) *cobra.Command {
	a := &app{streams: streams, version: version, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	cmd := &cobra.Command{
		Use:   "pderun [source]",
		Short: "Turn a Processing sketch into a runnable single-file Java program",
		Long: `pderun resolves a sketch from a pde://sketch/base64/ URL, a sketch folder,
or source text on stdin, merges its tabs, and prints a Java program framed by
build directives.

With no source argument pderun reads piped stdin, or prompts when stdin is a
terminal. Pass - or --stdin to read stdin explicitly.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(a.streams.Err, a.flags.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.run,
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitInvalidInput, Err: err}
	})

	f := cmd.Flags()
	f.BoolVarP(&a.flags.stdin, "stdin", "s", false, "read the sketch from standard input")
	f.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log resolution details to stderr")
	f.StringVar(&a.flags.configPath, "config", "", "JSON or YAML configuration file")
	f.StringVarP(&a.flags.output, "output", "o", "", "write the program to a file instead of stdout")
	f.StringVar(&a.flags.preprocessor, "preprocessor", "", "preprocessor to use: builtin or command")
	f.StringVar(&a.flags.command, "command", "", "external preprocessor command line ({name} is the class name)")
	f.StringVar(&a.flags.templateDir, "template-dir", "", "directory of class templates overriding the built-in ones")
	f.IntVar(&a.flags.tabSize, "tab-size", 0, "indentation width of generated code")

	return cmd
}

// Execute runs the command with args and returns the process exit code.
// Failures print a single diagnostic line to streams.Err.
func Execute(ctx context.Context, args []string, streams Streams, version string, options ...Option) int {
	cmd := NewRootCommand(streams, version, options...)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(streams.Err, "pderun: "+singleLine(err.Error()))
	}
	return ExitCode(err)
}

func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.flags.configPath, a.configOpts...)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("preprocessor") {
		cfg.Preprocessor = strings.TrimSpace(a.flags.preprocessor)
	}
	if changed("command") {
		argv, err := shellquote.Split(a.flags.command)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: --command: %w", config.ErrInvalid, err)
		}
		cfg.Command = argv
		if !changed("preprocessor") {
			cfg.Preprocessor = config.PreprocessorCommand
		}
	}
	if changed("template-dir") {
		cfg.TemplateDir = strings.TrimSpace(a.flags.templateDir)
	}
	if changed("tab-size") {
		cfg.TabSize = a.flags.tabSize
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// interactiveInput reports whether stdin is a terminal and the driver to
// prompt with. The driver is nil when prompting is disabled or unavailable.
func (a *app) interactiveInput(cfg config.Config) (bool, prompt.Driver) {
	if a.interactive != nil {
		if !cfg.Interactive {
			return *a.interactive, nil
		}
		return *a.interactive, a.prompt
	}

	in, ok := a.streams.In.(*os.File)
	if !ok || !input.IsTerminal(in) {
		return false, nil
	}
	if !cfg.Interactive {
		return true, nil
	}
	if a.prompt != nil {
		return true, a.prompt
	}
	out, ok := a.streams.Err.(*os.File)
	if !ok {
		return true, nil
	}
	return true, prompt.NewSurveyDriver(in, out)
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

func singleLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
