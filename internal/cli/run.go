package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-pderun/internal/sketch/loader"
	"github.com/goliatone/go-pderun/pkg/assemble"
	"github.com/goliatone/go-pderun/pkg/config"
	"github.com/goliatone/go-pderun/pkg/identifier"
	"github.com/goliatone/go-pderun/pkg/input"
	"github.com/goliatone/go-pderun/pkg/orchestrator"
	"github.com/goliatone/go-pderun/pkg/preprocess"
	"github.com/goliatone/go-pderun/pkg/preprocess/command"
	"github.com/goliatone/go-pderun/pkg/preprocess/javawrap"
	"github.com/goliatone/go-pderun/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

func (a *app) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return &ExitError{Code: ExitInternalError, Err: err}
	}

	interactive, driver := a.interactiveInput(cfg)
	classifierOpts := []input.Option{input.WithLogger(a.logger)}
	if driver != nil {
		classifierOpts = append(classifierOpts, input.WithPrompt(driver))
	}
	src, err := input.New(classifierOpts...).Classify(ctx, input.Request{
		Args:        args,
		ForceStdin:  a.flags.stdin,
		Stdin:       a.streams.In,
		Interactive: interactive,
	})
	if err != nil {
		return err
	}

	orch, err := a.newOrchestrator(cfg)
	if err != nil {
		return &ExitError{Code: ExitInternalError, Err: err}
	}

	req := orchestrator.Request{Source: src}
	if a.flags.output == "" {
		return orch.Write(ctx, req, a.streams.Out)
	}

	out, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.flags.output, out, 0o644); err != nil {
		return sketch.NewError(sketch.KindIO, "write", a.flags.output, err)
	}
	a.logger.Debug("program written", zap.String("path", a.flags.output), zap.Int("bytes", len(out)))
	return nil
}

func (a *app) newOrchestrator(cfg config.Config) (*orchestrator.Orchestrator, error) {
	ids, err := identifier.New(cfg.IdentifierPrefix)
	if err != nil {
		return nil, err
	}

	pre, err := newPreprocessor(cfg, a.logger)
	if err != nil {
		return nil, err
	}

	loader := internalLoader.New(sketch.NewLoaderOptions(
		sketch.WithSourceSuffix(cfg.SourceSuffix),
		sketch.WithDataDir(cfg.DataDir),
		sketch.WithLogger(a.logger),
	))

	return orchestrator.New(
		orchestrator.WithLoader(loader),
		orchestrator.WithPreprocessor(pre),
		orchestrator.WithHeader(cfg.Header...),
		orchestrator.WithAssembleOptions(assemble.WithFilesMarker(cfg.FilesMarker)),
		orchestrator.WithIdentifier(ids),
		orchestrator.WithLogger(a.logger),
	), nil
}

func newPreprocessor(cfg config.Config, logger *zap.Logger) (preprocess.Preprocessor, error) {
	switch cfg.Preprocessor {
	case config.PreprocessorCommand:
		return command.New(cfg.Command, command.WithLogger(logger))
	case config.PreprocessorBuiltin:
		opts := []javawrap.Option{javawrap.WithTabSize(cfg.TabSize), javawrap.WithLogger(logger)}
		if cfg.TemplateDir != "" {
			engine, err := gotemplate.New(
				gotemplate.WithBaseDir(cfg.TemplateDir),
				gotemplate.WithFS(javawrap.TemplatesFS()),
			)
			if err != nil {
				return nil, fmt.Errorf("cli: template dir: %w", err)
			}
			logger.Debug("using template dir", zap.String("path", cfg.TemplateDir))
			opts = append(opts, javawrap.WithRenderer(engine))
		}
		return javawrap.New(opts...)
	default:
		return nil, fmt.Errorf("cli: unknown preprocessor %q", cfg.Preprocessor)
	}
}
